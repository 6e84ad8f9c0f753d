package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/telemetry"
)

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))

	for i, spec := range pv.Specs {
		if def[i] < spec.Min || def[i] > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Name, def[i], spec.Min, spec.Max)
		}
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: round trip %v, want %v", spec.Name, back[i], def[i])
		}
	}
}

func TestParamVector_ApplyToConfigValidates(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	// Everything far out of range: low thresholds, high costs.
	values := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		values[i] = spec.Max * 10
		if spec.Name == "prey_repro_thresh" || spec.Name == "pred_repro_thresh" {
			values[i] = -1
		}
	}
	pv.ApplyToConfig(cfg, values)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("applied config should validate: %v", err)
	}
	if cfg.Species.Prey.ReproductionCost != cfg.Species.Prey.ReproductionThreshold {
		t.Errorf("prey cost %v should be capped at threshold %v",
			cfg.Species.Prey.ReproductionCost, cfg.Species.Prey.ReproductionThreshold)
	}
	if cfg.Species.Predator.HuntingCooldown != 120 {
		t.Errorf("hunting cooldown = %d, want 120", cfg.Species.Predator.HuntingCooldown)
	}
	if cfg.Population.MaxPredatorRatio != 0.5 {
		t.Errorf("max predator ratio = %v, want 0.5", cfg.Population.MaxPredatorRatio)
	}
}

func TestComputeQuality(t *testing.T) {
	ideal := telemetry.WindowStats{
		PreyCount: 100, PredCount: 20,
		PreyHealthP50: 60, PredHealthP50: 60,
		Kills: 200,
	}

	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		wantMin float64
		wantMax float64
	}{
		{"too few windows", []telemetry.WindowStats{ideal, ideal}, 0, 0},
		{"steady ideal ecosystem", []telemetry.WindowStats{ideal, ideal, ideal, ideal, ideal}, 0.95, 1},
		{"collapsed predators ignored", []telemetry.WindowStats{ideal, ideal, {PreyCount: 100, PredCount: 1}}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeQuality(tt.windows)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("quality = %v, want in [%v, %v]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestComputeFitness_SurvivalDominates(t *testing.T) {
	if computeFitness(1000, 0) >= computeFitness(500, 1) {
		t.Error("longer survival should beat higher quality")
	}
	if computeFitness(1000, 1) >= computeFitness(1000, 0) {
		t.Error("quality should break survival ties")
	}
}

func TestCV(t *testing.T) {
	if got := cv([]float64{5, 5, 5}); got != 0 {
		t.Errorf("constant series cv = %v, want 0", got)
	}
	if got := cv([]float64{0, 0}); got != 0 {
		t.Errorf("zero-mean series cv = %v, want 0", got)
	}
	// mean 2, population std 1
	if got := cv([]float64{1, 3}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("cv = %v, want 0.5", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "0m45s"},
		{125 * time.Second, "2m05s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestEvaluate_ShortRun(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 120, []int64{1, 2}, config.Default())

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness > 0 || fitness < -120*1.2 {
		t.Errorf("fitness %v outside [-144, 0]", fitness)
	}
	if q := fe.LastQuality(); q < 0 || q > 1 {
		t.Errorf("quality %v outside [0, 1]", q)
	}
}
