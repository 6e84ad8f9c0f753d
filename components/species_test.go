package components

import (
	"testing"

	"github.com/pthm-cable/flock/config"
)

func TestSpeciesString(t *testing.T) {
	tests := []struct {
		s    Species
		want string
	}{
		{SpeciesPrey, "prey"},
		{SpeciesPredator, "predator"},
		{Species(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Species(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestProfilesFromConfig(t *testing.T) {
	cfg := config.Default()
	profiles := ProfilesFromConfig(cfg)

	prey := profiles.Get(SpeciesPrey)
	pred := profiles.Get(SpeciesPredator)

	// Prey turn nimbly, predators turn sluggishly but run faster
	if prey.SteeringFactor <= pred.SteeringFactor {
		t.Errorf("prey steering %v should exceed predator steering %v", prey.SteeringFactor, pred.SteeringFactor)
	}
	if pred.MaxSpeed <= prey.MaxSpeed {
		t.Errorf("predator max speed %v should exceed prey max speed %v", pred.MaxSpeed, prey.MaxSpeed)
	}
	if pred.HuntingCooldown != int32(cfg.Species.Predator.HuntingCooldown) {
		t.Errorf("hunting cooldown = %d, want %d", pred.HuntingCooldown, cfg.Species.Predator.HuntingCooldown)
	}

	body := BodyFromProfile(pred)
	if body.Radius != pred.Size/2 {
		t.Errorf("body radius = %v, want %v", body.Radius, pred.Size/2)
	}
	motion := MotionFromProfile(prey)
	if motion.MaxSpeed != prey.MaxSpeed || motion.SteeringFactor != prey.SteeringFactor {
		t.Errorf("motion %+v does not match profile", motion)
	}
}

func TestHealthRatio(t *testing.T) {
	if r := (Health{Value: 25, Max: 100}).Ratio(); r != 0.25 {
		t.Errorf("Ratio = %v, want 0.25", r)
	}
	if r := (Health{Value: 5}).Ratio(); r != 0 {
		t.Errorf("zero-capacity Ratio = %v, want 0", r)
	}
}
