package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Events during window
	PreyBirths  int `csv:"prey_births"`
	PredBirths  int `csv:"pred_births"`
	PreyDeaths  int `csv:"prey_deaths"`
	PredDeaths  int `csv:"pred_deaths"`
	Kills       int `csv:"kills"`
	Starvations int `csv:"starvations"`
	Culls       int `csv:"culls"`

	MeanKillIntervalSec float64 `csv:"kill_interval"`
	MaxGeneration       uint32  `csv:"max_generation"`

	// Health distribution (sampled at window end)
	PreyHealthMean float64 `csv:"prey_health_mean"`
	PreyHealthStd  float64 `csv:"prey_health_std"`
	PreyHealthP10  float64 `csv:"prey_health_p10"`
	PreyHealthP50  float64 `csv:"prey_health_p50"`
	PreyHealthP90  float64 `csv:"prey_health_p90"`

	PredHealthMean float64 `csv:"pred_health_mean"`
	PredHealthStd  float64 `csv:"pred_health_std"`
	PredHealthP10  float64 `csv:"pred_health_p10"`
	PredHealthP50  float64 `csv:"pred_health_p50"`
	PredHealthP90  float64 `csv:"pred_health_p90"`

	MeanSpeed      float64 `csv:"mean_speed"`
	ObstaclePoints int     `csv:"obstacle_points"`
}

// ComputeHealthStats calculates mean, sample std-dev and percentiles.
// Percentiles interpolate linearly along the empirical CDF.
func ComputeHealthStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, std, p10, p50, p90
}

// PredatorShare returns predators / total, or 0 for an empty world.
func (s WindowStats) PredatorShare() float64 {
	total := s.PreyCount + s.PredCount
	if total == 0 {
		return 0
	}
	return float64(s.PredCount) / float64(total)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_deaths", s.PreyDeaths),
		slog.Int("pred_deaths", s.PredDeaths),
		slog.Int("kills", s.Kills),
		slog.Int("starvations", s.Starvations),
		slog.Int("culls", s.Culls),
		slog.Float64("kill_interval", s.MeanKillIntervalSec),
		slog.Int("max_generation", int(s.MaxGeneration)),
		slog.Float64("prey_health_mean", s.PreyHealthMean),
		slog.Float64("prey_health_std", s.PreyHealthStd),
		slog.Float64("prey_health_p50", s.PreyHealthP50),
		slog.Float64("pred_health_mean", s.PredHealthMean),
		slog.Float64("pred_health_std", s.PredHealthStd),
		slog.Float64("pred_health_p50", s.PredHealthP50),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Int("obstacle_points", s.ObstaclePoints),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
