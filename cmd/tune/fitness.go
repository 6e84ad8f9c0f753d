package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/world"
)

// FitnessEvaluator runs headless worlds and scores parameter vectors.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// If either species stays below minViablePop for extinctionGraceSec it
// counts as functionally extinct.
const (
	minViablePop       = 3
	extinctionGraceSec = 20.0
	warmupSec          = 5.0
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32 // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Every seed runs in its own world concurrently.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := fe.runSimulation(cfg.Clone(), seed)
			quality[i] = computeQuality(r.windowStats)
			fitness[i] = computeFitness(r.survivalTicks, quality[i])
		}()
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation steps one world until functional extinction or maxTicks.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	var result runResult
	collector := telemetry.NewCollector(fe.statsWindow, cfg.Derived.DT)
	w := world.New(cfg, world.Options{
		Seed:      seed,
		Collector: collector,
		OnWindow: func(s telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, s)
		},
		Logger: slog.New(slog.DiscardHandler),
	})

	tickRate := cfg.Simulation.TickRate
	warmupTicks := int32(warmupSec * tickRate)
	graceTicks := int32(extinctionGraceSec * tickRate)
	var preyBelow, predBelow int32

	for w.Tick() < fe.maxTicks {
		w.Step()

		tick := w.Tick()
		if tick < warmupTicks {
			continue
		}

		prey, pred := w.Counts()
		if prey == 0 || pred == 0 {
			result.survivalTicks = tick
			return result
		}

		preyBelow = belowCount(prey, preyBelow)
		predBelow = belowCount(pred, predBelow)
		if preyBelow >= graceTicks || predBelow >= graceTicks {
			result.survivalTicks = tick
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

// belowCount extends a streak of ticks spent under the viable population.
func belowCount(pop int, streak int32) int32 {
	if pop < minViablePop {
		return streak + 1
	}
	return 0
}

// computeFitness combines survival and quality (lower = better).
// Survival dominates; quality adds up to 20% to separate configs that
// survive equally long.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightHealth    = 0.25
	qualityWeightHunting   = 0.20

	qualityWarmupWindows = 2 // skip first N windows
	qualityMinPop        = 3 // exclude windows where either species < this

	targetPreyPerPredator = 5.0
	targetHealthP50       = 60.0
)

// computeQuality scores ecosystem quality in [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var ratioSum, healthSum, huntSum float64
	var preyCounts, predCounts []float64

	for _, w := range windows[qualityWarmupWindows:] {
		if w.PreyCount < qualityMinPop || w.PredCount < qualityMinPop {
			continue
		}
		preyCounts = append(preyCounts, float64(w.PreyCount))
		predCounts = append(predCounts, float64(w.PredCount))

		// Log-normal score around the target prey:predator ratio
		logErr := math.Log(float64(w.PreyCount) / float64(w.PredCount) / targetPreyPerPredator)
		ratioSum += math.Exp(-logErr * logErr)

		preyH := math.Exp(-math.Pow((w.PreyHealthP50-targetHealthP50)/25, 2))
		predH := math.Exp(-math.Pow((w.PredHealthP50-targetHealthP50)/25, 2))
		healthSum += (preyH + predH) / 2

		killsPerPred := float64(w.Kills) / float64(w.PredCount)
		huntSum += 1 - math.Exp(-killsPerPred/2)
	}

	n := float64(len(preyCounts))
	if n == 0 {
		return 0
	}

	stability := 0.0
	if n >= 2 {
		cvPrey, cvPred := cv(preyCounts), cv(predCounts)
		stability = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}

	quality := qualityWeightRatio*ratioSum/n +
		qualityWeightStability*stability +
		qualityWeightHealth*healthSum/n +
		qualityWeightHunting*huntSum/n

	return min(max(quality, 0), 1)
}

// cv computes the coefficient of variation (std/mean).
func cv(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
