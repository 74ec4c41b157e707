package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/emergence/components"
	"github.com/pthm-cable/emergence/config"
	"github.com/pthm-cable/emergence/game"
	"github.com/pthm-cable/emergence/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64
	targetMass  float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
// targetMass is the mean plant mass a healthy run should settle near.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetMass float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
		targetMass:  targetMass,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks until the last plant despawned, or maxTicks
	windowStats   []telemetry.WindowStats // collected via the stats callback each window
}

type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Parameter sets the config rejects score +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(cfg, s)
			if result == nil {
				results[idx] = seedResult{fitness: math.Inf(1)}
				return
			}
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: fe.computeQuality(result.windowStats),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run until plants die out or maxTicks.
// cfg is shared across seeds and must not be modified.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	sim, err := game.NewSimulation(cfg, game.Options{
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
	})
	if err != nil {
		return nil
	}
	defer sim.Unload()
	sim.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	})

	for sim.Tick() < fe.maxTicks {
		sim.Step()
		if sim.Population(components.KindPlant) == 0 {
			result.survivalTicks = sim.Tick()
			return result
		}
	}
	result.survivalTicks = fe.maxTicks
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightMass      = 0.6
	qualityWeightStability = 0.4

	qualityWarmupWindows = 3 // skip first N windows (warmup)
)

// computeQuality scores plant biomass in [0, 1]: mean mass near the target
// and little variation of the plant count across windows.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var massSum float64
	counts := make([]float64, 0, len(windows))
	for _, w := range windows[qualityWarmupWindows:] {
		if w.PlantCount == 0 {
			continue
		}
		logErr := math.Log(w.PlantMassMean / fe.targetMass)
		massSum += math.Exp(-logErr * logErr)
		counts = append(counts, float64(w.PlantCount))
	}
	if len(counts) == 0 {
		return 0
	}
	massScore := massSum / float64(len(counts))

	stabilityScore := 0.0
	if len(counts) >= 2 {
		c := cv(counts)
		stabilityScore = math.Exp(-c * c)
	}

	return clamp01(qualityWeightMass*massScore + qualityWeightStability*stabilityScore)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
