// Package telemetry provides windowed ecosystem statistics, perf timing and CSV output.
package telemetry

import "github.com/pthm-cable/emergence/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births      [components.NumOrganismKinds]int
	deaths      [components.NumOrganismKinds]int
	moves       int
	blocked     int
	lifespanSum float64
	lifespanN   int
	peakMassSum float64
	peakMassN   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records a spawn.
func (c *Collector) RecordBirth(kind components.OrganismKind) {
	if kind < components.NumOrganismKinds {
		c.births[kind]++
	}
}

// RecordDeath records a despawn along with the organism's lifetime, if known.
func (c *Collector) RecordDeath(kind components.OrganismKind, life *LifetimeStats) {
	if kind < components.NumOrganismKinds {
		c.deaths[kind]++
	}
	if life != nil {
		c.lifespanSum += life.SurvivalTimeSec
		c.lifespanN++
		if kind.IsStructure() {
			c.peakMassSum += life.PeakMass
			c.peakMassN++
		}
	}
}

// RecordWander records the outcome of a wander pass.
func (c *Collector) RecordWander(moved, blocked int) {
	c.moves += moved
	c.blocked += blocked
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Census holds the population snapshot taken at the end of a window.
type Census struct {
	Counts       [components.NumOrganismKinds]int
	PlantMasses  []float64
	FungusMasses []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, census Census) WindowStats {
	plant := ComputeMassStats(census.PlantMasses)
	fungus := ComputeMassStats(census.FungusMasses)

	var blockedRate float64
	if attempts := c.moves + c.blocked; attempts > 0 {
		blockedRate = float64(c.blocked) / float64(attempts)
	}
	var meanLifespan, meanPeak float64
	if c.lifespanN > 0 {
		meanLifespan = c.lifespanSum / float64(c.lifespanN)
	}
	if c.peakMassN > 0 {
		meanPeak = c.peakMassSum / float64(c.peakMassN)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		PlantCount:  census.Counts[components.KindPlant],
		FungusCount: census.Counts[components.KindFungus],
		UnitCount:   census.Counts[components.KindUnit],

		PlantBirths:  c.births[components.KindPlant],
		FungusBirths: c.births[components.KindFungus],
		PlantDeaths:  c.deaths[components.KindPlant],
		FungusDeaths: c.deaths[components.KindFungus],

		Moves:       c.moves,
		Blocked:     c.blocked,
		BlockedRate: blockedRate,

		PlantMassMean: plant.Mean,
		PlantMassStd:  plant.Std,
		PlantMassP10:  plant.P10,
		PlantMassP50:  plant.P50,
		PlantMassP90:  plant.P90,
		FungusMass:    fungus.Mean,
		TotalBiomass:  plant.Total + fungus.Total,

		MeanLifespan: meanLifespan,
		MeanPeakMass: meanPeak,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [components.NumOrganismKinds]int{}
	c.deaths = [components.NumOrganismKinds]int{}
	c.moves = 0
	c.blocked = 0
	c.lifespanSum, c.lifespanN = 0, 0
	c.peakMassSum, c.peakMassN = 0, 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
