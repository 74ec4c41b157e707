package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/emergence/components"
)

func TestCollectorWindowTicks(t *testing.T) {
	c := NewCollector(10, 0.1)
	if c.WindowDurationTicks() != 100 {
		t.Errorf("WindowDurationTicks() = %d, want 100", c.WindowDurationTicks())
	}
	if c.ShouldFlush(99) {
		t.Error("should not flush before window end")
	}
	if !c.ShouldFlush(100) {
		t.Error("should flush at window end")
	}

	tiny := NewCollector(0.01, 0.1)
	if tiny.WindowDurationTicks() != 1 {
		t.Errorf("window shorter than a tick should clamp to 1, got %d", tiny.WindowDurationTicks())
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.1)

	c.RecordBirth(components.KindPlant)
	c.RecordBirth(components.KindPlant)
	c.RecordBirth(components.KindFungus)
	c.RecordDeath(components.KindFungus, &LifetimeStats{SurvivalTimeSec: 4, PeakMass: 1})
	c.RecordDeath(components.KindPlant, &LifetimeStats{SurvivalTimeSec: 6, PeakMass: 3})
	c.RecordWander(3, 1)

	census := Census{
		Counts:       [components.NumOrganismKinds]int{2, 1, 5},
		PlantMasses:  []float64{2, 4},
		FungusMasses: []float64{0.5},
	}
	s := c.Flush(10, census)

	if s.PlantBirths != 2 || s.FungusBirths != 1 {
		t.Errorf("births = %d/%d, want 2/1", s.PlantBirths, s.FungusBirths)
	}
	if s.PlantDeaths != 1 || s.FungusDeaths != 1 {
		t.Errorf("deaths = %d/%d, want 1/1", s.PlantDeaths, s.FungusDeaths)
	}
	if s.PlantCount != 2 || s.FungusCount != 1 || s.UnitCount != 5 {
		t.Errorf("counts = %d/%d/%d", s.PlantCount, s.FungusCount, s.UnitCount)
	}
	if math.Abs(s.BlockedRate-0.25) > 1e-9 {
		t.Errorf("blocked rate = %v, want 0.25", s.BlockedRate)
	}
	if math.Abs(s.PlantMassMean-3) > 1e-9 || math.Abs(s.TotalBiomass-6.5) > 1e-9 {
		t.Errorf("mass mean/total = %v/%v, want 3/6.5", s.PlantMassMean, s.TotalBiomass)
	}
	if math.Abs(s.MeanLifespan-5) > 1e-9 || math.Abs(s.MeanPeakMass-2) > 1e-9 {
		t.Errorf("lifespan/peak = %v/%v, want 5/2", s.MeanLifespan, s.MeanPeakMass)
	}
	if math.Abs(s.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1.0", s.SimTimeSec)
	}

	// Counters reset after flush
	next := c.Flush(20, Census{})
	if next.PlantBirths != 0 || next.Moves != 0 || next.MeanLifespan != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("window start = %d, want 10", next.WindowStartTick)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, 10, components.KindPlant, 1.0)

	lt.UpdateMass(7, 3.0)
	lt.UpdateMass(7, 2.0)
	lt.RecordMove(7)
	lt.RecordBlocked(99) // unknown ids are ignored

	if lt.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", lt.Count())
	}
	if got := lt.Get(7).PeakMass; got != 3.0 {
		t.Errorf("peak mass = %v, want 3.0", got)
	}

	stats := lt.Remove(7, 60, 0.1)
	if stats == nil {
		t.Fatal("Remove returned nil")
	}
	if math.Abs(stats.SurvivalTimeSec-5.0) > 1e-9 {
		t.Errorf("survival = %v, want 5.0", stats.SurvivalTimeSec)
	}
	if lt.Remove(7, 60, 0.1) != nil {
		t.Error("second Remove should return nil")
	}
}
