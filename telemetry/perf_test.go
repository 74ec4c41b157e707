package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseWander)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseUpkeep)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseWander]; !ok {
		t.Error("expected wander phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseUpkeep]; !ok {
		t.Error("expected upkeep phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseWander)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Cleanup does no work; upkeep sleeps long enough to dominate any scheduler noise
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCleanup)
		pc.StartPhase(PhaseUpkeep)
		time.Sleep(5 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.PhaseAvg[PhaseUpkeep] < 4*time.Millisecond {
		t.Errorf("upkeep avg = %v, want at least 4ms", stats.PhaseAvg[PhaseUpkeep])
	}
	if stats.PhaseAvg[PhaseUpkeep] <= 10*stats.PhaseAvg[PhaseCleanup] {
		t.Errorf("upkeep avg %v should dwarf cleanup avg %v",
			stats.PhaseAvg[PhaseUpkeep], stats.PhaseAvg[PhaseCleanup])
	}
	if stats.PhasePct[PhaseUpkeep] < 80 {
		t.Errorf("upkeep share = %.2f%%, want above 80%%", stats.PhasePct[PhaseUpkeep])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct: map[string]float64{
			PhasePhotosynthesis: 40,
			PhaseCleanup:        10,
		},
	}

	row := stats.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 {
		t.Errorf("row = %+v", row)
	}
	if row.PhotosynthesisPct != 40 || row.CleanupPct != 10 || row.WanderPct != 0 {
		t.Errorf("phase percentages not mapped: %+v", row)
	}
}
