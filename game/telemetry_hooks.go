package game

import (
	"log/slog"

	"github.com/pthm-cable/emergence/components"
	"github.com/pthm-cable/emergence/telemetry"
)

// flushTelemetry closes the stats window when it is due and checks for bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.census())
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.outputManager != nil {
		if err := s.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarkDetector.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if s.outputManager != nil {
			if err := s.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if s.snapshotDir != "" {
			s.saveSnapshot(&bm)
		}
		if s.bookmarkCallback != nil {
			s.bookmarkCallback(bm)
		}
	}
}

// census samples structure masses for the stats window.
func (s *Simulation) census() telemetry.Census {
	c := telemetry.Census{Counts: s.population}

	query := s.structureFilter.Query()
	for query.Next() {
		org, comp, _ := query.Get()
		switch org.Kind {
		case components.KindPlant:
			c.PlantMasses = append(c.PlantMasses, comp.Mass)
		case components.KindFungus:
			c.FungusMasses = append(c.FungusMasses, comp.Mass)
		}
	}
	return c
}

// trackPeakMass records post-growth plant masses. Only growth raises mass,
// so sampling right after it catches every peak.
func (s *Simulation) trackPeakMass() {
	query := s.plantFilter.Query()
	for query.Next() {
		org, comp, _ := query.Get()
		s.lifetimeTracker.UpdateMass(org.ID, comp.Mass)
	}
}
