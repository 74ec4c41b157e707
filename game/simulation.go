package game

import "github.com/pthm-cable/emergence/telemetry"

// Step advances the simulation by one tick.
//
// Order is fixed: wander, photosynthesize, upkeep, cleanup, telemetry.
// Growth reads the tick-start mass, upkeep the post-growth mass and cleanup
// the post-upkeep mass, so a starved structure is gone before the tick ends.
func (s *Simulation) Step() {
	dt := s.cfg.Physics.DT
	s.perfCollector.StartTick()

	s.perfCollector.StartPhase(telemetry.PhaseWander)
	res := s.wander.Update(s.rng)
	s.collector.RecordWander(res.Moved, res.Blocked)

	s.perfCollector.StartPhase(telemetry.PhasePhotosynthesis)
	s.photosynthesis.Update(dt)
	s.trackPeakMass()

	s.perfCollector.StartPhase(telemetry.PhaseUpkeep)
	s.upkeep.Update(dt)

	s.perfCollector.StartPhase(telemetry.PhaseCleanup)
	// Deaths are stamped with the tick that is ending.
	s.tick++
	for _, d := range s.cleanup.Update() {
		s.handleDespawn(d)
	}

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perfCollector.EndTick()
}

// Run steps the simulation n times.
func (s *Simulation) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}
