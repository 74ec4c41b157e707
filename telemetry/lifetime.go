package telemetry

import "github.com/pthm-cable/emergence/components"

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	BirthTick       int32                   `json:"birth_tick"`
	SurvivalTimeSec float64                 `json:"survival_time_sec"`
	Kind            components.OrganismKind `json:"kind"`

	// Mass (structures only)
	StartMass float64 `json:"start_mass"`
	PeakMass  float64 `json:"peak_mass"`

	// Movement (units only)
	Moves   int `json:"moves"`
	Blocked int `json:"blocked"`
}

// LifetimeTracker manages per-organism lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new organism.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32, kind components.OrganismKind, mass float64) {
	lt.stats[id] = &LifetimeStats{
		BirthTick: birthTick,
		Kind:      kind,
		StartMass: mass,
		PeakMass:  mass,
	}
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an organism's stats and returns them with survival time filled in.
func (lt *LifetimeTracker) Remove(id uint32, currentTick int32, dt float64) *LifetimeStats {
	stats := lt.stats[id]
	if stats == nil {
		return nil
	}
	stats.SurvivalTimeSec = float64(currentTick-stats.BirthTick) * dt
	delete(lt.stats, id)
	return stats
}

// UpdateMass tracks peak mass.
func (lt *LifetimeTracker) UpdateMass(id uint32, mass float64) {
	if s := lt.stats[id]; s != nil && mass > s.PeakMass {
		s.PeakMass = mass
	}
}

// RecordMove counts a committed step.
func (lt *LifetimeTracker) RecordMove(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Moves++
	}
}

// RecordBlocked counts a tick where the organism had nowhere to go.
func (lt *LifetimeTracker) RecordBlocked(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Blocked++
	}
}

// Count returns the number of tracked organisms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
