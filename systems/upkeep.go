package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
)

// ApplyUpkeep returns mass after dt seconds of exponential decay at rate.
func ApplyUpkeep(mass, rate, dt float64) float64 {
	return mass - rate*dt*mass
}

// UpkeepSystem charges every structure the cost of staying alive.
type UpkeepSystem struct {
	filter *ecs.Filter2[components.Structure, components.Composition]
}

// NewUpkeepSystem creates a new upkeep system.
func NewUpkeepSystem(w *ecs.World) *UpkeepSystem {
	return &UpkeepSystem{
		filter: ecs.NewFilter2[components.Structure, components.Composition](w),
	}
}

// Update decays the mass of all structures, plants and fungi alike.
func (s *UpkeepSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		structure, comp := query.Get()
		comp.Mass = ApplyUpkeep(comp.Mass, structure.UpkeepRate, dt)
	}
}
