package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
)

// growthExponent scales growth with surface area rather than volume.
const growthExponent = 2.0 / 3.0

// Photosynthesize returns mass after dt seconds of growth at rate.
// Absolute growth decelerates at large mass; there is no upper bound.
func Photosynthesize(mass, rate, dt float64) float64 {
	if mass <= 0 {
		// Pow is NaN for negative mass
		return mass
	}
	return mass + rate*dt*math.Pow(mass, growthExponent)
}

// PhotosynthesisSystem grows every plant's mass.
type PhotosynthesisSystem struct {
	filter *ecs.Filter2[components.Plant, components.Composition]
}

// NewPhotosynthesisSystem creates a new photosynthesis system.
func NewPhotosynthesisSystem(w *ecs.World) *PhotosynthesisSystem {
	return &PhotosynthesisSystem{
		filter: ecs.NewFilter2[components.Plant, components.Composition](w),
	}
}

// Update applies dt seconds of growth to all plants.
func (s *PhotosynthesisSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		plant, comp := query.Get()
		comp.Mass = Photosynthesize(comp.Mass, plant.PhotosynthesisRate, dt)
	}
}
