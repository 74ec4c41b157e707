package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
)

// WanderResult counts the outcome of one wander pass.
type WanderResult struct {
	Moved   int
	Blocked int
}

// WanderSystem moves each unit to a random passable neighbor.
type WanderSystem struct {
	filter     *ecs.Filter3[components.Unit, components.TilePos, components.Organism]
	impassable ImpassableLookup
	terrain    *TileStorage
	organisms  *TileStorage

	// OnResolve, if set, is called once per unit after its move is decided.
	OnResolve func(id uint32, moved bool)
}

// NewWanderSystem creates a wander system over the given tile layers.
func NewWanderSystem(w *ecs.World, impassable ImpassableLookup, terrain, organisms *TileStorage) *WanderSystem {
	return &WanderSystem{
		filter:     ecs.NewFilter3[components.Unit, components.TilePos, components.Organism](w),
		impassable: impassable,
		terrain:    terrain,
		organisms:  organisms,
	}
}

// Update proposes one step per unit and commits it immediately.
// Units are resolved in query order, so a tile claimed by an earlier unit
// is already occupied when a later unit looks at it.
func (s *WanderSystem) Update(rng Rand) WanderResult {
	var res WanderResult
	size := s.organisms.Size()

	query := s.filter.Query()
	for query.Next() {
		_, pos, org := query.Get()
		dest, ok := RandomPassableNeighbor(*pos, s.impassable, s.terrain, s.organisms, size, rng)
		if ok {
			s.organisms.Move(*pos, dest)
			*pos = dest
			res.Moved++
		} else {
			res.Blocked++
		}
		if s.OnResolve != nil {
			s.OnResolve(org.ID, ok)
		}
	}
	return res
}
