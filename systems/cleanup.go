package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
)

// Despawned describes a structure removed by CleanupSystem.
// Tracked is false for structures without an Organism; their ID, Kind and Pos are zero.
type Despawned struct {
	Entity  ecs.Entity
	ID      uint32
	Kind    components.OrganismKind
	Pos     components.TilePos
	Mass    float64
	Tracked bool
}

// ShouldDespawn reports whether a structure has starved.
func ShouldDespawn(mass float64, structure components.Structure) bool {
	return mass <= structure.DespawnMass
}

// CleanupSystem removes structures whose mass fell to or below their despawn threshold.
type CleanupSystem struct {
	world  *ecs.World
	filter *ecs.Filter2[components.Structure, components.Composition]
	orgMap *ecs.Map[components.Organism]
	posMap *ecs.Map[components.TilePos]
}

// NewCleanupSystem creates a new cleanup system.
func NewCleanupSystem(w *ecs.World) *CleanupSystem {
	return &CleanupSystem{
		world:  w,
		filter: ecs.NewFilter2[components.Structure, components.Composition](w),
		orgMap: ecs.NewMap[components.Organism](w),
		posMap: ecs.NewMap[components.TilePos](w),
	}
}

// Update despawns starved structures and returns what was removed.
// Vacating tile layers is the caller's job.
func (s *CleanupSystem) Update() []Despawned {
	// First pass: collect (the world is locked while a query is open)
	var removed []Despawned
	query := s.filter.Query()
	for query.Next() {
		structure, comp := query.Get()
		if !ShouldDespawn(comp.Mass, *structure) {
			continue
		}
		e := query.Entity()
		d := Despawned{Entity: e, Mass: comp.Mass}
		if s.orgMap.Has(e) {
			org := s.orgMap.Get(e)
			d.ID, d.Kind, d.Tracked = org.ID, org.Kind, true
		}
		if s.posMap.Has(e) {
			d.Pos = *s.posMap.Get(e)
		}
		removed = append(removed, d)
	}

	// Second pass: remove
	for _, d := range removed {
		s.Remove(d.Entity)
	}
	return removed
}

// Remove deletes entity with all its components.
// Removing an entity that is already gone is a no-op.
func (s *CleanupSystem) Remove(entity ecs.Entity) bool {
	if !s.world.Alive(entity) {
		return false
	}
	s.world.RemoveEntity(entity)
	return true
}
