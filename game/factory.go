package game

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
	"github.com/pthm-cable/emergence/systems"
)

// Spawn errors.
var (
	ErrOutOfBounds = errors.New("tile outside map")
	ErrOccupied    = errors.New("tile occupied")
	ErrImpassable  = errors.New("tile impassable")
	ErrMapFull     = errors.New("not enough free tiles")
)

// spawnTerrain creates one terrain entity per tile. Rocky tiles get the impassable marker.
func (s *Simulation) spawnTerrain(kinds systems.TerrainMap) {
	s.terrainKinds = kinds
	for y := 0; y < s.size.Y; y++ {
		for x := 0; x < s.size.X; x++ {
			pos := components.TilePos{X: x, Y: y}
			terrain := components.Terrain{Kind: kinds.At(pos)}
			e := s.terrainMapper.NewEntity(&pos, &terrain)
			if !terrain.Kind.Passable() {
				s.impassableMap.Add(e, &components.ImpassableTerrain{})
			}
			s.terrain.Set(pos, e)
		}
	}
}

// checkSpawnTile reports why an organism cannot be placed at pos, or nil.
func (s *Simulation) checkSpawnTile(pos components.TilePos) error {
	if !s.size.Contains(pos) {
		return fmt.Errorf("%v: %w", pos, ErrOutOfBounds)
	}
	if s.organisms.Occupied(pos) {
		return fmt.Errorf("%v: %w", pos, ErrOccupied)
	}
	if e, ok := s.terrain.Get(pos); ok && s.impassableMap.Has(e) {
		return fmt.Errorf("%v: %w", pos, ErrImpassable)
	}
	return nil
}

// SpawnPlant places a plant with the configured starting mass at pos.
func (s *Simulation) SpawnPlant(pos components.TilePos) (ecs.Entity, error) {
	return s.spawnStructure(pos, components.KindPlant)
}

// SpawnFungi places a fungus with the configured starting mass at pos.
func (s *Simulation) SpawnFungi(pos components.TilePos) (ecs.Entity, error) {
	return s.spawnStructure(pos, components.KindFungus)
}

func (s *Simulation) spawnStructure(pos components.TilePos, kind components.OrganismKind) (ecs.Entity, error) {
	if err := s.checkSpawnTile(pos); err != nil {
		return ecs.Entity{}, err
	}
	tmpl := structureTemplates[kind]

	org := s.newOrganism(kind)
	comp := components.Composition{Mass: s.cfg.Structure.StartingMass}
	structure := components.DefaultStructure(s.cfg.Structure)

	e := s.structureMapper.NewEntity(&org, &pos, &comp, &structure)
	if tmpl.plant {
		s.plantMap.Add(e, &components.Plant{PhotosynthesisRate: s.cfg.Plant.PhotosynthesisRate})
	}
	if tmpl.fungi {
		s.fungiMap.Add(e, &components.Fungi{})
	}
	if tmpl.impassable {
		s.impassableMap.Add(e, &components.ImpassableTerrain{})
	}

	s.registerBirth(e, pos, org, comp.Mass)
	return e, nil
}

// SpawnUnit places a mobile unit at pos.
func (s *Simulation) SpawnUnit(pos components.TilePos) (ecs.Entity, error) {
	if err := s.checkSpawnTile(pos); err != nil {
		return ecs.Entity{}, err
	}
	org := s.newOrganism(components.KindUnit)
	e := s.unitMapper.NewEntity(&org, &pos, &components.Unit{})
	s.registerBirth(e, pos, org, 0)
	return e, nil
}

func (s *Simulation) newOrganism(kind components.OrganismKind) components.Organism {
	id := s.nextID
	s.nextID++
	return components.Organism{ID: id, Kind: kind, BirthTick: s.tick}
}

func (s *Simulation) registerBirth(e ecs.Entity, pos components.TilePos, org components.Organism, mass float64) {
	s.organisms.Set(pos, e)
	s.population[org.Kind]++
	s.lifetimeTracker.Register(org.ID, s.tick, org.Kind, mass)
	s.collector.RecordBirth(org.Kind)
}
