package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
	"github.com/pthm-cable/emergence/systems"
)

// spawnInitialPopulation places the configured plants, fungi and units on
// distinct random passable tiles.
func (s *Simulation) spawnInitialPopulation() error {
	pop := s.cfg.Population
	free := s.freeTiles()
	want := pop.InitialPlants + pop.InitialFungi + pop.InitialUnits
	if want > len(free) {
		return fmt.Errorf("initial population %d, %d free tiles: %w", want, len(free), ErrMapFull)
	}

	s.rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	spawns := []struct {
		n     int
		spawn func(components.TilePos) (ecs.Entity, error)
	}{
		{pop.InitialPlants, s.SpawnPlant},
		{pop.InitialFungi, s.SpawnFungi},
		{pop.InitialUnits, s.SpawnUnit},
	}
	next := 0
	for _, sp := range spawns {
		for i := 0; i < sp.n; i++ {
			if _, err := sp.spawn(free[next]); err != nil {
				return fmt.Errorf("initial population: %w", err)
			}
			next++
		}
	}
	return nil
}

// freeTiles returns every passable, unoccupied tile in row-major order.
func (s *Simulation) freeTiles() []components.TilePos {
	tiles := make([]components.TilePos, 0, s.size.Count())
	for y := 0; y < s.size.Y; y++ {
		for x := 0; x < s.size.X; x++ {
			pos := components.TilePos{X: x, Y: y}
			if s.checkSpawnTile(pos) == nil {
				tiles = append(tiles, pos)
			}
		}
	}
	return tiles
}

// handleDespawn vacates the organism layer and records the death.
// The entity itself is already gone.
func (s *Simulation) handleDespawn(d systems.Despawned) {
	if e, ok := s.organisms.Get(d.Pos); ok && e == d.Entity {
		s.organisms.Remove(d.Pos)
	}
	if !d.Tracked {
		slog.Debug("structure_despawned", "tick", s.tick, "mass", d.Mass)
		return
	}
	if s.population[d.Kind] > 0 {
		s.population[d.Kind]--
	}

	life := s.lifetimeTracker.Remove(d.ID, s.tick, s.cfg.Physics.DT)
	s.collector.RecordDeath(d.Kind, life)

	slog.Debug("structure_despawned",
		"tick", s.tick,
		"id", d.ID,
		"kind", d.Kind.String(),
		"x", d.Pos.X,
		"y", d.Pos.Y,
		"mass", d.Mass,
	)
}

func (s *Simulation) recordUnitMove(id uint32, moved bool) {
	if moved {
		s.lifetimeTracker.RecordMove(id)
	} else {
		s.lifetimeTracker.RecordBlocked(id)
	}
}
