package game

import (
	"log/slog"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
	"github.com/pthm-cable/emergence/telemetry"
)

// Snapshot captures terrain and every living organism, ordered by ID.
func (s *Simulation) Snapshot(bm *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RunID:    s.runInfo.ID.String(),
		RNGSeed:  s.runInfo.Seed,
		Width:    s.size.X,
		Height:   s.size.Y,
		Tick:     s.tick,
		Terrain:  make([]string, s.size.Y),
		Bookmark: bm,
	}

	row := make([]byte, s.size.X)
	for y := 0; y < s.size.Y; y++ {
		for x := 0; x < s.size.X; x++ {
			row[x] = telemetry.TerrainGlyph(s.terrainKinds.At(components.TilePos{X: x, Y: y}))
		}
		snap.Terrain[y] = string(row)
	}

	orgMap := ecs.NewMap[components.Organism](s.world)
	s.organisms.Each(func(pos components.TilePos, e ecs.Entity) {
		org := orgMap.Get(e)
		state := telemetry.OrganismState{
			ID:   org.ID,
			Kind: org.Kind,
			X:    pos.X,
			Y:    pos.Y,
		}
		if m, ok := s.Mass(e); ok {
			state.Mass = m
		}
		if life := s.lifetimeTracker.Get(org.ID); life != nil {
			cp := *life
			state.Lifetime = &cp
		}
		snap.Organisms = append(snap.Organisms, state)
	})
	sort.Slice(snap.Organisms, func(i, j int) bool {
		return snap.Organisms[i].ID < snap.Organisms[j].ID
	})

	return snap
}

// saveSnapshot writes a snapshot tagged with bm to the snapshot directory.
func (s *Simulation) saveSnapshot(bm *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(s.Snapshot(bm), s.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot_saved", "path", path, "tick", s.tick)
}
