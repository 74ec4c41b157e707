package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
)

// testGrid is a small world with a fully plain terrain layer and an empty organism layer.
type testGrid struct {
	world      *ecs.World
	size       MapSize
	terrain    *TileStorage
	organisms  *TileStorage
	impassable *ecs.Map[components.ImpassableTerrain]

	plainMap *ecs.Map2[components.TilePos, components.Terrain]
	rockMap  *ecs.Map3[components.TilePos, components.Terrain, components.ImpassableTerrain]
	unitMap  *ecs.Map3[components.Organism, components.TilePos, components.Unit]
}

func newTestGrid(w, h int) *testGrid {
	world := ecs.NewWorld()
	size := MapSize{X: w, Y: h}
	g := &testGrid{
		world:      world,
		size:       size,
		terrain:    NewTileStorage(size),
		organisms:  NewTileStorage(size),
		impassable: ecs.NewMap[components.ImpassableTerrain](world),
		plainMap:   ecs.NewMap2[components.TilePos, components.Terrain](world),
		rockMap:    ecs.NewMap3[components.TilePos, components.Terrain, components.ImpassableTerrain](world),
		unitMap:    ecs.NewMap3[components.Organism, components.TilePos, components.Unit](world),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := components.TilePos{X: x, Y: y}
			e := g.plainMap.NewEntity(&pos, &components.Terrain{Kind: components.TerrainPlain})
			g.terrain.Set(pos, e)
		}
	}
	return g
}

// rock replaces the terrain at pos with impassable rock.
func (g *testGrid) rock(pos components.TilePos) {
	if old, ok := g.terrain.Get(pos); ok {
		g.world.RemoveEntity(old)
	}
	e := g.rockMap.NewEntity(&pos, &components.Terrain{Kind: components.TerrainRocky}, &components.ImpassableTerrain{})
	g.terrain.Set(pos, e)
}

// unit places a unit organism at pos on the organism layer.
func (g *testGrid) unit(pos components.TilePos) ecs.Entity {
	e := g.unitMap.NewEntity(&components.Organism{Kind: components.KindUnit}, &pos, &components.Unit{})
	g.organisms.Set(pos, e)
	return e
}

func (g *testGrid) neighbors(pos components.TilePos) []components.TilePos {
	return PassableNeighbors(pos, g.impassable, g.terrain, g.organisms, g.size)
}

func containsPos(list []components.TilePos, pos components.TilePos) bool {
	for _, p := range list {
		if p == pos {
			return true
		}
	}
	return false
}
