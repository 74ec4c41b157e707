package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
)

// ImpassableLookup reports whether a terrain tile entity blocks movement.
// *ecs.Map[components.ImpassableTerrain] satisfies it.
type ImpassableLookup interface {
	Has(entity ecs.Entity) bool
}

// Rand is the random source used for movement choices.
// *rand.Rand satisfies it; pass a seeded one for reproducible runs.
type Rand interface {
	Intn(n int) int
}

// PassableNeighbors returns the hex neighbors of pos that are inside the map,
// not on impassable terrain and not occupied on the organism layer.
// Order follows HexNeighborDirections.
func PassableNeighbors(
	pos components.TilePos,
	impassable ImpassableLookup,
	terrain *TileStorage,
	organisms *TileStorage,
	size MapSize,
) []components.TilePos {
	candidates := make([]components.TilePos, 0, len(HexNeighborDirections))
	for _, n := range HexNeighbors(pos) {
		if !size.Contains(n) {
			continue
		}
		if tile, ok := terrain.Get(n); ok && impassable.Has(tile) {
			continue
		}
		if organisms.Occupied(n) {
			continue
		}
		candidates = append(candidates, n)
	}
	return candidates
}

// RandomPassableNeighbor picks a passable neighbor of pos uniformly at random.
// Returns false when every neighbor is blocked; callers treat that as "cannot move".
// The result is only a proposal: two callers may pick the same tile.
func RandomPassableNeighbor(
	pos components.TilePos,
	impassable ImpassableLookup,
	terrain *TileStorage,
	organisms *TileStorage,
	size MapSize,
	rng Rand,
) (components.TilePos, bool) {
	candidates := PassableNeighbors(pos, impassable, terrain, organisms, size)
	if len(candidates) == 0 {
		return components.TilePos{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
