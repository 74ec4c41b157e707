package systems

import (
	"github.com/pthm-cable/emergence/components"
	"github.com/pthm-cable/emergence/config"
)

// TerrainMap is a dense grid of terrain kinds indexed [y][x].
type TerrainMap [][]components.TerrainKind

// GenerateTerrain classifies every tile from fractal noise.
// Low noise is plain, then high ground, and the top band is impassable rock.
func GenerateTerrain(size MapSize, cfg config.TerrainConfig, seed int64) TerrainMap {
	noise := NewFractalNoise(seed, cfg.Octaves)

	grid := make(TerrainMap, size.Y)
	for y := range grid {
		grid[y] = make([]components.TerrainKind, size.X)
		for x := range grid[y] {
			// Shear x by half a row so noise features follow the hex layout
			fx := (float64(x) + 0.5*float64(y)) * cfg.Scale
			fy := float64(y) * cfg.Scale
			grid[y][x] = classifyTerrain(noise.Sample(fx, fy), cfg)
		}
	}
	return grid
}

func classifyTerrain(v float64, cfg config.TerrainConfig) components.TerrainKind {
	switch {
	case v >= cfg.RockyThreshold:
		return components.TerrainRocky
	case v >= cfg.HighThreshold:
		return components.TerrainHigh
	default:
		return components.TerrainPlain
	}
}

// At returns the terrain kind at pos. Positions outside the map read as rock.
func (m TerrainMap) At(pos components.TilePos) components.TerrainKind {
	if pos.Y < 0 || pos.Y >= len(m) || pos.X < 0 || pos.X >= len(m[pos.Y]) {
		return components.TerrainRocky
	}
	return m[pos.Y][pos.X]
}

// Counts returns how many tiles of each kind the map has.
func (m TerrainMap) Counts() [components.NumTerrainKinds]int {
	var counts [components.NumTerrainKinds]int
	for _, row := range m {
		for _, k := range row {
			counts[k]++
		}
	}
	return counts
}
