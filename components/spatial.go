package components

// TilePos is an axial coordinate on the hex tile grid.
// The same position indexes both the terrain and organism layers.
type TilePos struct {
	X, Y int
}

// TerrainKind is the type of ground on a terrain tile.
type TerrainKind uint8

const (
	TerrainPlain TerrainKind = iota
	TerrainHigh
	TerrainRocky
	NumTerrainKinds
)

// Terrain is attached to every terrain-layer tile entity.
type Terrain struct {
	Kind TerrainKind
}

// ImpassableTerrain tags a tile entity as blocking organism movement into its position.
type ImpassableTerrain struct{}
