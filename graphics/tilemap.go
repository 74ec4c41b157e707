package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/emergence/components"
)

// TilemapLayer describes one visualization layer of the hex map.
// Layers with higher Z draw above lower ones.
type TilemapLayer struct {
	Name     string
	TileSize mgl32.Vec2 // pixel width and height of one pointy-top hex
	Z        float32
}

// DefaultTileSize is the pixel size shared by all layers.
var DefaultTileSize = mgl32.Vec2{48, 54}

var (
	// TerrainTilemap lies at the bottom and shows terrain entities.
	TerrainTilemap = TilemapLayer{Name: "terrain", TileSize: DefaultTileSize, Z: 0}
	// OrganismsTilemap lies above terrain and shows organisms.
	OrganismsTilemap = TilemapLayer{Name: "organisms", TileSize: DefaultTileSize, Z: 1}
	// ProduceTilemap lies above organisms and shows produce.
	ProduceTilemap = TilemapLayer{Name: "produce", TileSize: DefaultTileSize, Z: 2}
)

// Layers returns all layers in draw order.
func Layers() []TilemapLayer {
	return []TilemapLayer{TerrainTilemap, OrganismsTilemap, ProduceTilemap}
}

// TileCenter returns the pixel center of pos on this layer.
// Rows are offset by half a tile per step of Y and overlap by a quarter of the tile height.
func (l TilemapLayer) TileCenter(pos components.TilePos) mgl32.Vec2 {
	x := l.TileSize.X() * (float32(pos.X) + 0.5*float32(pos.Y))
	y := l.TileSize.Y() * 0.75 * float32(pos.Y)
	return mgl32.Vec2{x, y}
}

// TileCenter3 returns the tile center with the layer's Z as the third component.
func (l TilemapLayer) TileCenter3(pos components.TilePos) mgl32.Vec3 {
	return l.TileCenter(pos).Vec3(l.Z)
}

// MapBounds returns the pixel extent covering every tile of a width x height map.
func (l TilemapLayer) MapBounds(width, height int) (lo, hi mgl32.Vec2) {
	half := l.TileSize.Mul(0.5)
	lo = mgl32.Vec2{-half.X(), -half.Y()}
	// Rows shift right as Y grows, so the last row reaches furthest
	last := l.TileCenter(components.TilePos{X: width - 1, Y: height - 1})
	hi = last.Add(half)
	return lo, hi
}

// PixelToTile returns the tile whose hex contains the pixel p.
func (l TilemapLayer) PixelToTile(p mgl32.Vec2) components.TilePos {
	r := float64(p.Y() / (l.TileSize.Y() * 0.75))
	q := float64(p.X()/l.TileSize.X()) - 0.5*r
	return roundAxial(q, r)
}

// roundAxial rounds fractional axial coordinates to the nearest hex.
func roundAxial(q, r float64) components.TilePos {
	s := -q - r
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)

	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return components.TilePos{X: int(rq), Y: int(rr)}
}
