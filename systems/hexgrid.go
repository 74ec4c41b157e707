package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
)

// MapSize is the bounded extent of the hex tile grid.
type MapSize struct {
	X, Y int
}

// Contains reports whether pos lies inside the map.
func (m MapSize) Contains(pos components.TilePos) bool {
	return pos.X >= 0 && pos.X < m.X && pos.Y >= 0 && pos.Y < m.Y
}

// Count returns the number of tiles in the map.
func (m MapSize) Count() int {
	return m.X * m.Y
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]components.TilePos{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
}

// HexNeighbors returns the six adjacent positions, including ones outside the map.
func HexNeighbors(pos components.TilePos) [6]components.TilePos {
	var result [6]components.TilePos
	for i, dir := range HexNeighborDirections {
		result[i] = components.TilePos{X: pos.X + dir.X, Y: pos.Y + dir.Y}
	}
	return result
}

// HexDistance returns the number of steps between two axial positions.
func HexDistance(a, b components.TilePos) int {
	dq := absInt(a.X - b.X)
	dr := absInt(a.Y - b.Y)
	ds := absInt((-a.X - a.Y) - (-b.X - b.Y))
	return max(dq, dr, ds)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TileStorage maps tile positions to the entity occupying them on one layer.
// Sparse: empty tiles have no entry.
type TileStorage struct {
	size  MapSize
	tiles map[components.TilePos]ecs.Entity
}

// NewTileStorage creates an empty layer for a map of the given size.
func NewTileStorage(size MapSize) *TileStorage {
	return &TileStorage{
		size:  size,
		tiles: make(map[components.TilePos]ecs.Entity),
	}
}

// Size returns the map size this layer covers.
func (s *TileStorage) Size() MapSize {
	return s.size
}

// Get returns the entity at pos, if any.
func (s *TileStorage) Get(pos components.TilePos) (ecs.Entity, bool) {
	e, ok := s.tiles[pos]
	return e, ok
}

// Occupied reports whether any entity sits at pos.
func (s *TileStorage) Occupied(pos components.TilePos) bool {
	_, ok := s.tiles[pos]
	return ok
}

// Set places e at pos, replacing any previous occupant.
// Positions outside the map are ignored.
func (s *TileStorage) Set(pos components.TilePos, e ecs.Entity) {
	if !s.size.Contains(pos) {
		return
	}
	s.tiles[pos] = e
}

// Remove clears pos. Removing an empty tile is a no-op.
func (s *TileStorage) Remove(pos components.TilePos) {
	delete(s.tiles, pos)
}

// Move relocates the occupant of from to to.
func (s *TileStorage) Move(from, to components.TilePos) {
	e, ok := s.tiles[from]
	if !ok {
		return
	}
	delete(s.tiles, from)
	s.Set(to, e)
}

// Len returns the number of occupied tiles.
func (s *TileStorage) Len() int {
	return len(s.tiles)
}

// Each calls fn for every occupied tile in unspecified order.
func (s *TileStorage) Each(fn func(pos components.TilePos, e ecs.Entity)) {
	for pos, e := range s.tiles {
		fn(pos, e)
	}
}
