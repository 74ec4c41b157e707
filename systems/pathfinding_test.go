package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/emergence/components"
)

func TestPassableNeighborsOpenField(t *testing.T) {
	g := newTestGrid(5, 5)
	center := components.TilePos{X: 2, Y: 2}

	got := g.neighbors(center)
	if len(got) != 6 {
		t.Fatalf("got %d neighbors, want 6: %v", len(got), got)
	}
	for i, n := range got {
		if n != HexNeighbors(center)[i] {
			t.Errorf("neighbor %d = %v, want direction order", i, n)
		}
	}
}

func TestPassableNeighborsFilters(t *testing.T) {
	center := components.TilePos{X: 2, Y: 2}

	tests := []struct {
		name    string
		setup   func(g *testGrid)
		pos     components.TilePos
		exclude []components.TilePos
		want    int
	}{
		{
			name:    "corner drops out of bounds",
			setup:   func(g *testGrid) {},
			pos:     components.TilePos{X: 0, Y: 0},
			exclude: []components.TilePos{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}},
			want:    2,
		},
		{
			name:    "impassable terrain",
			setup:   func(g *testGrid) { g.rock(components.TilePos{X: 3, Y: 2}) },
			pos:     center,
			exclude: []components.TilePos{{X: 3, Y: 2}},
			want:    5,
		},
		{
			name:    "occupied by organism",
			setup:   func(g *testGrid) { g.unit(components.TilePos{X: 2, Y: 3}) },
			pos:     center,
			exclude: []components.TilePos{{X: 2, Y: 3}},
			want:    5,
		},
		{
			name: "rock and organism together",
			setup: func(g *testGrid) {
				g.rock(components.TilePos{X: 1, Y: 2})
				g.unit(components.TilePos{X: 3, Y: 1})
			},
			pos:     center,
			exclude: []components.TilePos{{X: 1, Y: 2}, {X: 3, Y: 1}},
			want:    4,
		},
		{
			name:    "own tile occupancy does not matter",
			setup:   func(g *testGrid) { g.unit(center) },
			pos:     center,
			exclude: []components.TilePos{center},
			want:    6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(5, 5)
			tt.setup(g)

			got := g.neighbors(tt.pos)
			if len(got) != tt.want {
				t.Errorf("got %d neighbors, want %d: %v", len(got), tt.want, got)
			}
			for _, ex := range tt.exclude {
				if containsPos(got, ex) {
					t.Errorf("neighbor %v should have been filtered", ex)
				}
			}
		})
	}
}

func TestRandomPassableNeighborBoxedIn(t *testing.T) {
	g := newTestGrid(5, 5)
	center := components.TilePos{X: 2, Y: 2}
	for i, n := range HexNeighbors(center) {
		if i%2 == 0 {
			g.rock(n)
		} else {
			g.unit(n)
		}
	}

	rng := rand.New(rand.NewSource(1))
	if pos, ok := RandomPassableNeighbor(center, g.impassable, g.terrain, g.organisms, g.size, rng); ok {
		t.Errorf("expected no candidate, got %v", pos)
	}
}

func TestRandomPassableNeighborSingleOpening(t *testing.T) {
	g := newTestGrid(5, 5)
	center := components.TilePos{X: 2, Y: 2}
	open := HexNeighbors(center)[4]
	for _, n := range HexNeighbors(center) {
		if n != open {
			g.rock(n)
		}
	}

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pos, ok := RandomPassableNeighbor(center, g.impassable, g.terrain, g.organisms, g.size, rng)
		if !ok || pos != open {
			t.Fatalf("seed %d: got %v, %v; want %v, true", seed, pos, ok, open)
		}
	}
}

func TestRandomPassableNeighborOnlyValidTiles(t *testing.T) {
	g := newTestGrid(6, 6)
	g.rock(components.TilePos{X: 2, Y: 2})
	g.rock(components.TilePos{X: 4, Y: 1})
	g.unit(components.TilePos{X: 3, Y: 3})
	g.unit(components.TilePos{X: 1, Y: 3})

	rng := rand.New(rand.NewSource(7))
	for y := 0; y < g.size.Y; y++ {
		for x := 0; x < g.size.X; x++ {
			from := components.TilePos{X: x, Y: y}
			for i := 0; i < 20; i++ {
				pos, ok := RandomPassableNeighbor(from, g.impassable, g.terrain, g.organisms, g.size, rng)
				if !ok {
					continue
				}
				if !g.size.Contains(pos) {
					t.Fatalf("%v -> %v is out of bounds", from, pos)
				}
				if tile, _ := g.terrain.Get(pos); g.impassable.Has(tile) {
					t.Fatalf("%v -> %v is impassable", from, pos)
				}
				if g.organisms.Occupied(pos) {
					t.Fatalf("%v -> %v is occupied", from, pos)
				}
				if HexDistance(from, pos) != 1 {
					t.Fatalf("%v -> %v is not adjacent", from, pos)
				}
			}
		}
	}
}

func TestRandomPassableNeighborSeeded(t *testing.T) {
	g := newTestGrid(5, 5)
	center := components.TilePos{X: 2, Y: 2}

	run := func(seed int64) []components.TilePos {
		rng := rand.New(rand.NewSource(seed))
		out := make([]components.TilePos, 30)
		for i := range out {
			out[i], _ = RandomPassableNeighbor(center, g.impassable, g.terrain, g.organisms, g.size, rng)
		}
		return out
	}

	a, b := run(99), run(99)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at draw %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRandomPassableNeighborUniform(t *testing.T) {
	g := newTestGrid(5, 5)
	center := components.TilePos{X: 2, Y: 2}
	rng := rand.New(rand.NewSource(3))

	const draws = 6000
	counts := make(map[components.TilePos]int)
	for i := 0; i < draws; i++ {
		pos, _ := RandomPassableNeighbor(center, g.impassable, g.terrain, g.organisms, g.size, rng)
		counts[pos]++
	}

	if len(counts) != 6 {
		t.Fatalf("expected all 6 neighbors to be chosen, got %d", len(counts))
	}
	for pos, c := range counts {
		// Expected 1000 each; allow a wide band
		if c < 850 || c > 1150 {
			t.Errorf("neighbor %v chosen %d times, want about %d", pos, c, draws/6)
		}
	}
}
