package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/emergence/components"
)

func newTestCamera() *Camera {
	return NewCamera(mgl32.Vec2{1280, 720}, mgl32.Vec2{0, 0}, mgl32.Vec2{2560, 1440})
}

func TestNewCamera(t *testing.T) {
	cam := newTestCamera()

	if cam.Center != (mgl32.Vec2{1280, 720}) {
		t.Errorf("expected camera at (1280, 720), got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	// max(1280/2560, 720/1440)
	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := newTestCamera()
	if got := cam.WorldToScreen(cam.Center); !got.ApproxEqual(mgl32.Vec2{640, 360}) {
		t.Errorf("expected screen center (640, 360), got %v", got)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2.5)

	for _, s := range []mgl32.Vec2{{640, 360}, {100, 100}, {1200, 600}} {
		back := cam.WorldToScreen(cam.ScreenToWorld(s))
		if !back.ApproxEqualThreshold(s, 1e-3) {
			t.Errorf("roundtrip failed: %v -> %v", s, back)
		}
	}
}

func TestPanStaysInBounds(t *testing.T) {
	cam := newTestCamera()
	cam.Pan(mgl32.Vec2{-5000, 0})
	if cam.Center.X() != 0 {
		t.Errorf("expected center clamped to left edge, got %v", cam.Center)
	}

	cam.Reset()
	cam.SetZoom(2)
	cam.Pan(mgl32.Vec2{200, 0})
	if !cam.Center.ApproxEqual(mgl32.Vec2{1380, 720}) {
		t.Errorf("pan at 2x should move 100 world px, got %v", cam.Center)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newTestCamera()

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want MinZoom %f", cam.Zoom, cam.MinZoom)
	}
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want MaxZoom %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()
	if !cam.IsVisible(cam.Center, 0) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(mgl32.Vec2{0, 0}, 10) {
		t.Error("far corner should be culled at 1x")
	}
	lo, hi := cam.VisibleWorldBounds()
	if !lo.ApproxEqual(mgl32.Vec2{640, 360}) || !hi.ApproxEqual(mgl32.Vec2{1920, 1080}) {
		t.Errorf("visible bounds = %v..%v", lo, hi)
	}
}

func TestPixelToTileInvertsTileCenter(t *testing.T) {
	l := OrganismsTilemap
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			pos := components.TilePos{X: x, Y: y}
			c := l.TileCenter(pos)
			if got := l.PixelToTile(c); got != pos {
				t.Errorf("PixelToTile(center of %v) = %v", pos, got)
			}
			// A point well inside the hex maps to the same tile
			if got := l.PixelToTile(c.Add(mgl32.Vec2{10, 8})); got != pos {
				t.Errorf("PixelToTile(offset in %v) = %v", pos, got)
			}
		}
	}
}

func TestMapBounds(t *testing.T) {
	lo, hi := TerrainTilemap.MapBounds(2, 2)
	if !lo.ApproxEqual(mgl32.Vec2{-24, -27}) {
		t.Errorf("lo = %v", lo)
	}
	// Last tile (1,1) center is (72, 40.5)
	if !hi.ApproxEqual(mgl32.Vec2{96, 67.5}) {
		t.Errorf("hi = %v", hi)
	}
}
