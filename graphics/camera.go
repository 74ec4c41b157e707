package graphics

import "github.com/go-gl/mathgl/mgl32"

// Camera controls the viewport into the hex map.
// The map is bounded, so the center is kept inside the map's pixel extent.
type Camera struct {
	// Center is the camera center in map pixel coordinates
	Center mgl32.Vec2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	Viewport mgl32.Vec2

	// Map pixel extent
	BoundsMin, BoundsMax mgl32.Vec2

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// NewCamera creates a camera centered on the given map extent with 1:1 zoom.
func NewCamera(viewport, boundsMin, boundsMax mgl32.Vec2) *Camera {
	c := &Camera{
		Zoom:      1.0,
		BoundsMin: boundsMin,
		BoundsMax: boundsMax,
		MaxZoom:   4.0,
	}
	c.Resize(viewport)
	c.Reset()
	return c
}

// WorldToScreen converts map pixel coordinates to screen coordinates.
func (c *Camera) WorldToScreen(w mgl32.Vec2) mgl32.Vec2 {
	return c.Viewport.Mul(0.5).Add(w.Sub(c.Center).Mul(c.Zoom))
}

// ScreenToWorld converts screen coordinates to map pixel coordinates.
func (c *Camera) ScreenToWorld(s mgl32.Vec2) mgl32.Vec2 {
	return c.Center.Add(s.Sub(c.Viewport.Mul(0.5)).Mul(1 / c.Zoom))
}

// IsVisible returns true if a circle at w with the given radius could be on
// screen (conservative check for culling).
func (c *Camera) IsVisible(w mgl32.Vec2, radius float32) bool {
	d := w.Sub(c.Center)
	halfW := c.Viewport.X()/(2*c.Zoom) + radius
	halfH := c.Viewport.Y()/(2*c.Zoom) + radius
	return mgl32.Abs(d.X()) <= halfW && mgl32.Abs(d.Y()) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
// MinZoom keeps the visible area no larger than the map.
func (c *Camera) Resize(viewport mgl32.Vec2) {
	c.Viewport = viewport
	extent := c.BoundsMax.Sub(c.BoundsMin)
	c.MinZoom = 0
	if extent.X() > 0 && extent.Y() > 0 {
		c.MinZoom = min(max(viewport.X()/extent.X(), viewport.Y()/extent.Y()), c.MaxZoom)
	}
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(delta mgl32.Vec2) {
	c.Center = c.clampCenter(c.Center.Add(delta.Mul(1 / c.Zoom)))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = mgl32.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the map center at 1:1 zoom, or MinZoom if larger.
func (c *Camera) Reset() {
	c.Center = c.BoundsMin.Add(c.BoundsMax).Mul(0.5)
	c.SetZoom(1.0)
}

// VisibleWorldBounds returns the map pixel bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (lo, hi mgl32.Vec2) {
	half := c.Viewport.Mul(1 / (2 * c.Zoom))
	return c.Center.Sub(half), c.Center.Add(half)
}

func (c *Camera) clampCenter(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		mgl32.Clamp(p.X(), c.BoundsMin.X(), c.BoundsMax.X()),
		mgl32.Clamp(p.Y(), c.BoundsMin.Y(), c.BoundsMax.Y()),
	}
}
