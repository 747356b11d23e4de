package ebitensource

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/gesture"
)

// Camera maps between screen pixels and the world space the gesture tree
// lives in. Assign its ScreenToWorld method to Source.ToWorld so hit testing
// sees world coordinates.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle the camera covers.
	Viewport gesture.Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	Bounds        gesture.Rect

	followTarget  *gesture.Node
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	scrollX, scrollY *gween.Tween
}

// NewCamera creates a camera centered on the world origin.
func NewCamera(viewport gesture.Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// Follow makes the camera track node's origin plus an offset. A lerp of 1
// snaps immediately; lower values smooth the motion.
func (c *Camera) Follow(node *gesture.Node, offsetX, offsetY, lerp float64) {
	c.followTarget = node
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given world position over duration
// seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollX = gween.New(float32(c.X), float32(x), duration, easeFn)
	c.scrollY = gween.New(float32(c.Y), float32(y), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool { return c.scrollX != nil }

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(bounds gesture.Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll and bounds clamping by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		tx, ty := c.followTarget.LocalToWorld(0, 0)
		c.X += (tx + c.followOffsetX - c.X) * c.followLerp
		c.Y += (ty + c.followOffsetY - c.Y) * c.followLerp
	}
	if c.scrollX != nil {
		x, doneX := c.scrollX.Update(dt)
		y, doneY := c.scrollY.Update(dt)
		c.X, c.Y = float64(x), float64(y)
		if doneX && doneY {
			c.scrollX, c.scrollY = nil, nil
		}
	}
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// Bounds smaller than the visible area center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// View returns the world-to-screen matrix:
//
//	Translate(viewport center) * Scale(Zoom) * Rotate(-Rotation) * Translate(-X, -Y)
func (c *Camera) View() gesture.Affine {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom
	return gesture.Affine{
		z * cos, z * sin,
		-z * sin, z * cos,
		cx + z*(-cos*c.X+sin*c.Y),
		cy + z*(-sin*c.X-cos*c.Y),
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return c.View().Apply(wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates. A zero
// zoom maps every point to NaN.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	inv, ok := c.View().Invert()
	if !ok {
		return math.NaN(), math.NaN()
	}
	return inv.Apply(sx, sy)
}

// VisibleBounds returns the world-space bounding box of the viewport.
func (c *Camera) VisibleBounds() gesture.Rect {
	vx, vy := c.Viewport.X, c.Viewport.Y
	vr, vb := vx+c.Viewport.Width, vy+c.Viewport.Height

	x0, y0 := c.ScreenToWorld(vx, vy)
	x1, y1 := c.ScreenToWorld(vr, vy)
	x2, y2 := c.ScreenToWorld(vr, vb)
	x3, y3 := c.ScreenToWorld(vx, vb)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return gesture.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
