package gesture

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// flingDeceleration is the rate, in pixels per second squared, at which a
// fling slows to rest.
const flingDeceleration = 2000

// Fling animates a node's position after a pan ends, continuing along the
// release velocity and easing to rest. Call Update(dt) each frame until Done.
//
// There is no global animation manager: users call Update themselves.
type Fling struct {
	tweens [2]*gween.Tween
	target *Node
	Done   bool

	// DistanceX and DistanceY are the total displacement the fling applies,
	// in the node's parent space.
	DistanceX, DistanceY float64
}

// NewFling starts a fling of node from its current position with the given
// world-space velocity in pixels per second. Speeds are clamped to
// maxVelocity when it is positive.
func NewFling(node *Node, vx, vy, maxVelocity float64) *Fling {
	f := &Fling{target: node}
	speed := math.Hypot(vx, vy)
	if speed == 0 || node == nil {
		f.Done = true
		return f
	}
	if maxVelocity > 0 && speed > maxVelocity {
		vx, vy = vx*maxVelocity/speed, vy*maxVelocity/speed
		speed = maxVelocity
	}
	duration := speed / flingDeceleration
	// Linear deceleration covers half the distance constant speed would.
	wx, wy := vx*duration/2, vy*duration/2

	dx, dy := wx, wy
	if p := node.Parent; p != nil {
		ox, oy := p.WorldToLocal(0, 0)
		tx, ty := p.WorldToLocal(wx, wy)
		dx, dy = tx-ox, ty-oy
	}
	f.DistanceX, f.DistanceY = dx, dy
	f.tweens[0] = gween.New(float32(node.X), float32(node.X+dx), float32(duration), ease.OutQuad)
	f.tweens[1] = gween.New(float32(node.Y), float32(node.Y+dy), float32(duration), ease.OutQuad)
	return f
}

// FlingFromEvent starts a fling for the node of a pan end event.
func (e *Engine) FlingFromEvent(ev GestureEvent) *Fling {
	return NewFling(ev.Node, ev.VelocityX, ev.VelocityY, e.cfg.MaxFlingVelocity)
}

// Update advances the fling by dt seconds and writes the node position. If
// the node has been disposed, Done is set and no writes occur.
func (f *Fling) Update(dt float32) {
	if f.Done {
		return
	}
	if f.target.IsDisposed() {
		f.Done = true
		return
	}
	x, doneX := f.tweens[0].Update(dt)
	y, doneY := f.tweens[1].Update(dt)
	f.target.X = float64(x)
	f.target.Y = float64(y)
	f.Done = doneX && doneY
}
