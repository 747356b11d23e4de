package gesture

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

const velocityRingSize = 20

type velocitySample struct {
	t time.Duration
	p Vec2
}

// velocityTracker estimates pointer velocity from a ring of recent samples
// with a least-squares line fit per axis.
type velocityTracker struct {
	ring   [velocityRingSize]velocitySample
	n      int
	head   int
	window time.Duration

	// scratch buffers reused across estimates
	ts, xs, ys []float64
}

func newVelocityTracker(window time.Duration) *velocityTracker {
	return &velocityTracker{window: window}
}

// Add records a sample. Samples older than the newest are dropped.
func (v *velocityTracker) Add(t time.Duration, p Vec2) {
	if v.n > 0 {
		last := v.ring[(v.head+velocityRingSize-1)%velocityRingSize]
		if t < last.t {
			return
		}
	}
	v.ring[v.head] = velocitySample{t: t, p: p}
	v.head = (v.head + 1) % velocityRingSize
	if v.n < velocityRingSize {
		v.n++
	}
}

// Reset drops all samples.
func (v *velocityTracker) Reset() {
	v.n = 0
	v.head = 0
}

// Velocity returns the estimated velocity in pixels per second over the
// samples within the window of the newest one.
func (v *velocityTracker) Velocity() Vec2 {
	if v.n < 2 {
		return Vec2{}
	}
	v.ts, v.xs, v.ys = v.ts[:0], v.xs[:0], v.ys[:0]
	newest := v.ring[(v.head+velocityRingSize-1)%velocityRingSize]
	for i := 0; i < v.n; i++ {
		s := v.ring[(v.head+velocityRingSize-v.n+i)%velocityRingSize]
		age := newest.t - s.t
		if v.window > 0 && age > v.window {
			continue
		}
		v.ts = append(v.ts, -age.Seconds())
		v.xs = append(v.xs, s.p.X)
		v.ys = append(v.ys, s.p.Y)
	}
	if len(v.ts) < 2 || v.ts[0] == v.ts[len(v.ts)-1] {
		return Vec2{}
	}
	_, vx := stat.LinearRegression(v.ts, v.xs, nil, false)
	_, vy := stat.LinearRegression(v.ts, v.ys, nil, false)
	if math.IsNaN(vx) || math.IsNaN(vy) {
		return Vec2{}
	}
	return Vec2{vx, vy}
}
