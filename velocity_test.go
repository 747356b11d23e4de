package gesture

import (
	"math"
	"testing"
	"time"
)

func TestVelocityTrackerLinearMotion(t *testing.T) {
	v := newVelocityTracker(100 * ms)
	for i := 0; i <= 5; i++ {
		at := time.Duration(i) * 10 * ms
		v.Add(at, Vec2{float64(i), float64(-2 * i)})
	}
	got := v.Velocity()
	if math.Abs(got.X-100) > 1e-6 || math.Abs(got.Y+200) > 1e-6 {
		t.Errorf("Velocity = %+v, want (100, -200)", got)
	}
}

func TestVelocityTrackerWindow(t *testing.T) {
	v := newVelocityTracker(50 * ms)
	// A slow start outside the window must not drag the estimate down.
	v.Add(0, Vec2{})
	v.Add(200*ms, Vec2{1, 0})
	for i := 1; i <= 4; i++ {
		v.Add(200*ms+time.Duration(i)*10*ms, Vec2{1 + float64(10*i), 0})
	}
	if got := v.Velocity(); math.Abs(got.X-1000) > 1e-6 {
		t.Errorf("Velocity.X = %v, want 1000", got.X)
	}
}

func TestVelocityTrackerDegenerate(t *testing.T) {
	v := newVelocityTracker(100 * ms)
	if got := v.Velocity(); got != (Vec2{}) {
		t.Errorf("empty tracker = %+v, want zero", got)
	}
	v.Add(10*ms, Vec2{5, 5})
	if got := v.Velocity(); got != (Vec2{}) {
		t.Errorf("single sample = %+v, want zero", got)
	}
	v.Add(10*ms, Vec2{50, 50})
	if got := v.Velocity(); got != (Vec2{}) {
		t.Errorf("samples at one instant = %+v, want zero", got)
	}
	v.Add(5*ms, Vec2{100, 100})
	if v.n != 2 {
		t.Errorf("out-of-order sample kept, n = %d", v.n)
	}
	v.Reset()
	if v.n != 0 {
		t.Errorf("n = %d after Reset", v.n)
	}
}

func TestVelocityTrackerRingWraps(t *testing.T) {
	v := newVelocityTracker(0)
	for i := 0; i < 3*velocityRingSize; i++ {
		v.Add(time.Duration(i)*ms, Vec2{float64(2 * i), 0})
	}
	if v.n != velocityRingSize {
		t.Fatalf("n = %d, want %d", v.n, velocityRingSize)
	}
	if got := v.Velocity(); math.Abs(got.X-2000) > 1e-6 {
		t.Errorf("Velocity.X = %v, want 2000", got.X)
	}
}
