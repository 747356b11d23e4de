package ebitensource

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/gesture"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newTestCamera() *Camera {
	return NewCamera(gesture.Rect{Width: 800, Height: 600})
}

func TestCameraDefaults(t *testing.T) {
	cam := newTestCamera()
	if cam.Zoom != 1 {
		t.Errorf("Zoom = %f, want 1", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := newTestCamera()
	cam.X, cam.Y = 100, 50
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := newTestCamera()
	cam.Zoom = 2
	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2, epsilon) {
		t.Errorf("screen distance at zoom 2 = %f, want 2", sx1-sx0)
	}
}

func TestCameraRotation90(t *testing.T) {
	cam := newTestCamera()
	cam.Rotation = math.Pi / 2
	// Rotating the camera clockwise turns world +X toward screen -Y.
	sx, sy := cam.WorldToScreen(10, 0)
	if !approxEqual(sx, 400, 1e-6) || !approxEqual(sy, 290, 1e-6) {
		t.Errorf("WorldToScreen(10,0) = (%f,%f), want (400,290)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.X, cam.Y, cam.Zoom, cam.Rotation = 123, -45, 1.7, 0.3
	wx, wy := cam.ScreenToWorld(cam.WorldToScreen(37, 91))
	if !approxEqual(wx, 37, 1e-6) || !approxEqual(wy, 91, 1e-6) {
		t.Errorf("roundtrip = (%f,%f), want (37,91)", wx, wy)
	}

	cam.Zoom = 0
	if wx, _ := cam.ScreenToWorld(0, 0); !math.IsNaN(wx) {
		t.Errorf("zero zoom ScreenToWorld = %f, want NaN", wx)
	}
}

func TestVisibleBounds(t *testing.T) {
	cam := newTestCamera()
	cam.Zoom = 2
	b := cam.VisibleBounds()
	if !approxEqual(b.X, -200, epsilon) || !approxEqual(b.Width, 400, epsilon) || !approxEqual(b.Height, 300, epsilon) {
		t.Errorf("VisibleBounds = %+v", b)
	}
}

func TestCameraFollow(t *testing.T) {
	cam := newTestCamera()
	target := gesture.NewBox("target", 300, 200, 10, 10)
	cam.Follow(target, 5, 0, 0.5)
	cam.Update(1.0 / 60)
	if !approxEqual(cam.X, 152.5, epsilon) || !approxEqual(cam.Y, 100, epsilon) {
		t.Errorf("after one half-lerp: (%f,%f), want (152.5,100)", cam.X, cam.Y)
	}
	cam.Unfollow()
	cam.Update(1.0 / 60)
	if !approxEqual(cam.X, 152.5, epsilon) {
		t.Errorf("camera moved after Unfollow: %f", cam.X)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newTestCamera()
	cam.ScrollTo(100, 200, 1.0, ease.Linear)
	cam.Update(0.5)
	if !approxEqual(cam.X, 50, 0.01) || !approxEqual(cam.Y, 100, 0.01) {
		t.Errorf("mid-scroll = (%f,%f), want (50,100)", cam.X, cam.Y)
	}
	cam.Update(0.5)
	if cam.Scrolling() {
		t.Error("scroll should be finished")
	}
	if !approxEqual(cam.X, 100, 0.01) || !approxEqual(cam.Y, 200, 0.01) {
		t.Errorf("end of scroll = (%f,%f), want (100,200)", cam.X, cam.Y)
	}
}

func TestCameraBounds(t *testing.T) {
	cam := newTestCamera()
	cam.SetBounds(gesture.Rect{Width: 1000, Height: 1000})
	cam.X, cam.Y = -500, 2000
	cam.Update(0)
	if cam.X != 400 || cam.Y != 700 {
		t.Errorf("clamped = (%v,%v), want (400,700)", cam.X, cam.Y)
	}

	cam.SetBounds(gesture.Rect{Width: 100, Height: 100})
	cam.Update(0)
	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("small world = (%v,%v), want centered (50,50)", cam.X, cam.Y)
	}

	cam.ClearBounds()
	cam.X = -900
	cam.Update(0)
	if cam.X != -900 {
		t.Errorf("X = %v after ClearBounds, want -900", cam.X)
	}
}

func TestCameraDrivesSource(t *testing.T) {
	s, box, _ := newTestSource(t)
	cam := newTestCamera()
	cam.X, cam.Y, cam.Zoom = 100, 100, 2
	s.ToWorld = cam.ScreenToWorld
	var taps []gesture.GestureEvent
	box.AddGesture(gesture.TapGesture{OnAction: func(ev gesture.GestureEvent) { taps = append(taps, ev) }})

	// Screen (0,0) is world (-100,-50), outside the box.
	s.feed(frameInput{left: true})
	s.feed(frameInput{})
	if len(taps) != 0 {
		t.Fatal("tap outside the box after camera mapping")
	}

	s.feed(frameInput{mouseX: 420, mouseY: 300, left: true})
	s.feed(frameInput{mouseX: 420, mouseY: 300})
	if len(taps) != 1 {
		t.Fatalf("taps = %d, want 1", len(taps))
	}
	if !approxEqual(taps[0].X, 110, epsilon) || !approxEqual(taps[0].Y, 100, epsilon) {
		t.Errorf("tap at (%v, %v), want world (110, 100)", taps[0].X, taps[0].Y)
	}
}
