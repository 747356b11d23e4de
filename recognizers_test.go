package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// --- Tap ---

func TestTapSlop(t *testing.T) {
	tests := []struct {
		name  string
		slop  float64
		moveX float64
		want  int
	}{
		{"within default slop", 0, 15, 1},
		{"beyond default slop", 0, 25, 0},
		{"custom slop", 40, 35, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, box := newEngineWithBox(200, 200)
			taps := 0
			box.AddGesture(TapGesture{Slop: tt.slop, OnAction: func(GestureEvent) { taps++ }})
			e.HandleTouchEvent(touchAt(TouchDown, 0, 50, 50, 0))
			e.HandleTouchEvent(touchAt(TouchMove, 0, 50+tt.moveX, 50, 20*ms))
			e.HandleTouchEvent(touchAt(TouchUp, 0, 50+tt.moveX, 50, 40*ms))
			if taps != tt.want {
				t.Errorf("taps = %d, want %d", taps, tt.want)
			}
		})
	}
}

func TestTripleTap(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var got []int
	box.AddGesture(TapGesture{Count: 3, OnAction: func(ev GestureEvent) { got = append(got, ev.Count) }})

	tapAt(e, 0, 50, 50, 0)
	tapAt(e, 0, 50, 50, 200*ms)
	if len(got) != 0 {
		t.Fatal("triple tap fired after two taps")
	}
	tapAt(e, 0, 50, 50, 400*ms)
	if diff := cmp.Diff([]int{3}, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestTapWithMouseLeftButton(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var got []GestureEvent
	box.AddGesture(TapGesture{OnAction: func(ev GestureEvent) { got = append(got, ev) }})

	e.HandleTouchEvent(mouseAt(TouchDown, 30, 40, 0, MouseButtonLeft))
	e.HandleTouchEvent(mouseAt(TouchUp, 30, 40, 30*ms, MouseButtonLeft))
	if len(got) != 1 {
		t.Fatalf("taps = %d, want 1", len(got))
	}
	if got[0].Source != SourceMouse || got[0].X != 30 || got[0].Y != 40 {
		t.Errorf("tap = %+v", got[0])
	}
}

// --- Long press ---

func TestLongPressRepeat(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var repeats []bool
	var times []time.Duration
	ends := 0
	box.AddGesture(LongPressGesture{
		Repeat: true,
		OnAction: func(ev GestureEvent) {
			repeats = append(repeats, ev.Repeat)
			times = append(times, ev.Time)
		},
		OnActionEnd: func(GestureEvent) { ends++ },
	})

	e.HandleTouchEvent(touchAt(TouchDown, 0, 50, 50, 0))
	e.Update(1150 * ms)
	e.HandleTouchEvent(touchAt(TouchUp, 0, 50, 50, 1150*ms))
	e.Update(time.Second)

	if diff := cmp.Diff([]bool{false, true, true}, repeats); diff != "" {
		t.Errorf("repeat flags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]time.Duration{500 * ms, 800 * ms, 1100 * ms}, times); diff != "" {
		t.Errorf("action times mismatch (-want +got):\n%s", diff)
	}
	if ends != 1 {
		t.Errorf("ends = %d, want 1", ends)
	}
}

func TestLongPressRejections(t *testing.T) {
	tests := []struct {
		name string
		lp   LongPressGesture
		down TouchEvent
		up   time.Duration
	}{
		{"early release", LongPressGesture{}, touchAt(TouchDown, 0, 50, 50, 0), 200 * ms},
		{"mouse left disabled", LongPressGesture{DisableMouseLeft: true}, mouseAt(TouchDown, 50, 50, 0, MouseButtonLeft), time.Second},
		{"mouse right", LongPressGesture{}, mouseAt(TouchDown, 50, 50, 0, MouseButtonRight), time.Second},
		{"two fingers required", LongPressGesture{Fingers: 2}, touchAt(TouchDown, 0, 50, 50, 0), time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, box := newEngineWithBox(100, 100)
			fired := 0
			tt.lp.OnAction = func(GestureEvent) { fired++ }
			box.AddGesture(tt.lp)

			e.HandleTouchEvent(tt.down)
			e.Update(tt.up)
			up := tt.down
			up.Type = TouchUp
			up.Time = tt.up
			e.HandleTouchEvent(up)
			e.Update(time.Second)
			if fired != 0 {
				t.Errorf("long press fired %d times, want 0", fired)
			}
		})
	}
}

func TestLongPressTwoFingers(t *testing.T) {
	e, box := newEngineWithBox(200, 200)
	var got []GestureEvent
	box.AddGesture(LongPressGesture{Fingers: 2, Duration: 300 * ms, OnAction: func(ev GestureEvent) { got = append(got, ev) }})

	e.HandleTouchEvent(touchAt(TouchDown, 0, 40, 40, 0))
	e.HandleTouchEvent(touchAt(TouchDown, 1, 80, 60, 100*ms))
	e.Update(250 * ms)
	if len(got) != 0 {
		t.Fatal("deadline should start when the second finger lands")
	}
	e.Update(100 * ms)
	if len(got) != 1 {
		t.Fatalf("long presses = %d, want 1", len(got))
	}
	if got[0].Time != 400*ms || got[0].X != 60 || got[0].Y != 50 || len(got[0].Fingers) != 2 {
		t.Errorf("event = %+v", got[0])
	}
}

// --- Pan ---

func TestPanDirectionMismatchRejects(t *testing.T) {
	e, box := newEngineWithBox(200, 200)
	box.AddGesture(PanGesture{Tag: "right", Direction: DirectionRight})

	e.HandleTouchEvent(touchAt(TouchDown, 0, 100, 100, 0))
	e.HandleTouchEvent(touchAt(TouchMove, 0, 80, 100, 20*ms))
	if st := e.Find(box, "right").State(); st != StateFail {
		t.Errorf("pan = %s, want FAIL", st)
	}
}

func TestPanReleaseVelocity(t *testing.T) {
	e, box := newEngineWithBox(200, 200)
	var end GestureEvent
	updates := 0
	box.AddGesture(PanGesture{
		OnActionUpdate: func(GestureEvent) { updates++ },
		OnActionEnd:    func(ev GestureEvent) { end = ev },
	})

	e.HandleTouchEvent(touchAt(TouchDown, 0, 0, 100, 0))
	for i := 1; i <= 4; i++ {
		e.HandleTouchEvent(touchAt(TouchMove, 0, float64(10*i), 100, time.Duration(i)*10*ms))
	}
	e.HandleTouchEvent(touchAt(TouchUp, 0, 50, 100, 50*ms))

	if updates != 3 {
		t.Errorf("updates = %d, want 3", updates)
	}
	if end.Type != EventActionEnd {
		t.Fatalf("end event missing")
	}
	if math.Abs(end.VelocityX-1000) > 1e-6 || math.Abs(end.VelocityY) > 1e-6 {
		t.Errorf("release velocity = (%v, %v), want (1000, 0)", end.VelocityX, end.VelocityY)
	}
	if end.OffsetX != 40 || end.DeltaX != 0 {
		t.Errorf("end offset/delta = %v/%v, want 40/0", end.OffsetX, end.DeltaX)
	}
}

func TestPanTwoFingers(t *testing.T) {
	e, box := newEngineWithBox(200, 200)
	var starts []GestureEvent
	box.AddGesture(PanGesture{Fingers: 2, OnActionStart: func(ev GestureEvent) { starts = append(starts, ev) }})

	e.HandleTouchEvent(touchAt(TouchDown, 0, 50, 50, 0))
	e.HandleTouchEvent(touchAt(TouchMove, 0, 50, 70, 10*ms))
	if len(starts) != 0 {
		t.Fatal("two-finger pan started with one finger")
	}
	e.HandleTouchEvent(touchAt(TouchDown, 1, 100, 70, 20*ms))
	e.HandleTouchEvent(touchAt(TouchMove, 0, 50, 90, 30*ms))
	if len(starts) != 1 {
		t.Fatalf("starts = %d, want 1", len(starts))
	}
	if starts[0].OffsetY != 10 || len(starts[0].Fingers) != 2 {
		t.Errorf("start = %+v", starts[0])
	}
}

// --- Pinch and rotation ---

func TestPinchScale(t *testing.T) {
	e, box := newEngineWithBox(300, 200)
	var log []GestureEvent
	record := func(ev GestureEvent) { log = append(log, ev) }
	box.AddGesture(PinchGesture{OnActionStart: record, OnActionEnd: record})

	e.HandleTouchEvent(touchAt(TouchDown, 0, 40, 100, 0))
	e.HandleTouchEvent(touchAt(TouchDown, 1, 160, 100, 0))
	e.HandleTouchEvent(touchAt(TouchMove, 1, 200, 100, 20*ms))
	e.HandleTouchEvent(touchAt(TouchUp, 1, 200, 100, 40*ms))
	e.HandleTouchEvent(touchAt(TouchUp, 0, 40, 100, 50*ms))

	if len(log) != 2 {
		t.Fatalf("events = %d, want start and end", len(log))
	}
	start := log[0]
	if !approx(start.Scale, 80.0/60.0) {
		t.Errorf("scale = %v, want %v", start.Scale, 80.0/60.0)
	}
	if start.PinchCenterX != 120 || start.PinchCenterY != 100 {
		t.Errorf("center = (%v, %v), want (120, 100)", start.PinchCenterX, start.PinchCenterY)
	}
	if log[1].Type != EventActionEnd {
		t.Errorf("second event = %s, want end", log[1].Type)
	}
}

func TestRotationAngle(t *testing.T) {
	e, box := newEngineWithBox(300, 300)
	var starts []GestureEvent
	box.AddGesture(RotationGesture{OnActionStart: func(ev GestureEvent) { starts = append(starts, ev) }})

	e.HandleTouchEvent(touchAt(TouchDown, 0, 100, 100, 0))
	e.HandleTouchEvent(touchAt(TouchDown, 1, 150, 100, 0))
	e.HandleTouchEvent(touchAt(TouchMove, 1, 100, 150, 20*ms))

	if len(starts) != 1 {
		t.Fatalf("starts = %d, want 1", len(starts))
	}
	if !approx(starts[0].Angle, 90) {
		t.Errorf("angle = %v, want 90", starts[0].Angle)
	}
}

func TestTrackpadRotation(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var angles []float64
	box.AddGesture(RotationGesture{
		OnActionStart:  func(ev GestureEvent) { angles = append(angles, ev.Angle) },
		OnActionUpdate: func(ev GestureEvent) { angles = append(angles, ev.Angle) },
	})

	e.HandleAxisEvent(AxisEvent{X: 50, Y: 50, Action: AxisBegin})
	e.HandleAxisEvent(AxisEvent{X: 50, Y: 50, Action: AxisUpdate, Rotate: 5})
	e.HandleAxisEvent(AxisEvent{X: 50, Y: 50, Action: AxisUpdate, Rotate: -2})
	e.HandleAxisEvent(AxisEvent{X: 50, Y: 50, Action: AxisEnd})

	if diff := cmp.Diff([]float64{5, 3}, angles); diff != "" {
		t.Errorf("angles mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{720, 0},
	}
	for _, tt := range tests {
		if got := wrapDegrees(tt.in); got != tt.want {
			t.Errorf("wrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampFingers(t *testing.T) {
	if got := clampFingers(0, 2, 5); got != 2 {
		t.Errorf("clampFingers(0, 2, 5) = %d, want 2", got)
	}
	if got := clampFingers(7, 2, 5); got != 5 {
		t.Errorf("clampFingers(7, 2, 5) = %d, want 5", got)
	}
	if got := clampFingers(3, 1, maxFingers); got != 3 {
		t.Errorf("clampFingers(3, 1, 10) = %d, want 3", got)
	}
}

// --- Swipe ---

func swipeRight(e *Engine) {
	e.HandleTouchEvent(touchAt(TouchDown, 0, 10, 100, 0))
	e.HandleTouchEvent(touchAt(TouchMove, 0, 60, 100, 20*ms))
	e.HandleTouchEvent(touchAt(TouchMove, 0, 110, 100, 40*ms))
	e.HandleTouchEvent(touchAt(TouchUp, 0, 160, 100, 60*ms))
}

func TestSwipe(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		speed     float64
		want      int
	}{
		{"any direction", 0, 0, 1},
		{"allowed direction", DirectionRight, 0, 1},
		{"horizontal axis", DirectionHorizontal, 0, 1},
		{"wrong direction", DirectionLeft | DirectionUp, 0, 0},
		{"too slow", 0, 3000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, box := newEngineWithBox(200, 200)
			var got []GestureEvent
			box.AddGesture(SwipeGesture{Direction: tt.direction, Speed: tt.speed,
				OnAction: func(ev GestureEvent) { got = append(got, ev) }})
			swipeRight(e)
			if len(got) != tt.want {
				t.Fatalf("swipes = %d, want %d", len(got), tt.want)
			}
			if tt.want == 1 && (math.Abs(got[0].Speed-2500) > 1e-6 || math.Abs(got[0].Angle) > 1e-9) {
				t.Errorf("speed/angle = %v/%v, want 2500/0", got[0].Speed, got[0].Angle)
			}
		})
	}
}

func TestWheelSwipe(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var got []GestureEvent
	box.AddGesture(SwipeGesture{OnAction: func(ev GestureEvent) { got = append(got, ev) }})

	e.HandleAxisEvent(axisAt(AxisBegin, 50, 50, 0, 0, 0, 0))
	e.HandleAxisEvent(axisAt(AxisUpdate, 50, 50, 100, 0, 10*ms, 0))
	e.HandleAxisEvent(axisAt(AxisEnd, 50, 50, 0, 0, 50*ms, 0))

	if len(got) != 1 {
		t.Fatalf("swipes = %d, want 1", len(got))
	}
	if !approx(got[0].Speed, 2000) {
		t.Errorf("speed = %v, want 2000", got[0].Speed)
	}
}
