package gesture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const frame = 16 * ms

func TestInjectTap(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var taps []GestureEvent
	box.AddGesture(TapGesture{OnAction: func(ev GestureEvent) { taps = append(taps, ev) }})

	e.InjectTap(50, 50)
	if e.PendingInjected() != 2 {
		t.Fatalf("expected 2 queued events, got %d", e.PendingInjected())
	}

	// Frame 1: press
	e.Update(frame)
	if e.PendingInjected() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", e.PendingInjected())
	}
	if len(taps) != 0 {
		t.Error("tap should not fire on press frame")
	}

	// Frame 2: release
	e.Update(frame)
	if len(taps) != 1 {
		t.Fatalf("taps = %d, want 1", len(taps))
	}
	if taps[0].Time != 2*frame || taps[0].Source != SourceTouch {
		t.Errorf("tap = %+v, want touch at %v", taps[0], 2*frame)
	}
}

func TestInjectDrag(t *testing.T) {
	e, box := newEngineWithBox(400, 400)
	var log eventLog
	box.AddGesture(PanGesture{Tag: "pan", OnActionStart: log.record, OnActionUpdate: log.record, OnActionEnd: log.record})

	// frame 0: press at (10,10)
	// frames 1-3: moves to ~57.5, ~105, ~152.5
	// frame 4: release at (200, 200)
	e.InjectDrag(10, 10, 200, 200, 5)
	if e.PendingInjected() != 5 {
		t.Fatalf("expected 5 queued events, got %d", e.PendingInjected())
	}
	for i := 0; i < 5; i++ {
		e.Update(frame)
	}

	want := []string{"pan:start", "pan:update", "pan:update", "pan:end"}
	if diff := cmp.Diff(want, []string(log)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.InjectDrag(0, 0, 100, 100, 0)
	if e.PendingInjected() != 2 {
		t.Errorf("expected 2 events for frames < 2, got %d", e.PendingInjected())
	}
}

func TestInjectPinch(t *testing.T) {
	e, box := newEngineWithBox(400, 400)
	var end GestureEvent
	starts := 0
	box.AddGesture(PinchGesture{
		OnActionStart: func(GestureEvent) { starts++ },
		OnActionEnd:   func(ev GestureEvent) { end = ev },
	})

	e.InjectPinch(200, 200, 100, 200, 4)
	if e.PendingInjected() != 8 {
		t.Fatalf("expected 8 queued events, got %d", e.PendingInjected())
	}
	for e.PendingInjected() > 0 {
		e.Update(frame)
	}
	if starts != 1 {
		t.Errorf("starts = %d, want 1", starts)
	}
	if !approx(end.Scale, 2) {
		t.Errorf("final scale = %v, want 2", end.Scale)
	}
}

func TestInjectWheel(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var log []GestureEvent
	record := func(ev GestureEvent) { log = append(log, ev) }
	box.AddGesture(PanGesture{OnActionStart: record, OnActionEnd: record})

	e.InjectWheel(50, 50, 0, 30, 0)
	for i := 0; i < 3; i++ {
		e.Update(frame)
	}
	if len(log) != 2 {
		t.Fatalf("events = %d, want start and end", len(log))
	}
	if log[0].Source != SourceAxis || log[1].OffsetY != 30 {
		t.Errorf("events = %+v", log)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	e, box := newEngineWithBox(200, 200)
	var got []TouchType
	box.OnTouch = func(info *TouchEventInfo) { got = append(got, info.Event.Type) }

	e.InjectPress(10, 10)
	e.InjectMove(20, 20)
	e.InjectRelease(30, 30)
	for i := 0; i < 3; i++ {
		e.Update(frame)
	}
	if diff := cmp.Diff([]TouchType{TouchDown, TouchMove, TouchUp}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessInjected_EmptyQueue(t *testing.T) {
	e := NewEngine(DefaultConfig())
	if e.processInjected() {
		t.Error("processInjected should report false on an empty queue")
	}
}

func TestInjectTouchDefaultsSource(t *testing.T) {
	e, box := newEngineWithBox(100, 100)
	var src SourceType
	box.OnTouch = func(info *TouchEventInfo) { src = info.Event.Source }

	e.InjectTouch(TouchEvent{TouchPoint: TouchPoint{X: 5, Y: 5}, Type: TouchDown})
	e.Update(frame)
	if src != SourceTouch {
		t.Errorf("source = %s, want touch", src)
	}
}
