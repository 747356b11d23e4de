package gesture

// syntheticEvent is a single injected touch or axis event. Injected events
// are stamped with the engine clock when consumed.
type syntheticEvent struct {
	touch *TouchEvent
	axis  *AxisEvent
}

// InjectTouch queues a raw touch event. The event is consumed on a later
// Update, one event per frame.
func (e *Engine) InjectTouch(ev TouchEvent) {
	if ev.Source == SourceUnknown {
		ev.Source = SourceTouch
	}
	e.injectQueue = append(e.injectQueue, syntheticEvent{touch: &ev})
}

// InjectAxis queues a raw axis event.
func (e *Engine) InjectAxis(ev AxisEvent) {
	if ev.Source == SourceUnknown {
		ev.Source = SourceAxis
	}
	e.injectQueue = append(e.injectQueue, syntheticEvent{axis: &ev})
}

func (e *Engine) injectPoint(id int, t TouchType, x, y float64) {
	e.InjectTouch(TouchEvent{TouchPoint: TouchPoint{ID: id, X: x, Y: y, ScreenX: x, ScreenY: y, Source: SourceTouch}, Type: t})
}

// InjectPress queues a finger down for touch id 0.
func (e *Engine) InjectPress(x, y float64) { e.injectPoint(0, TouchDown, x, y) }

// InjectMove queues a move of touch id 0.
func (e *Engine) InjectMove(x, y float64) { e.injectPoint(0, TouchMove, x, y) }

// InjectRelease queues a finger up for touch id 0.
func (e *Engine) InjectRelease(x, y float64) { e.injectPoint(0, TouchUp, x, y) }

// InjectTap is a convenience that queues a press followed by a release at
// the same point. Consumes two frames.
func (e *Engine) InjectTap(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger pinch about (cx, cy): the fingers start
// fromSpan apart horizontally and end toSpan apart over `frames` frames.
func (e *Engine) InjectPinch(cx, cy, fromSpan, toSpan float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	half := fromSpan / 2
	e.injectPoint(0, TouchDown, cx-half, cy)
	e.injectPoint(1, TouchDown, cx+half, cy)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		h := (fromSpan + (toSpan-fromSpan)*t) / 2
		e.injectPoint(0, TouchMove, cx-h, cy)
		e.injectPoint(1, TouchMove, cx+h, cy)
	}
	half = toSpan / 2
	e.injectPoint(0, TouchUp, cx-half, cy)
	e.injectPoint(1, TouchUp, cx+half, cy)
}

// InjectWheel queues a begin, one update with the given deltas and an end.
func (e *Engine) InjectWheel(x, y, dx, dy float64, mods KeyModifiers) {
	e.InjectAxis(AxisEvent{X: x, Y: y, Action: AxisBegin, Modifiers: mods})
	e.InjectAxis(AxisEvent{X: x, Y: y, Action: AxisUpdate, Horizontal: dx, Vertical: dy, Modifiers: mods})
	e.InjectAxis(AxisEvent{X: x, Y: y, Action: AxisEnd, Modifiers: mods})
}

// PendingInjected returns the number of queued synthetic events.
func (e *Engine) PendingInjected() int { return len(e.injectQueue) }

// processInjected pops one event from the inject queue, stamps it with the
// engine clock and dispatches it. Returns true if an event was consumed.
func (e *Engine) processInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch {
	case evt.touch != nil:
		ev := *evt.touch
		ev.Time = e.now
		e.HandleTouchEvent(ev)
	case evt.axis != nil:
		ev := *evt.axis
		ev.Time = e.now
		e.HandleAxisEvent(ev)
	}
	return true
}
