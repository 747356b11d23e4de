package gesture

import "time"

// TouchPoint is one immutable sample of a finger, pen or mouse pointer.
type TouchPoint struct {
	ID       int
	X, Y     float64 // world (global) position
	ScreenX  float64 // device-local position
	ScreenY  float64
	Pressure float64
	Size     float64
	TiltX    float64
	TiltY    float64
	Source   SourceType
	Time     time.Duration
}

// Pos returns the world position of the sample.
func (p TouchPoint) Pos() Vec2 { return Vec2{p.X, p.Y} }

// TouchEvent is a platform touch, pen or mouse-button event for one pointer.
type TouchEvent struct {
	TouchPoint
	Type      TouchType
	DeviceID  int
	Button    MouseButton
	Modifiers KeyModifiers

	// History carries coalesced samples that arrived between this move and
	// the previous one, oldest first.
	History []TouchPoint
}

// AxisEvent is a wheel or trackpad event. Deltas are per event, not
// accumulated.
type AxisEvent struct {
	ID         int
	X, Y       float64
	Action     AxisAction
	Horizontal float64 // horizontal scroll delta
	Vertical   float64 // vertical scroll delta
	PinchScale float64 // trackpad pinch scale relative to the last event; 0 when absent
	Rotate     float64 // trackpad rotation delta in degrees
	Source     SourceType
	DeviceID   int
	Modifiers  KeyModifiers
	Time       time.Duration
}

// Pos returns the world position of the axis event.
func (e AxisEvent) Pos() Vec2 { return Vec2{e.X, e.Y} }

// TouchEventInfo is delivered to Node.OnTouch callbacks.
type TouchEventInfo struct {
	Event  TouchEvent
	Node   *Node
	LocalX float64
	LocalY float64

	stopped bool
}

// StopPropagation prevents OnTouch callbacks of lower-priority nodes from
// seeing this event. Recognizers still receive it.
func (i *TouchEventInfo) StopPropagation() {
	i.stopped = true
}
