package gesture

import "math"

// Vec2 is a 2D vector used for positions, offsets and velocities throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Input vocabulary ---

// TouchType identifies the phase of a touch event.
type TouchType uint8

const (
	TouchUnknown TouchType = iota // garbage or unmapped platform type; never handled
	TouchDown                     // a finger (or button) went down
	TouchMove                     // a held finger moved
	TouchUp                       // a finger lifted
	TouchCancel                   // the platform revoked the stream
)

func (t TouchType) String() string {
	switch t {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	case TouchCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// AxisAction identifies the phase of an axis (wheel / trackpad) event.
type AxisAction uint8

const (
	AxisNone AxisAction = iota
	AxisBegin
	AxisUpdate
	AxisEnd
	AxisCancel
)

func (a AxisAction) String() string {
	switch a {
	case AxisBegin:
		return "begin"
	case AxisUpdate:
		return "update"
	case AxisEnd:
		return "end"
	case AxisCancel:
		return "cancel"
	default:
		return "none"
	}
}

// SourceType identifies the device that produced an event.
type SourceType uint8

const (
	SourceUnknown SourceType = iota
	SourceTouch
	SourceMouse
	SourcePen
	SourceAxis // wheel or trackpad axis stream
)

func (s SourceType) String() string {
	switch s {
	case SourceTouch:
		return "touch"
	case SourceMouse:
		return "mouse"
	case SourcePen:
		return "pen"
	case SourceAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all bits of m are set.
func (k KeyModifiers) Has(m KeyModifiers) bool { return k&m == m }

// --- Hit testing vocabulary ---

// HitTestMode controls how a node's own hit affects siblings beneath it.
type HitTestMode uint8

const (
	HitTestDefault         HitTestMode = iota // self hit blocks siblings beneath
	HitTestBlock                              // self or descendant hit blocks siblings beneath
	HitTestTransparent                        // hits never block siblings
	HitTestNone                               // node never hit; children still tested
	HitTestTransparentSelf                    // only a self-only hit is transparent
)

func (m HitTestMode) String() string {
	switch m {
	case HitTestDefault:
		return "default"
	case HitTestBlock:
		return "block"
	case HitTestTransparent:
		return "transparent"
	case HitTestNone:
		return "none"
	case HitTestTransparentSelf:
		return "transparent-self"
	default:
		return "invalid"
	}
}

// HitTestResult is the bottom-up result of testing one subtree.
type HitTestResult uint8

const (
	OutOfRegion HitTestResult = iota
	StopBubbling
	Bubbling
	SelfTransparent
)

func (r HitTestResult) String() string {
	switch r {
	case OutOfRegion:
		return "out-of-region"
	case StopBubbling:
		return "stop-bubbling"
	case Bubbling:
		return "bubbling"
	case SelfTransparent:
		return "self-transparent"
	default:
		return "invalid"
	}
}

// --- Arbitration vocabulary ---

// RefereeState is a recognizer's arbitration state for its current session.
type RefereeState uint8

const (
	StateReady RefereeState = iota
	StateDetecting
	StatePending
	StatePendingBlocked
	StateSucceed
	StateSucceedBlocked
	StateFail
)

func (s RefereeState) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateDetecting:
		return "DETECTING"
	case StatePending:
		return "PENDING"
	case StatePendingBlocked:
		return "PENDING_BLOCKED"
	case StateSucceed:
		return "SUCCEED"
	case StateSucceedBlocked:
		return "SUCCEED_BLOCKED"
	case StateFail:
		return "FAIL"
	default:
		return "INVALID"
	}
}

// Terminal reports whether s is SUCCEED or FAIL.
func (s RefereeState) Terminal() bool {
	return s == StateSucceed || s == StateFail
}

// GestureDisposal is the only vocabulary a recognizer uses to talk to the
// referee.
type GestureDisposal uint8

const (
	DisposalAccept GestureDisposal = iota
	DisposalPending
	DisposalReject
)

func (d GestureDisposal) String() string {
	switch d {
	case DisposalAccept:
		return "ACCEPT"
	case DisposalPending:
		return "PENDING"
	case DisposalReject:
		return "REJECT"
	default:
		return "INVALID"
	}
}

// Kind is the closed set of recognizer variants.
type Kind uint8

const (
	KindTap Kind = iota
	KindLongPress
	KindPan
	KindPinch
	KindRotation
	KindSwipe
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindLongPress:
		return "longpress"
	case KindPan:
		return "pan"
	case KindPinch:
		return "pinch"
	case KindRotation:
		return "rotation"
	case KindSwipe:
		return "swipe"
	case KindGroup:
		return "group"
	default:
		return "invalid"
	}
}

// GroupMode selects how a GestureGroup arbitrates among its children.
type GroupMode uint8

const (
	GroupExclusive GroupMode = iota // first accepted child rejects its siblings
	GroupParallel                   // children succeed independently
	GroupSequence                   // children must succeed in declared order
)

func (m GroupMode) String() string {
	switch m {
	case GroupExclusive:
		return "exclusive"
	case GroupParallel:
		return "parallel"
	case GroupSequence:
		return "sequence"
	default:
		return "invalid"
	}
}

// GesturePriority controls where a node's gesture binding sits relative to
// its descendants' gestures.
type GesturePriority uint8

const (
	PriorityNormal   GesturePriority = iota // evaluated after descendants
	PriorityHigh                            // evaluated before descendants
	PriorityParallel                        // never blocks, never rejected by a winner
)

// Direction is a bitmask of allowed movement directions for pan and swipe.
type Direction uint8

const (
	DirectionLeft Direction = 1 << iota
	DirectionRight
	DirectionUp
	DirectionDown

	DirectionNone       Direction = 0
	DirectionHorizontal           = DirectionLeft | DirectionRight
	DirectionVertical             = DirectionUp | DirectionDown
	DirectionAll                  = DirectionHorizontal | DirectionVertical
)

// Has reports whether every bit of d2 is allowed by d.
func (d Direction) Has(d2 Direction) bool { return d&d2 == d2 }

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionAll:
		return "all"
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	}
	s := ""
	for _, p := range []struct {
		bit  Direction
		name string
	}{{DirectionLeft, "left"}, {DirectionRight, "right"}, {DirectionUp, "up"}, {DirectionDown, "down"}} {
		if d&p.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += p.name
		}
	}
	return s
}

// JudgeResult is returned by a node's GestureJudge.
type JudgeResult uint8

const (
	JudgeContinue JudgeResult = iota
	JudgeReject
)

// EventType identifies the phase of a dispatched gesture callback.
type EventType uint8

const (
	EventAction      EventType = iota // one-shot gestures: tap, long press, swipe
	EventActionStart                  // continuous gesture accepted
	EventActionUpdate
	EventActionEnd
	EventActionCancel
)

func (e EventType) String() string {
	switch e {
	case EventAction:
		return "action"
	case EventActionStart:
		return "start"
	case EventActionUpdate:
		return "update"
	case EventActionEnd:
		return "end"
	case EventActionCancel:
		return "cancel"
	default:
		return "invalid"
	}
}
