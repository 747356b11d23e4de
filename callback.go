package gesture

import "time"

// GestureEvent is delivered to gesture callbacks. Which fields are
// meaningful depends on Kind and Type.
type GestureEvent struct {
	Type     EventType
	Kind     Kind
	Tag      string
	Node     *Node
	EntityID uint32
	Source   SourceType
	Time     time.Duration

	// Fingers holds the active fingers in the order they went down.
	Fingers   []TouchPoint
	Modifiers KeyModifiers

	// Position of the gesture in world and node-local coordinates.
	X, Y           float64
	LocalX, LocalY float64

	// Tap
	Count int

	// Long press
	Repeat bool

	// Pan (OffsetX/Y are totals since the start, DeltaX/Y since the last
	// update) and release velocity for pan and swipe.
	OffsetX, OffsetY     float64
	DeltaX, DeltaY       float64
	VelocityX, VelocityY float64
	Velocity             float64

	// Pinch
	Scale        float64
	PinchCenterX float64
	PinchCenterY float64

	// Rotation (degrees since start) or swipe direction (degrees, screen
	// space, 0 = right, 90 = down).
	Angle float64

	// Swipe speed in pixels per second.
	Speed float64
}

// EntityStore receives gesture events for nodes that carry an EntityID.
type EntityStore interface {
	EmitEvent(event GestureEvent)
}

// --- Handler registry ---

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

type handlerRegistry struct {
	gesture []gestureHandler
	touch   []touchHandler
	nextID  uint32
}

type touchHandler struct {
	id uint32
	fn func(TouchEvent)
}

type handlerKind uint8

const (
	handlerGesture handlerKind = iota
	handlerTouch
)

// CallbackHandle allows removing a registered engine-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerGesture:
		h.reg.gesture = removeHandler(h.reg.gesture, h.id)
	case handlerTouch:
		for i := range h.reg.touch {
			if h.reg.touch[i].id == h.id {
				copy(h.reg.touch[i:], h.reg.touch[i+1:])
				h.reg.touch[len(h.reg.touch)-1] = touchHandler{}
				h.reg.touch = h.reg.touch[:len(h.reg.touch)-1]
				return
			}
		}
	}
}

func removeHandler(s []gestureHandler, id uint32) []gestureHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnGesture registers an engine-level callback that sees every gesture
// callback fired by any node, after the node's own callback.
func (e *Engine) OnGesture(fn func(GestureEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.gesture = append(e.handlers.gesture, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, kind: handlerGesture}
}

// OnTouch registers an engine-level callback for every touch event the
// engine handles, before hit testing or dispatch.
func (e *Engine) OnTouch(fn func(TouchEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.touch = append(e.handlers.touch, touchHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, kind: handlerTouch}
}

// SetEntityStore sets the optional ECS bridge.
func (e *Engine) SetEntityStore(store EntityStore) {
	e.store = store
}

func (e *Engine) emitGesture(ev GestureEvent) {
	e.debugf("%s %s on %s", ev.Kind, ev.Type, nodeLabel(ev.Node))
	for _, h := range e.handlers.gesture {
		h.fn(ev)
	}
	if e.store != nil && ev.EntityID != 0 {
		e.store.EmitEvent(ev)
	}
}

func (e *Engine) emitTouch(ev TouchEvent) {
	for _, h := range e.handlers.touch {
		h.fn(ev)
	}
}
