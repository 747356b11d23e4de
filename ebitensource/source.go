// Package ebitensource feeds Ebitengine mouse, touch and wheel input into a
// gesture engine.
package ebitensource

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

// MouseID is the touch id used for the mouse pointer. Touch ids reported by
// Ebitengine are offset by one so they never collide with it.
const MouseID = 0

// wheelIdleFrames is how many frames without wheel motion end an axis
// stream.
const wheelIdleFrames = 6

type touchSample struct {
	id   ebiten.TouchID
	x, y float64
}

// frameInput is one frame of polled device state.
type frameInput struct {
	mouseX, mouseY float64
	left           bool
	right          bool
	middle         bool
	touches        []touchSample
	wheelX         float64
	wheelY         float64
	mods           gesture.KeyModifiers
}

// Source turns polled device state into gesture events.
type Source struct {
	engine *gesture.Engine

	// ToWorld maps screen coordinates to world coordinates, usually a
	// Camera's ScreenToWorld. nil means the identity.
	ToWorld func(sx, sy float64) (float64, float64)

	mouseDown   bool
	mouseButton gesture.MouseButton
	mouseX      float64
	mouseY      float64

	touches  map[ebiten.TouchID]touchSample
	touchBuf []ebiten.TouchID

	wheelActive bool
	wheelIdle   int
}

// New creates a Source feeding e.
func New(e *gesture.Engine) *Source {
	return &Source{engine: e, touches: make(map[ebiten.TouchID]touchSample)}
}

// Update advances the engine clock by dt, then polls Ebitengine and
// dispatches whatever changed since the previous frame. Call it from
// ebiten.Game.Update.
func (s *Source) Update(dt time.Duration) {
	s.engine.Update(dt)
	s.feed(s.poll())
}

func (s *Source) poll() frameInput {
	var in frameInput
	mx, my := ebiten.CursorPosition()
	in.mouseX, in.mouseY = float64(mx), float64(my)
	in.left = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.right = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.middle = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	for _, tid := range s.touchBuf {
		tx, ty := ebiten.TouchPosition(tid)
		in.touches = append(in.touches, touchSample{id: tid, x: float64(tx), y: float64(ty)})
	}

	in.wheelX, in.wheelY = ebiten.Wheel()
	in.mods = readModifiers()
	return in
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() gesture.KeyModifiers {
	var mods gesture.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= gesture.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= gesture.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= gesture.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= gesture.ModMeta
	}
	return mods
}

func (s *Source) world(sx, sy float64) (float64, float64) {
	if s.ToWorld != nil {
		return s.ToWorld(sx, sy)
	}
	return sx, sy
}

func (s *Source) point(id int, sx, sy float64, src gesture.SourceType) gesture.TouchPoint {
	wx, wy := s.world(sx, sy)
	return gesture.TouchPoint{
		ID: id, X: wx, Y: wy, ScreenX: sx, ScreenY: sy,
		Pressure: 1, Source: src, Time: s.engine.Now(),
	}
}

// feed diffs in against the previous frame and dispatches the changes.
func (s *Source) feed(in frameInput) {
	s.feedMouse(in)
	s.feedTouches(in)
	s.feedWheel(in)
}

func (s *Source) feedMouse(in frameInput) {
	pressed := in.left || in.right || in.middle
	moved := in.mouseX != s.mouseX || in.mouseY != s.mouseY
	s.mouseX, s.mouseY = in.mouseX, in.mouseY

	ev := gesture.TouchEvent{
		TouchPoint: s.point(MouseID, in.mouseX, in.mouseY, gesture.SourceMouse),
		Modifiers:  in.mods,
	}
	switch {
	case pressed && !s.mouseDown:
		// The button captured at press time holds for the whole drag.
		switch {
		case in.left:
			s.mouseButton = gesture.MouseButtonLeft
		case in.right:
			s.mouseButton = gesture.MouseButtonRight
		default:
			s.mouseButton = gesture.MouseButtonMiddle
		}
		s.mouseDown = true
		ev.Type = gesture.TouchDown
	case !pressed && s.mouseDown:
		s.mouseDown = false
		ev.Type = gesture.TouchUp
	case pressed && moved:
		ev.Type = gesture.TouchMove
	default:
		return
	}
	ev.Button = s.mouseButton
	s.engine.HandleTouchEvent(ev)
}

func (s *Source) feedTouches(in frameInput) {
	seen := make(map[ebiten.TouchID]bool, len(in.touches))
	for _, t := range in.touches {
		seen[t.id] = true
		prev, ok := s.touches[t.id]
		s.touches[t.id] = t
		ev := gesture.TouchEvent{
			TouchPoint: s.point(int(t.id)+1, t.x, t.y, gesture.SourceTouch),
			Modifiers:  in.mods,
		}
		switch {
		case !ok:
			ev.Type = gesture.TouchDown
		case prev.x != t.x || prev.y != t.y:
			ev.Type = gesture.TouchMove
		default:
			continue
		}
		s.engine.HandleTouchEvent(ev)
	}
	for id, prev := range s.touches {
		if seen[id] {
			continue
		}
		delete(s.touches, id)
		s.engine.HandleTouchEvent(gesture.TouchEvent{
			TouchPoint: s.point(int(id)+1, prev.x, prev.y, gesture.SourceTouch),
			Type:       gesture.TouchUp,
			Modifiers:  in.mods,
		})
	}
}

func (s *Source) feedWheel(in frameInput) {
	wx, wy := s.world(in.mouseX, in.mouseY)
	ev := gesture.AxisEvent{
		X: wx, Y: wy,
		Source:    gesture.SourceAxis,
		Modifiers: in.mods,
		Time:      s.engine.Now(),
	}
	if in.wheelX == 0 && in.wheelY == 0 {
		if !s.wheelActive {
			return
		}
		s.wheelIdle++
		if s.wheelIdle < wheelIdleFrames {
			return
		}
		s.wheelActive = false
		ev.Action = gesture.AxisEnd
		s.engine.HandleAxisEvent(ev)
		return
	}
	s.wheelIdle = 0
	if !s.wheelActive {
		s.wheelActive = true
		ev.Action = gesture.AxisBegin
		s.engine.HandleAxisEvent(ev)
	}
	ev.Action = gesture.AxisUpdate
	ev.Horizontal = in.wheelX
	ev.Vertical = in.wheelY
	s.engine.HandleAxisEvent(ev)
}

// Cancel cancels every stream the source has open, as when the window
// loses focus.
func (s *Source) Cancel() {
	s.mouseDown = false
	s.wheelActive = false
	clear(s.touches)
	s.engine.CancelAll()
}
