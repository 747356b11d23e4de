package gesture

import (
	"math"
	"time"
)

// SwipeGesture recognizes a fast release. Every finger must leave at Speed
// or faster, heading within Config.SwipeAngleTolerance of an allowed
// direction. A wheel or trackpad stream qualifies by its average speed
// between begin and end.
type SwipeGesture struct {
	Tag       string
	Fingers   int       // 0 means 1
	Direction Direction // 0 means DirectionAll
	Speed     float64   // pixels per second; 0 uses Config.SwipeSpeed

	OnAction func(GestureEvent)
}

func (d SwipeGesture) build(e *Engine, n *Node, parent Handle) Recognizer {
	h := e.arena.alloc()
	dir := d.Direction
	if dir == DirectionNone {
		dir = DirectionAll
	}
	r := &swipeRecognizer{direction: dir, speed: d.Speed}
	r.init(r, r, e, h, parent, KindSwipe, n, d.Tag)
	r.fingers = clampFingers(d.Fingers, 1, maxFingers)
	r.onAction = d.OnAction
	e.arena.set(h, r)
	return r
}

type swipeRecognizer struct {
	recognizerBase
	direction Direction
	speed     float64

	peak      int
	qualified int
	sum       Vec2 // release velocities of qualified fingers
	pos       Vec2

	axisStart time.Duration
	axisSum   Vec2
}

func (s *swipeRecognizer) acceptsAxis() bool { return true }

func (s *swipeRecognizer) minSpeed() float64 {
	if s.speed > 0 {
		return s.speed
	}
	return s.engine.cfg.SwipeSpeed
}

var directionAngles = [...]struct {
	dir   Direction
	angle float64
}{
	{DirectionRight, 0},
	{DirectionDown, 90},
	{DirectionLeft, 180},
	{DirectionUp, -90},
}

// headingAllowed reports whether v points within tolerance of an allowed
// direction.
func (s *swipeRecognizer) headingAllowed(v Vec2) bool {
	if s.direction == DirectionAll {
		return true
	}
	a := math.Atan2(v.Y, v.X) * 180 / math.Pi
	tol := s.engine.cfg.SwipeAngleTolerance
	for _, d := range directionAngles {
		if s.direction&d.dir != 0 && math.Abs(wrapDegrees(a-d.angle)) <= tol {
			return true
		}
	}
	return false
}

func (s *swipeRecognizer) live() bool {
	return s.state == StateDetecting || s.state == StatePending
}

func (s *swipeRecognizer) touchDown(ev TouchEvent) {
	if !s.live() {
		return
	}
	if ev.Source == SourceMouse && ev.Button != MouseButtonLeft {
		s.adjudicate(DisposalReject)
		return
	}
	n := s.activeFingers()
	if n > s.fingers {
		s.adjudicate(DisposalReject)
		return
	}
	s.peak = max(s.peak, n)
}

func (s *swipeRecognizer) touchMove(TouchEvent) {}

func (s *swipeRecognizer) touchUp(ev TouchEvent, tr *fingerTrack) {
	if !s.live() {
		return
	}
	v := tr.vel.Velocity()
	if v.Len() < s.minSpeed() || !s.headingAllowed(v) {
		s.engine.debugf("%s rejected: release %.0f px/s", describe(s), v.Len())
		s.adjudicate(DisposalReject)
		return
	}
	s.qualified++
	s.sum = s.sum.Add(v)
	s.pos = ev.Pos()
	if s.activeFingers() > 0 {
		if s.qualified == 1 {
			s.adjudicate(DisposalPending)
		}
		return
	}
	if s.peak < s.fingers {
		s.adjudicate(DisposalReject)
		return
	}
	s.tryAccept(s.event())
}

func (s *swipeRecognizer) axis(ev AxisEvent) {
	s.pos = ev.Pos()
	switch ev.Action {
	case AxisBegin:
		s.axisStart = ev.Time
		s.axisSum = Vec2{}
	case AxisUpdate:
		dx, dy := ev.Horizontal, ev.Vertical
		if ev.Modifiers.Has(ModShift) {
			dx, dy = dy, dx
		}
		s.axisSum = s.axisSum.Add(Vec2{dx, dy})
	case AxisEnd:
		if s.state != StateDetecting {
			return
		}
		elapsed := (ev.Time - s.axisStart).Seconds()
		if elapsed <= 0 {
			s.adjudicate(DisposalReject)
			return
		}
		v := s.axisSum.Scale(1 / elapsed)
		if v.Len() < s.minSpeed() || !s.headingAllowed(v) {
			s.adjudicate(DisposalReject)
			return
		}
		s.qualified = 1
		s.sum = v
		s.tryAccept(s.event())
	}
}

func (s *swipeRecognizer) event() GestureEvent {
	v := Vec2{}
	if s.qualified > 0 {
		v = s.sum.Scale(1 / float64(s.qualified))
	}
	return GestureEvent{
		X: s.pos.X, Y: s.pos.Y,
		VelocityX: v.X, VelocityY: v.Y, Velocity: v.Len(),
		Speed: v.Len(),
		Angle: math.Atan2(v.Y, v.X) * 180 / math.Pi,
	}
}

func (s *swipeRecognizer) accepted() {
	s.emit(EventAction, s.onAction, s.event())
}

func (s *swipeRecognizer) cancelled() {}

func (s *swipeRecognizer) resetData() {
	s.peak = 0
	s.qualified = 0
	s.sum = Vec2{}
	s.pos = Vec2{}
	s.axisStart = 0
	s.axisSum = Vec2{}
}
