package gesture

import "math"

// RotationGesture recognizes two or more fingers turning about each other.
// The angle is measured between the first two fingers down.
type RotationGesture struct {
	Tag     string
	Fingers int     // 2 to 5; 0 means 2
	Angle   float64 // degrees before the rotation starts; 0 uses Config.RotationAngle

	OnActionStart  func(GestureEvent)
	OnActionUpdate func(GestureEvent)
	OnActionEnd    func(GestureEvent)
	OnActionCancel func(GestureEvent)
}

func (d RotationGesture) build(e *Engine, n *Node, parent Handle) Recognizer {
	h := e.arena.alloc()
	r := &rotationRecognizer{angle: d.Angle}
	r.init(r, r, e, h, parent, KindRotation, n, d.Tag)
	r.fingers = clampFingers(d.Fingers, 2, 5)
	r.onStart = d.OnActionStart
	r.onUpdate = d.OnActionUpdate
	r.onEnd = d.OnActionEnd
	r.onCancel = d.OnActionCancel
	e.arena.set(h, r)
	return r
}

type rotationRecognizer struct {
	recognizerBase
	angle float64

	ready bool
	last  float64 // previous finger angle
	total float64 // accumulated rotation
	pos   Vec2    // axis position
	ended bool
}

func (r *rotationRecognizer) acceptsAxis() bool { return true }

func (r *rotationRecognizer) threshold() float64 {
	if r.angle > 0 {
		return r.angle
	}
	return r.engine.cfg.RotationAngle
}

// fingerAngle returns the angle in degrees of the line from the first to the
// second finger.
func (r *rotationRecognizer) fingerAngle() float64 {
	a := r.tracks[r.order[0]].last.Pos()
	b := r.tracks[r.order[1]].last.Pos()
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// wrapDegrees folds d into (-180, 180].
func wrapDegrees(d float64) float64 {
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}

func (r *rotationRecognizer) touchDown(ev TouchEvent) {
	if r.state != StateDetecting {
		return
	}
	switch n := r.activeFingers(); {
	case n > r.fingers:
		r.adjudicate(DisposalReject)
	case n == r.fingers:
		r.last = r.fingerAngle()
		r.total = 0
		r.ready = true
	}
}

func (r *rotationRecognizer) touchMove(ev TouchEvent) {
	if !r.ready || r.activeFingers() < r.fingers {
		return
	}
	a := r.fingerAngle()
	r.total += wrapDegrees(a - r.last)
	r.last = a
	switch r.state {
	case StateDetecting:
		if math.Abs(r.total) >= r.threshold() {
			r.tryAccept(r.event())
		}
	case StateSucceed:
		if !r.ended {
			r.emit(EventActionUpdate, r.onUpdate, r.event())
		}
	}
}

func (r *rotationRecognizer) touchUp(ev TouchEvent, _ *fingerTrack) {
	if r.state != StateSucceed {
		r.adjudicate(DisposalReject)
		return
	}
	if r.ended || r.activeFingers() >= r.fingers {
		return
	}
	r.ended = true
	r.emit(EventActionEnd, r.onEnd, r.event())
}

func (r *rotationRecognizer) axis(ev AxisEvent) {
	r.pos = ev.Pos()
	switch ev.Action {
	case AxisBegin:
		r.total = 0
		r.ready = true
	case AxisUpdate:
		if ev.Rotate == 0 {
			if r.state == StateDetecting && (ev.Horizontal != 0 || ev.Vertical != 0 || ev.PinchScale != 0) {
				r.adjudicate(DisposalReject)
			}
			return
		}
		r.total += ev.Rotate
		switch r.state {
		case StateDetecting:
			if math.Abs(r.total) >= r.threshold() {
				r.tryAccept(r.event())
			}
		case StateSucceed:
			r.emit(EventActionUpdate, r.onUpdate, r.event())
		}
	case AxisEnd:
		if r.state != StateSucceed {
			r.adjudicate(DisposalReject)
			return
		}
		if !r.ended {
			r.ended = true
			r.emit(EventActionEnd, r.onEnd, r.event())
		}
	}
}

func (r *rotationRecognizer) event() GestureEvent {
	c := r.pos
	if r.activeFingers() > 0 {
		c = r.centroid()
	}
	return GestureEvent{X: c.X, Y: c.Y, Angle: r.total}
}

func (r *rotationRecognizer) accepted() {
	r.emit(EventActionStart, r.onStart, r.event())
}

func (r *rotationRecognizer) cancelled() {
	if r.ended {
		return
	}
	r.ended = true
	r.emit(EventActionCancel, r.onCancel, r.event())
}

func (r *rotationRecognizer) resetData() {
	r.ready = false
	r.last = 0
	r.total = 0
	r.pos = Vec2{}
	r.ended = false
}
