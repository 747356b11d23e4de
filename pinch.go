package gesture

import "math"

// PinchGesture recognizes Fingers fingers moving toward or away from their
// centroid. Trackpad pinch and Ctrl-wheel drive it too.
type PinchGesture struct {
	Tag      string
	Fingers  int     // 2 to 5; 0 means 2
	Distance float64 // span change before the pinch starts; 0 uses Config.PinchDistance

	OnActionStart  func(GestureEvent)
	OnActionUpdate func(GestureEvent)
	OnActionEnd    func(GestureEvent)
	OnActionCancel func(GestureEvent)
}

func (d PinchGesture) build(e *Engine, n *Node, parent Handle) Recognizer {
	h := e.arena.alloc()
	r := &pinchRecognizer{distance: d.Distance}
	r.init(r, r, e, h, parent, KindPinch, n, d.Tag)
	r.fingers = clampFingers(d.Fingers, 2, 5)
	r.onStart = d.OnActionStart
	r.onUpdate = d.OnActionUpdate
	r.onEnd = d.OnActionEnd
	r.onCancel = d.OnActionCancel
	e.arena.set(h, r)
	return r
}

type pinchRecognizer struct {
	recognizerBase
	distance float64

	ready   bool
	initial float64 // span when the required fingers were down
	scale   float64
	center  Vec2
	ended   bool
}

func (p *pinchRecognizer) acceptsAxis() bool { return true }

func (p *pinchRecognizer) threshold() float64 {
	if p.distance > 0 {
		return p.distance
	}
	return p.engine.cfg.PinchDistance
}

// span returns the mean distance of the active fingers from their centroid.
func (p *pinchRecognizer) span() float64 {
	c := p.centroid()
	var sum float64
	for _, id := range p.order {
		sum += p.tracks[id].last.Pos().Sub(c).Len()
	}
	return sum / float64(len(p.order))
}

func (p *pinchRecognizer) touchDown(ev TouchEvent) {
	if p.state != StateDetecting {
		return
	}
	switch n := p.activeFingers(); {
	case n > p.fingers:
		p.adjudicate(DisposalReject)
	case n == p.fingers:
		p.initial = p.span()
		p.center = p.centroid()
		p.scale = 1
		p.ready = true
	}
}

func (p *pinchRecognizer) touchMove(ev TouchEvent) {
	if !p.ready || p.activeFingers() < p.fingers {
		return
	}
	s := p.span()
	p.center = p.centroid()
	if p.initial > 0 {
		p.scale = s / p.initial
	}
	switch p.state {
	case StateDetecting:
		if math.Abs(s-p.initial) >= p.threshold() {
			p.tryAccept(p.event())
		}
	case StateSucceed:
		if !p.ended {
			p.emit(EventActionUpdate, p.onUpdate, p.event())
		}
	}
}

func (p *pinchRecognizer) touchUp(ev TouchEvent, _ *fingerTrack) {
	if p.state != StateSucceed {
		p.adjudicate(DisposalReject)
		return
	}
	if p.ended || p.activeFingers() >= p.fingers {
		return
	}
	p.ended = true
	p.emit(EventActionEnd, p.onEnd, p.event())
}

func (p *pinchRecognizer) axis(ev AxisEvent) {
	switch ev.Action {
	case AxisBegin:
		p.scale = 1
		p.center = ev.Pos()
		p.ready = true
	case AxisUpdate:
		p.center = ev.Pos()
		switch {
		case ev.PinchScale > 0:
			p.scale *= ev.PinchScale
		case ev.Modifiers.Has(ModCtrl) && ev.Vertical != 0:
			p.scale *= math.Max(0, 1-ev.Vertical*p.engine.cfg.CtrlWheelFactor)
		default:
			if p.state == StateDetecting && (ev.Horizontal != 0 || ev.Vertical != 0) {
				p.adjudicate(DisposalReject)
			}
			return
		}
		switch p.state {
		case StateDetecting:
			if p.scale != 1 {
				p.tryAccept(p.event())
			}
		case StateSucceed:
			p.emit(EventActionUpdate, p.onUpdate, p.event())
		}
	case AxisEnd:
		if p.state != StateSucceed {
			p.adjudicate(DisposalReject)
			return
		}
		if !p.ended {
			p.ended = true
			p.emit(EventActionEnd, p.onEnd, p.event())
		}
	}
}

func (p *pinchRecognizer) event() GestureEvent {
	return GestureEvent{
		X: p.center.X, Y: p.center.Y,
		Scale:        p.scale,
		PinchCenterX: p.center.X,
		PinchCenterY: p.center.Y,
	}
}

func (p *pinchRecognizer) accepted() {
	p.emit(EventActionStart, p.onStart, p.event())
}

func (p *pinchRecognizer) cancelled() {
	if p.ended {
		return
	}
	p.ended = true
	p.emit(EventActionCancel, p.onCancel, p.event())
}

func (p *pinchRecognizer) resetData() {
	p.ready = false
	p.initial = 0
	p.scale = 1
	p.center = Vec2{}
	p.ended = false
}
