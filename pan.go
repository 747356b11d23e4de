package gesture

import "math"

// PanGesture recognizes a drag of Fingers fingers in one of the allowed
// directions. It also recognizes wheel and trackpad scrolling: Shift swaps
// the axes and Ctrl-wheel is left to pinch.
type PanGesture struct {
	Tag       string
	Fingers   int       // 0 means 1
	Direction Direction // 0 means DirectionAll
	Distance  float64   // travel before the pan starts; 0 uses Config.PanDistance

	OnActionStart  func(GestureEvent)
	OnActionUpdate func(GestureEvent)
	OnActionEnd    func(GestureEvent)
	OnActionCancel func(GestureEvent)
}

func (d PanGesture) build(e *Engine, n *Node, parent Handle) Recognizer {
	h := e.arena.alloc()
	dir := d.Direction
	if dir == DirectionNone {
		dir = DirectionAll
	}
	r := &panRecognizer{direction: dir, distance: d.Distance}
	r.init(r, r, e, h, parent, KindPan, n, d.Tag)
	r.fingers = clampFingers(d.Fingers, 1, maxFingers)
	r.onStart = d.OnActionStart
	r.onUpdate = d.OnActionUpdate
	r.onEnd = d.OnActionEnd
	r.onCancel = d.OnActionCancel
	e.arena.set(h, r)
	return r
}

type panRecognizer struct {
	recognizerBase
	direction Direction
	distance  float64

	ready   bool // enough fingers are down and start is set
	start   Vec2
	last    Vec2
	offset  Vec2
	delta   Vec2
	ended   bool
	release Vec2 // velocity at release
}

func (p *panRecognizer) acceptsAxis() bool { return true }

// threshold returns the travel needed to start. Mouse drags never start
// below Config.MousePanDistance.
func (p *panRecognizer) threshold() float64 {
	d := p.distance
	if d <= 0 {
		d = p.engine.cfg.PanDistance
	}
	if p.source == SourceMouse {
		d = math.Max(d, p.engine.cfg.MousePanDistance)
	}
	return d
}

// travel projects v onto the allowed axes.
func (p *panRecognizer) travel(v Vec2) float64 {
	switch {
	case p.direction&DirectionVertical == 0:
		return math.Abs(v.X)
	case p.direction&DirectionHorizontal == 0:
		return math.Abs(v.Y)
	default:
		return v.Len()
	}
}

// heading returns the single direction v points in along the allowed axes.
func (p *panRecognizer) heading(v Vec2) Direction {
	horizontal := math.Abs(v.X) >= math.Abs(v.Y)
	if p.direction&DirectionVertical == 0 {
		horizontal = true
	} else if p.direction&DirectionHorizontal == 0 {
		horizontal = false
	}
	if horizontal {
		if v.X < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if v.Y < 0 {
		return DirectionUp
	}
	return DirectionDown
}

// detect decides whether the accumulated travel starts the pan.
func (p *panRecognizer) detect(total Vec2) {
	if p.travel(total) < p.threshold() {
		return
	}
	if !p.direction.Has(p.heading(total)) {
		p.engine.debugf("%s rejected: moved %s", describe(p), p.heading(total))
		p.adjudicate(DisposalReject)
		return
	}
	p.offset = total
	p.tryAccept(p.event())
}

func (p *panRecognizer) rebase() {
	p.start = p.centroid().Sub(p.offset)
	p.last = p.centroid()
	p.ready = true
}

func (p *panRecognizer) touchDown(ev TouchEvent) {
	switch p.state {
	case StateDetecting:
		if ev.Source == SourceMouse && ev.Button != MouseButtonLeft {
			p.adjudicate(DisposalReject)
			return
		}
		if p.activeFingers() > p.fingers {
			p.adjudicate(DisposalReject)
			return
		}
		if p.activeFingers() == p.fingers {
			p.rebase()
		}
	case StateSucceed, StateSucceedBlocked:
		// A finger joining mid-pan must not make the centroid jump.
		p.last = p.centroid()
	}
}

func (p *panRecognizer) touchMove(ev TouchEvent) {
	if !p.ready || p.activeFingers() < p.fingers {
		return
	}
	c := p.centroid()
	switch p.state {
	case StateDetecting:
		p.last = c
		p.detect(c.Sub(p.start))
	case StateSucceedBlocked:
		p.offset = p.offset.Add(c.Sub(p.last))
		p.last = c
	case StateSucceed:
		if p.ended {
			return
		}
		p.delta = c.Sub(p.last)
		p.offset = p.offset.Add(p.delta)
		p.last = c
		p.emit(EventActionUpdate, p.onUpdate, p.event())
	}
}

func (p *panRecognizer) touchUp(ev TouchEvent, tr *fingerTrack) {
	if p.state != StateSucceed {
		p.adjudicate(DisposalReject)
		return
	}
	if p.activeFingers() > 0 {
		p.last = p.centroid()
	}
	if p.ended || p.activeFingers() >= p.fingers {
		return
	}
	p.ended = true
	p.release = tr.vel.Velocity()
	p.delta = Vec2{}
	e := p.event()
	e.X, e.Y = ev.X, ev.Y
	p.emit(EventActionEnd, p.onEnd, e)
}

func (p *panRecognizer) axis(ev AxisEvent) {
	switch ev.Action {
	case AxisBegin:
		if ev.Modifiers.Has(ModCtrl) {
			p.adjudicate(DisposalReject)
			return
		}
		p.start = ev.Pos()
		p.last = ev.Pos()
		p.offset = Vec2{}
		p.ready = true
	case AxisUpdate:
		dx, dy := ev.Horizontal, ev.Vertical
		if ev.Modifiers.Has(ModShift) {
			dx, dy = dy, dx
		}
		d := Vec2{dx, dy}
		p.last = ev.Pos()
		switch p.state {
		case StateDetecting:
			p.delta = d
			p.detect(p.offset.Add(d))
			if p.state == StateDetecting {
				p.offset = p.offset.Add(d)
			}
		case StateSucceedBlocked:
			p.offset = p.offset.Add(d)
		case StateSucceed:
			p.delta = d
			p.offset = p.offset.Add(d)
			p.emit(EventActionUpdate, p.onUpdate, p.event())
		}
	case AxisEnd:
		if p.state != StateSucceed {
			p.adjudicate(DisposalReject)
			return
		}
		if !p.ended {
			p.ended = true
			p.delta = Vec2{}
			p.emit(EventActionEnd, p.onEnd, p.event())
		}
	}
}

func (p *panRecognizer) event() GestureEvent {
	pos := p.last
	v := p.release
	if !p.ended {
		if p.source == SourceAxis {
			v = Vec2{}
		} else {
			v = p.averageVelocity()
		}
	}
	return GestureEvent{
		X: pos.X, Y: pos.Y,
		OffsetX: p.offset.X, OffsetY: p.offset.Y,
		DeltaX: p.delta.X, DeltaY: p.delta.Y,
		VelocityX: v.X, VelocityY: v.Y, Velocity: v.Len(),
	}
}

func (p *panRecognizer) accepted() {
	p.delta = p.offset
	p.emit(EventActionStart, p.onStart, p.event())
}

func (p *panRecognizer) cancelled() {
	if p.ended {
		return
	}
	p.ended = true
	p.emit(EventActionCancel, p.onCancel, p.event())
}

func (p *panRecognizer) resetData() {
	p.ready = false
	p.start, p.last, p.offset, p.delta, p.release = Vec2{}, Vec2{}, Vec2{}, Vec2{}, Vec2{}
	p.ended = false
}
