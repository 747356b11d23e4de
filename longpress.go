package gesture

import "time"

// LongPressGesture recognizes Fingers fingers held still for Duration.
type LongPressGesture struct {
	Tag      string
	Fingers  int           // 0 means 1
	Duration time.Duration // 0 uses Config.LongPressDuration
	Repeat   bool          // fire OnAction again every Config.LongPressRepeat while held

	// DisableMouseLeft stops the left mouse button from triggering the
	// gesture; other buttons never do.
	DisableMouseLeft bool

	OnAction       func(GestureEvent)
	OnActionEnd    func(GestureEvent)
	OnActionCancel func(GestureEvent)
}

func (d LongPressGesture) build(e *Engine, n *Node, parent Handle) Recognizer {
	h := e.arena.alloc()
	r := &longPressRecognizer{duration: d.Duration, repeat: d.Repeat, disableMouse: d.DisableMouseLeft}
	r.init(r, r, e, h, parent, KindLongPress, n, d.Tag)
	r.fingers = clampFingers(d.Fingers, 1, maxFingers)
	r.onAction = d.OnAction
	r.onEnd = d.OnActionEnd
	r.onCancel = d.OnActionCancel
	e.arena.set(h, r)
	return r
}

type longPressRecognizer struct {
	recognizerBase
	duration     time.Duration
	repeat       bool
	disableMouse bool

	ended bool
}

func (l *longPressRecognizer) holdFor() time.Duration {
	if l.duration > 0 {
		return l.duration
	}
	return l.engine.cfg.LongPressDuration
}

func (l *longPressRecognizer) touchDown(ev TouchEvent) {
	if l.state != StateDetecting {
		return
	}
	if ev.Source == SourceMouse && (ev.Button != MouseButtonLeft || l.disableMouse) {
		l.adjudicate(DisposalReject)
		return
	}
	n := l.activeFingers()
	if n > l.fingers {
		l.adjudicate(DisposalReject)
		return
	}
	if n < l.fingers {
		return
	}
	l.engine.timers.Schedule(l.handle, timerDeadline, l.engine.now+l.holdFor(), func() {
		if l.state == StateDetecting && l.activeFingers() == l.fingers {
			l.tryAccept(l.event(false))
		}
	})
}

func (l *longPressRecognizer) touchMove(ev TouchEvent) {
	if l.state == StateSucceed || l.state == StateSucceedBlocked {
		return
	}
	tr := l.tracks[ev.ID]
	if tr != nil && tr.last.Pos().Sub(tr.down.Pos()).Len() > l.engine.cfg.LongPressSlop {
		l.adjudicate(DisposalReject)
	}
}

func (l *longPressRecognizer) touchUp(ev TouchEvent, _ *fingerTrack) {
	if l.state != StateSucceed {
		l.adjudicate(DisposalReject)
		return
	}
	if l.ended {
		return
	}
	l.ended = true
	l.engine.timers.Cancel(l.handle, timerRepeat)
	e := l.event(false)
	e.X, e.Y = ev.X, ev.Y
	l.emit(EventActionEnd, l.onEnd, e)
}

func (l *longPressRecognizer) axis(AxisEvent) {}

func (l *longPressRecognizer) event(repeat bool) GestureEvent {
	c := l.centroid()
	return GestureEvent{X: c.X, Y: c.Y, Repeat: repeat}
}

func (l *longPressRecognizer) accepted() {
	l.emit(EventAction, l.onAction, l.event(false))
	if l.repeat {
		l.scheduleRepeat()
	}
}

func (l *longPressRecognizer) scheduleRepeat() {
	every := l.engine.cfg.LongPressRepeat
	if every <= 0 {
		return
	}
	l.engine.timers.Schedule(l.handle, timerRepeat, l.engine.now+every, func() {
		if l.state != StateSucceed || l.ended {
			return
		}
		l.emit(EventAction, l.onAction, l.event(true))
		l.scheduleRepeat()
	})
}

func (l *longPressRecognizer) cancelled() {
	if l.ended {
		return
	}
	l.ended = true
	l.emit(EventActionCancel, l.onCancel, l.event(false))
}

func (l *longPressRecognizer) resetData() {
	l.ended = false
}
