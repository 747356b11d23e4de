package gesture

// TapGesture recognizes Count consecutive taps with Fingers fingers.
type TapGesture struct {
	Tag     string
	Count   int     // taps required; 0 means 1
	Fingers int     // fingers per tap; 0 means 1
	Slop    float64 // max travel per finger; 0 uses Config.TapSlop

	OnAction func(GestureEvent)
}

func (d TapGesture) build(e *Engine, n *Node, parent Handle) Recognizer {
	h := e.arena.alloc()
	r := &tapRecognizer{count: max(d.Count, 1), slop: d.Slop}
	r.init(r, r, e, h, parent, KindTap, n, d.Tag)
	r.fingers = clampFingers(d.Fingers, 1, maxFingers)
	r.onAction = d.OnAction
	e.arena.set(h, r)
	return r
}

type tapRecognizer struct {
	recognizerBase
	count int
	slop  float64

	taps     int // completed taps this session
	peak     int // most fingers down at once during the current tap
	lastUp   TouchPoint
	centroid Vec2
}

func (t *tapRecognizer) slopLimit() float64 {
	if t.slop > 0 {
		return t.slop
	}
	return t.engine.cfg.TapSlop
}

// live reports whether the tap is still collecting taps.
func (t *tapRecognizer) live() bool {
	return t.state == StateDetecting || t.state == StatePending
}

func (t *tapRecognizer) touchDown(ev TouchEvent) {
	if !t.live() {
		return
	}
	if ev.Source == SourceMouse && ev.Button != MouseButtonLeft {
		t.adjudicate(DisposalReject)
		return
	}
	n := t.activeFingers()
	if n > t.fingers {
		t.engine.debugf("%s rejected: %d fingers, want %d", describe(t), n, t.fingers)
		t.adjudicate(DisposalReject)
		return
	}
	t.peak = max(t.peak, n)
	t.engine.timers.Cancel(t.handle, timerTapWindow)
}

func (t *tapRecognizer) touchMove(ev TouchEvent) {
	if !t.live() {
		return
	}
	if tr := t.tracks[ev.ID]; tr != nil && tr.last.Pos().Sub(tr.down.Pos()).Len() > t.slopLimit() {
		t.adjudicate(DisposalReject)
	}
}

func (t *tapRecognizer) touchUp(ev TouchEvent, tr *fingerTrack) {
	if !t.live() {
		return
	}
	if tr.last.Pos().Sub(tr.down.Pos()).Len() > t.slopLimit() {
		t.adjudicate(DisposalReject)
		return
	}
	t.centroid = t.centroid.Add(tr.last.Pos())
	if t.activeFingers() > 0 {
		return
	}
	if t.peak < t.fingers {
		t.engine.debugf("%s rejected: %d fingers, want %d", describe(t), t.peak, t.fingers)
		t.adjudicate(DisposalReject)
		return
	}
	t.centroid = t.centroid.Scale(1 / float64(t.peak))
	t.lastUp = ev.TouchPoint
	t.taps++
	t.peak = 0
	if t.taps >= t.count {
		t.tryAccept(t.event())
		return
	}
	t.centroid = Vec2{}
	if t.taps == 1 {
		t.adjudicate(DisposalPending)
	}
	if t.state.Terminal() {
		return
	}
	t.engine.timers.Schedule(t.handle, timerTapWindow, t.engine.now+t.engine.cfg.MultiTapTimeout, func() {
		if t.live() {
			t.engine.debugf("%s timed out after %d tap(s)", describe(t), t.taps)
			t.adjudicate(DisposalReject)
		}
	})
}

func (t *tapRecognizer) axis(AxisEvent) {}

// awaitsMoreTaps reports whether o is a tap still counting toward more taps
// than c needs. An exclusive group holds c's accept until o resolves.
func awaitsMoreTaps(c, o Recognizer) bool {
	if c.Kind() != KindTap || o.Kind() != KindTap || o.State() != StateDetecting {
		return false
	}
	ct, ok := c.(*tapRecognizer)
	if !ok {
		return false
	}
	ot, ok := o.(*tapRecognizer)
	return ok && ot.count > ct.count && ot.fingers == ct.fingers
}

func (t *tapRecognizer) event() GestureEvent {
	return GestureEvent{Count: t.taps, X: t.centroid.X, Y: t.centroid.Y, Fingers: []TouchPoint{t.lastUp}}
}

func (t *tapRecognizer) accepted() {
	t.emit(EventAction, t.onAction, t.event())
}

func (t *tapRecognizer) cancelled() {}

func (t *tapRecognizer) resetData() {
	t.taps = 0
	t.peak = 0
	t.centroid = Vec2{}
	t.lastUp = TouchPoint{}
}
