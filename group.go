package gesture

// groupRecognizer composes child recognizers. It arbitrates among its
// children locally and forwards the outcome to its own parent arbiter, so a
// group looks like a single recognizer to the referee.
type groupRecognizer struct {
	recognizerBase
	mode GroupMode
	kids []Handle

	active         Handle // exclusive: the child that asked to accept
	pendingChild   Handle // exclusive: the child that asked to go pending
	current        int    // sequence: index of the step receiving events
	pendingAdvance bool   // sequence: the current step succeeded and awaits PENDING
}

var _ Recognizer = (*groupRecognizer)(nil)

func (g *groupRecognizer) children() []Recognizer {
	out := make([]Recognizer, 0, len(g.kids))
	for _, h := range g.kids {
		if r := g.engine.arena.get(h); r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (g *groupRecognizer) acceptsAxis() bool {
	for _, c := range g.children() {
		if c.acceptsAxis() {
			return true
		}
	}
	return false
}

func (g *groupRecognizer) indexOf(c Recognizer) int {
	for i, h := range g.kids {
		if h == c.Handle() {
			return i
		}
	}
	return -1
}

// currentChild returns the sequence step receiving events.
func (g *groupRecognizer) currentChild() Recognizer {
	if g.current >= len(g.kids) {
		return nil
	}
	return g.engine.arena.get(g.kids[g.current])
}

// upward forwards a disposal on behalf of the whole group.
func (g *groupRecognizer) upward(d GestureDisposal) {
	g.adjudicate(d)
}

// --- Event routing ---

func (g *groupRecognizer) handleTouch(ev TouchEvent) {
	if ev.Type == TouchCancel {
		g.cancel("touch cancel")
		return
	}
	switch ev.Type {
	case TouchDown:
		if g.state == StateReady {
			g.transition(StateDetecting, "down")
		}
		g.track(ev)
		g.engine.timers.Cancel(g.handle, timerSequence)
	case TouchMove, TouchUp:
		if g.tracks[ev.ID] == nil {
			return
		}
		g.track(ev)
		if ev.Type == TouchUp {
			g.untrack(ev.ID)
		}
	}
	if g.state == StateFail {
		return
	}

	if g.mode != GroupSequence {
		for _, c := range g.children() {
			c.handleTouch(ev)
		}
		return
	}

	// Finished steps still see releases so they can report their end.
	if ev.Type == TouchUp {
		for i := 0; i < g.current && i < len(g.kids); i++ {
			if c := g.engine.arena.get(g.kids[i]); c != nil && c.State() == StateSucceed {
				c.handleTouch(ev)
			}
		}
	}
	if c := g.currentChild(); c != nil {
		c.handleTouch(ev)
	}
	if ev.Type == TouchUp && g.activeFingers() == 0 && g.state == StatePending {
		g.armSequenceTimeout()
	}
}

func (g *groupRecognizer) handleAxis(ev AxisEvent) {
	if ev.Action == AxisCancel {
		g.cancel("axis cancel")
		return
	}
	if ev.Action == AxisBegin {
		if g.state == StateReady {
			g.transition(StateDetecting, "axis begin")
		}
		g.source = SourceAxis
	}
	g.modifiers = ev.Modifiers
	if g.state == StateFail {
		return
	}
	if g.mode != GroupSequence {
		for _, c := range g.children() {
			c.handleAxis(ev)
		}
		return
	}
	if c := g.currentChild(); c != nil {
		c.handleAxis(ev)
	}
}

// --- Child disposals ---

func (g *groupRecognizer) childDisposal(c Recognizer, d GestureDisposal) {
	switch g.mode {
	case GroupExclusive:
		g.exclusiveDisposal(c, d)
	case GroupParallel:
		g.parallelDisposal(c, d)
	case GroupSequence:
		g.sequenceDisposal(c, d)
	}
}

// siblingPending reports whether a child other than c is PENDING.
func (g *groupRecognizer) siblingPending(c Recognizer) bool {
	for _, o := range g.children() {
		if o != c && anyPending(o) {
			return true
		}
	}
	return false
}

// siblingAwaitsTaps reports whether a sibling tap needing more taps than c
// is still detecting.
func (g *groupRecognizer) siblingAwaitsTaps(c Recognizer) bool {
	for _, o := range g.children() {
		if o != c && awaitsMoreTaps(c, o) {
			return true
		}
	}
	return false
}

func (g *groupRecognizer) allChildrenFailed() bool {
	for _, c := range g.children() {
		if c.State() != StateFail {
			return false
		}
	}
	return true
}

func (g *groupRecognizer) exclusiveDisposal(c Recognizer, d GestureDisposal) {
	switch d {
	case DisposalAccept:
		if st := c.State(); st == StateSucceed || st == StateFail {
			return
		}
		switch {
		case g.state == StateFail:
			rejectRecognizer(c, "group failed")
			return
		case g.state == StateSucceed:
			if g.active != c.Handle() {
				rejectRecognizer(c, "group decided")
			}
			return
		case g.siblingPending(c) || g.siblingAwaitsTaps(c) || (!g.active.IsZero() && g.active != c.Handle()):
			c.base().transition(StateSucceedBlocked, "sibling undecided")
			c.onBlocked(DisposalAccept)
			return
		}
		g.active = c.Handle()
		g.upward(DisposalAccept)

	case DisposalPending:
		if st := c.State(); st == StatePending || st.Terminal() {
			return
		}
		switch {
		case g.state.Terminal():
			rejectRecognizer(c, "group decided")
			return
		case g.siblingPending(c):
			c.base().transition(StatePendingBlocked, "sibling pending")
			c.onBlocked(DisposalPending)
			return
		}
		g.pendingChild = c.Handle()
		if g.state == StatePending {
			c.base().transition(StatePending, "pending")
			c.onPending()
			return
		}
		c.base().transition(StatePendingBlocked, "awaiting group")
		g.upward(DisposalPending)

	case DisposalReject:
		prior := c.State()
		if prior == StateFail {
			return
		}
		rejectRecognizer(c, "rejected")
		if g.active == c.Handle() {
			g.active = Handle{}
		}
		if g.state.Terminal() {
			return
		}
		if g.allChildrenFailed() {
			g.upward(DisposalReject)
			return
		}
		if g.pendingChild == c.Handle() {
			g.pendingChild = Handle{}
		}
		g.promoteChildren()
	}
}

// promoteChildren re-submits locally blocked children once a sibling they
// waited on has resolved.
func (g *groupRecognizer) promoteChildren() {
	for _, c := range g.children() {
		if g.state.Terminal() {
			return
		}
		// These already went up and wait on the group's own outcome.
		if c.Handle() == g.active || c.Handle() == g.pendingChild {
			continue
		}
		switch c.State() {
		case StateSucceedBlocked:
			if !g.siblingPending(c) {
				c.base().transition(StateDetecting, "unblocked")
				g.childDisposal(c, DisposalAccept)
			}
		case StatePendingBlocked:
			if !g.siblingPending(c) {
				c.base().transition(StateDetecting, "unblocked")
				g.childDisposal(c, DisposalPending)
			}
		}
	}
}

func (g *groupRecognizer) parallelDisposal(c Recognizer, d GestureDisposal) {
	switch d {
	case DisposalAccept:
		if st := c.State(); st == StateSucceed || st == StateFail {
			return
		}
		switch g.state {
		case StateFail:
			rejectRecognizer(c, "group failed")
		case StateSucceed:
			acceptRecognizer(c, "accepted")
		default:
			c.base().transition(StateSucceedBlocked, "awaiting group")
			g.upward(DisposalAccept)
		}

	case DisposalPending:
		if st := c.State(); st == StatePending || st.Terminal() {
			return
		}
		switch g.state {
		case StateFail:
			rejectRecognizer(c, "group failed")
		case StatePending, StateSucceed:
			c.base().transition(StatePending, "pending")
			c.onPending()
		default:
			c.base().transition(StatePendingBlocked, "awaiting group")
			g.upward(DisposalPending)
		}

	case DisposalReject:
		if c.State() == StateFail {
			return
		}
		rejectRecognizer(c, "rejected")
		if g.state != StateSucceed && !g.state.Terminal() && g.allChildrenFailed() {
			g.upward(DisposalReject)
		}
	}
}

func (g *groupRecognizer) sequenceDisposal(c Recognizer, d GestureDisposal) {
	idx := g.indexOf(c)
	if idx != g.current {
		if d == DisposalReject {
			rejectRecognizer(c, "rejected")
		}
		return
	}
	last := idx == len(g.kids)-1
	switch d {
	case DisposalAccept:
		if st := c.State(); st == StateSucceed || st == StateFail || g.state == StateFail {
			return
		}
		if last {
			g.active = c.Handle()
			c.base().transition(StateSucceedBlocked, "awaiting group")
			g.upward(DisposalAccept)
			return
		}
		c.base().transition(StateSucceedBlocked, "awaiting group")
		if g.state == StatePending {
			g.advance()
			return
		}
		g.pendingAdvance = true
		g.upward(DisposalPending)

	case DisposalPending:
		if st := c.State(); st == StatePending || st.Terminal() || g.state == StateFail {
			return
		}
		if g.state == StatePending {
			c.base().transition(StatePending, "pending")
			c.onPending()
			return
		}
		c.base().transition(StatePendingBlocked, "awaiting group")
		g.upward(DisposalPending)

	case DisposalReject:
		if c.State() == StateFail {
			return
		}
		rejectRecognizer(c, "rejected")
		if !g.state.Terminal() {
			g.upward(DisposalReject)
		}
	}
}

// advance commits the current step and hands the held fingers to the next.
func (g *groupRecognizer) advance() {
	c := g.currentChild()
	g.pendingAdvance = false
	if c == nil {
		return
	}
	acceptRecognizer(c, "sequence step")
	if g.state == StateFail {
		return
	}
	g.current++
	next := g.currentChild()
	if next == nil {
		return
	}
	if g.activeFingers() == 0 {
		g.armSequenceTimeout()
		return
	}
	for _, id := range g.order {
		t := g.tracks[id]
		next.handleTouch(TouchEvent{TouchPoint: t.last, Type: TouchDown, Modifiers: g.modifiers, Button: g.button})
	}
}

func (g *groupRecognizer) armSequenceTimeout() {
	timeout := g.engine.cfg.SequenceTimeout
	if timeout <= 0 {
		return
	}
	g.engine.timers.Schedule(g.handle, timerSequence, g.engine.now+timeout, func() {
		if g.state.Terminal() || g.activeFingers() > 0 {
			return
		}
		g.engine.debugf("%s sequence timed out", describe(g))
		g.upward(DisposalReject)
	})
}

// --- Outcomes from the parent arbiter ---

func (g *groupRecognizer) onAccepted() {
	g.engine.timers.CancelAll(g.handle)
	switch g.mode {
	case GroupExclusive:
		winner := g.engine.arena.get(g.active)
		for _, c := range g.children() {
			if c == winner {
				continue
			}
			if st := c.State(); st != StateSucceed && st != StateFail {
				rejectRecognizer(c, "lost to "+describe(winner))
			}
		}
		if winner != nil {
			acceptRecognizer(winner, "accepted")
		}
	case GroupParallel:
		for _, c := range g.children() {
			switch c.State() {
			case StateSucceedBlocked:
				acceptRecognizer(c, "accepted")
			case StatePendingBlocked:
				c.base().transition(StatePending, "pending")
				c.onPending()
			}
		}
	case GroupSequence:
		if c := g.engine.arena.get(g.active); c != nil {
			acceptRecognizer(c, "accepted")
		}
	}
}

func (g *groupRecognizer) onRejected() {
	g.engine.timers.CancelAll(g.handle)
	for _, c := range g.children() {
		// Sequence steps that already fired keep their outcome.
		if c.State() != StateSucceed {
			rejectRecognizer(c, "group rejected")
		}
	}
}

func (g *groupRecognizer) onPending() {
	switch g.mode {
	case GroupSequence:
		if g.pendingAdvance {
			g.advance()
			return
		}
		if c := g.currentChild(); c != nil && c.State() == StatePendingBlocked {
			c.base().transition(StatePending, "pending")
			c.onPending()
		}
	case GroupExclusive:
		if c := g.engine.arena.get(g.pendingChild); c != nil && c.State() == StatePendingBlocked {
			c.base().transition(StatePending, "pending")
			c.onPending()
		}
	case GroupParallel:
		for _, c := range g.children() {
			if c.State() == StatePendingBlocked {
				c.base().transition(StatePending, "pending")
				c.onPending()
			}
		}
	}
}

func (g *groupRecognizer) onBlocked(d GestureDisposal) {
	if g.mode != GroupExclusive || d != DisposalAccept {
		return
	}
	if c := g.engine.arena.get(g.active); c != nil && !c.State().Terminal() {
		c.base().transition(StateSucceedBlocked, "group blocked")
		c.onBlocked(d)
	}
}

func (g *groupRecognizer) cancel(reason string) {
	for _, c := range g.children() {
		c.cancel(reason)
	}
	g.engine.timers.CancelAll(g.handle)
	if !g.state.Terminal() && g.state != StateReady {
		g.transition(StateFail, reason)
	}
	g.tracks = make(map[int]*fingerTrack)
	g.order = g.order[:0]
}

func (g *groupRecognizer) reset() {
	for _, c := range g.children() {
		c.reset()
	}
	g.active = Handle{}
	g.pendingChild = Handle{}
	g.current = 0
	g.pendingAdvance = false
	g.recognizerBase.reset()
}
