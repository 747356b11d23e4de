package gesture

import "time"

// Recognizer is a node-owned gesture state machine. The set of
// implementations is closed: Kind reports which one it is, and dispatch and
// arbitration switch on Kind or use the methods below rather than inspecting
// concrete types.
type Recognizer interface {
	Kind() Kind
	Handle() Handle
	Tag() string
	State() RefereeState
	Node() *Node
	Dump() Snapshot

	base() *recognizerBase
	children() []Recognizer // nil for leaves

	handleTouch(ev TouchEvent)
	handleAxis(ev AxisEvent)
	acceptsAxis() bool

	// Arbitration outcomes, delivered by the parent arbiter (a group or the
	// referee) after it has already set the recognizer's state.
	onAccepted()
	onRejected()
	onPending()
	onBlocked(d GestureDisposal)

	// childDisposal receives a child's disposal request. Leaves ignore it.
	childDisposal(child Recognizer, d GestureDisposal)

	// cancel drives a non-terminal recognizer straight to FAIL, bypassing
	// negotiation.
	cancel(reason string)
	reset()
}

// leafHooks is implemented by the concrete recognizers; recognizerBase does
// the finger bookkeeping and calls into them.
type leafHooks interface {
	touchDown(ev TouchEvent)
	touchMove(ev TouchEvent)
	touchUp(ev TouchEvent, t *fingerTrack)
	axis(ev AxisEvent)
	accepted()
	cancelled()
	resetData()
}

const maxHistory = 32

// StateRecord is one state transition kept for diagnostics.
type StateRecord struct {
	From   RefereeState
	To     RefereeState
	At     time.Duration
	Reason string
}

// fingerTrack holds what a recognizer knows about one active finger.
type fingerTrack struct {
	down TouchPoint
	last TouchPoint
	vel  *velocityTracker
}

// recognizerBase holds the state shared by every recognizer.
type recognizerBase struct {
	self   Recognizer
	leaf   leafHooks
	engine *Engine
	handle Handle
	parent Handle
	kind   Kind
	tag    string
	node   *Node

	fingers  int // required finger count
	parallel bool

	state   RefereeState
	history []StateRecord
	scopes  []ScopeKey

	tracks    map[int]*fingerTrack
	order     []int // active finger ids in down order
	source    SourceType
	modifiers KeyModifiers
	button    MouseButton

	onAction func(GestureEvent)
	onStart  func(GestureEvent)
	onUpdate func(GestureEvent)
	onEnd    func(GestureEvent)
	onCancel func(GestureEvent)
}

func (b *recognizerBase) init(self Recognizer, leaf leafHooks, e *Engine, h, parent Handle, kind Kind, n *Node, tag string) {
	b.self = self
	b.leaf = leaf
	b.engine = e
	b.handle = h
	b.parent = parent
	b.kind = kind
	b.node = n
	b.tag = tag
	b.tracks = make(map[int]*fingerTrack)
}

func (b *recognizerBase) Kind() Kind             { return b.kind }
func (b *recognizerBase) Handle() Handle         { return b.handle }
func (b *recognizerBase) Tag() string            { return b.tag }
func (b *recognizerBase) State() RefereeState    { return b.state }
func (b *recognizerBase) Node() *Node            { return b.node }
func (b *recognizerBase) base() *recognizerBase  { return b }
func (b *recognizerBase) children() []Recognizer { return nil }
func (b *recognizerBase) acceptsAxis() bool      { return false }

func (b *recognizerBase) childDisposal(Recognizer, GestureDisposal) {}

// transition moves the recognizer to a new state and records it.
func (b *recognizerBase) transition(to RefereeState, reason string) {
	if b.state == to {
		return
	}
	rec := StateRecord{From: b.state, To: to, At: b.engine.now, Reason: reason}
	if len(b.history) == maxHistory {
		copy(b.history, b.history[1:])
		b.history = b.history[:maxHistory-1]
	}
	b.history = append(b.history, rec)
	b.state = to
	b.engine.traceTransition(b.self, rec)
}

// --- Scope membership (roots only) ---

func (b *recognizerBase) addScope(k ScopeKey) {
	for _, s := range b.scopes {
		if s == k {
			return
		}
	}
	b.scopes = append(b.scopes, k)
}

// removeScope drops k and reports whether it was present.
func (b *recognizerBase) removeScope(k ScopeKey) bool {
	for i, s := range b.scopes {
		if s == k {
			b.scopes = append(b.scopes[:i], b.scopes[i+1:]...)
			return true
		}
	}
	return false
}

// --- Finger bookkeeping ---

func (b *recognizerBase) track(ev TouchEvent) *fingerTrack {
	t := b.tracks[ev.ID]
	if t == nil {
		t = &fingerTrack{down: ev.TouchPoint, vel: newVelocityTracker(b.engine.cfg.VelocityWindow)}
		b.tracks[ev.ID] = t
		b.order = append(b.order, ev.ID)
	}
	for _, h := range ev.History {
		t.vel.Add(h.Time, h.Pos())
	}
	t.vel.Add(ev.Time, ev.Pos())
	t.last = ev.TouchPoint
	b.source = ev.Source
	b.modifiers = ev.Modifiers
	return t
}

func (b *recognizerBase) untrack(id int) *fingerTrack {
	t := b.tracks[id]
	if t == nil {
		return nil
	}
	delete(b.tracks, id)
	for i, o := range b.order {
		if o == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return t
}

// activeFingers returns the number of fingers currently down.
func (b *recognizerBase) activeFingers() int { return len(b.order) }

// points returns the current position of every active finger in down order.
func (b *recognizerBase) points() []TouchPoint {
	pts := make([]TouchPoint, 0, len(b.order))
	for _, id := range b.order {
		pts = append(pts, b.tracks[id].last)
	}
	return pts
}

// centroid returns the mean current position of the active fingers.
func (b *recognizerBase) centroid() Vec2 {
	var c Vec2
	if len(b.order) == 0 {
		return c
	}
	for _, id := range b.order {
		c = c.Add(b.tracks[id].last.Pos())
	}
	return c.Scale(1 / float64(len(b.order)))
}

// averageVelocity returns the mean estimated velocity of the active fingers.
func (b *recognizerBase) averageVelocity() Vec2 {
	var v Vec2
	if len(b.order) == 0 {
		return v
	}
	for _, id := range b.order {
		v = v.Add(b.tracks[id].vel.Velocity())
	}
	return v.Scale(1 / float64(len(b.order)))
}

// --- Event entry points (leaves) ---

func (b *recognizerBase) handleTouch(ev TouchEvent) {
	switch ev.Type {
	case TouchCancel:
		b.cancel("touch cancel")
	case TouchDown:
		if b.state == StateReady {
			b.transition(StateDetecting, "down")
		}
		if ev.Source == SourceMouse {
			b.button = ev.Button
		}
		b.track(ev)
		if b.state == StateFail {
			return
		}
		b.leaf.touchDown(ev)
	case TouchMove:
		if b.tracks[ev.ID] == nil {
			return
		}
		b.track(ev)
		if b.state == StateFail {
			return
		}
		b.leaf.touchMove(ev)
	case TouchUp:
		if b.tracks[ev.ID] == nil {
			return
		}
		b.track(ev)
		t := b.untrack(ev.ID)
		if b.state == StateFail {
			return
		}
		b.leaf.touchUp(ev, t)
	}
}

func (b *recognizerBase) handleAxis(ev AxisEvent) {
	switch ev.Action {
	case AxisCancel:
		b.cancel("axis cancel")
		return
	case AxisBegin:
		if b.state == StateReady {
			b.transition(StateDetecting, "axis begin")
		}
		b.source = SourceAxis
	}
	b.modifiers = ev.Modifiers
	if b.state == StateFail {
		return
	}
	if !b.self.acceptsAxis() {
		if ev.Action == AxisBegin {
			b.adjudicate(DisposalReject)
		}
		return
	}
	b.leaf.axis(ev)
}

// --- Arbitration ---

// adjudicate sends a disposal to the parent group, or to the referee when
// the recognizer is a root. A parent that no longer exists makes the request
// a no-op.
func (b *recognizerBase) adjudicate(d GestureDisposal) {
	if !b.parent.IsZero() {
		if p := b.engine.arena.get(b.parent); p != nil {
			p.childDisposal(b.self, d)
		}
		return
	}
	b.engine.referee.Adjudicate(b.self, d)
}

// tryAccept consults the owning node's judge and then requests ACCEPT, or
// REJECT when the judge vetoes.
func (b *recognizerBase) tryAccept(snapshot GestureEvent) {
	if n := b.node; n != nil && n.GestureJudge != nil {
		info := GestureInfo{Kind: b.kind, Tag: b.tag, Node: n, Fingers: b.fingers, Source: b.source}
		ev := b.fill(snapshot)
		if n.GestureJudge(info, &ev) == JudgeReject {
			b.engine.debugf("%s judge rejected", describe(b.self))
			b.adjudicate(DisposalReject)
			return
		}
	}
	b.adjudicate(DisposalAccept)
}

func (b *recognizerBase) onAccepted() {
	b.engine.timers.CancelAll(b.handle)
	if b.leaf != nil {
		b.leaf.accepted()
	}
}

func (b *recognizerBase) onRejected() {
	b.engine.timers.CancelAll(b.handle)
}

func (b *recognizerBase) onPending() {}

func (b *recognizerBase) onBlocked(GestureDisposal) {}

func (b *recognizerBase) cancel(reason string) {
	b.engine.timers.CancelAll(b.handle)
	if b.state == StateSucceed {
		if b.leaf != nil {
			b.leaf.cancelled()
		}
	} else if b.state != StateFail && b.state != StateReady {
		b.transition(StateFail, reason)
	}
	b.tracks = make(map[int]*fingerTrack)
	b.order = b.order[:0]
}

func (b *recognizerBase) reset() {
	b.engine.timers.CancelAll(b.handle)
	if b.state != StateReady {
		b.transition(StateReady, "reset")
	}
	b.tracks = make(map[int]*fingerTrack)
	b.order = b.order[:0]
	b.source = SourceUnknown
	b.modifiers = 0
	if b.leaf != nil {
		b.leaf.resetData()
	}
}

// --- Callback emission ---

// fill stamps the identity fields of a gesture event.
func (b *recognizerBase) fill(ev GestureEvent) GestureEvent {
	ev.Kind = b.kind
	ev.Tag = b.tag
	ev.Node = b.node
	if b.node != nil {
		ev.EntityID = b.node.EntityID
		if !b.node.disposed {
			ev.LocalX, ev.LocalY = b.node.WorldToLocal(ev.X, ev.Y)
		}
	}
	ev.Source = b.source
	ev.Modifiers = b.modifiers
	ev.Time = b.engine.now
	if ev.Fingers == nil {
		ev.Fingers = b.points()
	}
	return ev
}

// emit fires fn (when set) and the engine-level handlers.
func (b *recognizerBase) emit(t EventType, fn func(GestureEvent), ev GestureEvent) {
	ev.Type = t
	ev = b.fill(ev)
	if fn != nil {
		fn(ev)
	}
	b.engine.emitGesture(ev)
}

// --- Tree helpers ---

// acceptRecognizer commits r to SUCCEED and runs its accept side effects.
func acceptRecognizer(r Recognizer, reason string) {
	if r.State() == StateSucceed {
		return
	}
	r.base().transition(StateSucceed, reason)
	r.onAccepted()
}

// rejectRecognizer commits r to FAIL and runs its reject side effects,
// cascading through groups.
func rejectRecognizer(r Recognizer, reason string) {
	if r.State() == StateFail {
		return
	}
	r.base().transition(StateFail, reason)
	r.onRejected()
}

// anyPending reports whether r or any descendant is PENDING.
func anyPending(r Recognizer) bool {
	if r.State() == StatePending {
		return true
	}
	for _, c := range r.children() {
		if anyPending(c) {
			return true
		}
	}
	return false
}

// allTerminal reports whether r and every descendant is SUCCEED or FAIL.
func allTerminal(r Recognizer) bool {
	if !r.State().Terminal() {
		return false
	}
	for _, c := range r.children() {
		if !allTerminal(c) {
			return false
		}
	}
	return true
}

// failSilently drives r and its non-terminal descendants to FAIL without
// callbacks. Used when a session closes around an undecided recognizer.
func failSilently(r Recognizer, reason string) {
	for _, c := range r.children() {
		failSilently(c, reason)
	}
	b := r.base()
	b.engine.timers.CancelAll(b.handle)
	if !b.state.Terminal() && b.state != StateReady {
		b.transition(StateFail, reason)
	}
}

// finishReferee tells root r that the scope for k has closed. When r has no
// scopes left it is reset to READY.
func finishReferee(r Recognizer, k ScopeKey) {
	b := r.base()
	if !b.removeScope(k) || len(b.scopes) > 0 {
		return
	}
	failSilently(r, "session closed")
	r.reset()
}

// walk visits r and its descendants depth-first.
func walk(r Recognizer, fn func(Recognizer)) {
	fn(r)
	for _, c := range r.children() {
		walk(c, fn)
	}
}
