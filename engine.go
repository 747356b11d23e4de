package gesture

import (
	"io"
	"os"
	"time"
)

// touchSession is the dispatch bookkeeping for one touch or axis id: the
// candidates found by the hit test at Down, in hit order.
type touchSession struct {
	key     ScopeKey
	targets []HitTarget
}

// Engine owns the node tree root, the recognizer arena, the referee and the
// timer queue, and drives them from platform events.
//
// The Engine is not safe for concurrent use. Events, Update and tree
// changes must all happen on one goroutine.
type Engine struct {
	cfg  Config
	root *Node
	now  time.Duration

	arena   arena
	referee *Referee
	timers  timerQueue

	sessions map[ScopeKey]*touchSession

	handlers handlerRegistry
	store    EntityStore

	debug  bool
	logOut io.Writer

	injectQueue []syntheticEvent
	testRunner  *TestRunner
}

// NewEngine creates an engine with an empty root node.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		cfg:      cfg,
		root:     NewNode("root"),
		sessions: make(map[ScopeKey]*touchSession),
		logOut:   os.Stderr,
	}
	e.root.HitTestMode = HitTestNone
	e.referee = newReferee(e)
	return e
}

// Root returns the root node of the tree hit testing walks.
func (e *Engine) Root() *Node { return e.root }

// Referee returns the engine's referee.
func (e *Engine) Referee() *Referee { return e.referee }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetConfig replaces the configuration. Recognizers read it when they next
// need a threshold.
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg }

// SetTapSlop sets the maximum finger travel allowed within a tap.
func (e *Engine) SetTapSlop(pixels float64) { e.cfg.TapSlop = pixels }

// SetLongPressDuration sets the default long-press hold time.
func (e *Engine) SetLongPressDuration(d time.Duration) { e.cfg.LongPressDuration = d }

// SetPanDistance sets the default pan start distance.
func (e *Engine) SetPanDistance(pixels float64) { e.cfg.PanDistance = pixels }

// Now returns the engine clock: the latest event time or Update total.
func (e *Engine) Now() time.Duration { return e.now }

// ActiveSessions returns the number of touch and axis ids being dispatched.
func (e *Engine) ActiveSessions() int { return len(e.sessions) }

// advanceTo moves the clock forward to t, firing due timers in deadline
// order with the clock set to each deadline. Time never runs backwards.
func (e *Engine) advanceTo(t time.Duration) {
	for {
		at, ok := e.timers.Next()
		if !ok || at > t {
			break
		}
		if at > e.now {
			e.now = at
		}
		e.timers.Advance(at)
	}
	if t > e.now {
		e.now = t
	}
}

// Update advances the clock by dt, fires due timers and feeds the next
// scripted or injected event, if any. Call once per frame.
func (e *Engine) Update(dt time.Duration) {
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.advanceTo(e.now + dt)
	e.processInjected()
}

// --- Touch dispatch ---

// HandleTouchEvent dispatches one touch, pen or mouse-button event and
// reports whether any candidate received it. Events of unknown type or from
// an unknown source are not handled.
func (e *Engine) HandleTouchEvent(ev TouchEvent) bool {
	if ev.Type == TouchUnknown || ev.Type > TouchCancel || ev.Source == SourceUnknown {
		return false
	}
	e.advanceTo(ev.Time)
	ev.Time = e.now
	e.emitTouch(ev)
	key := ScopeKey{ID: ev.ID}

	if ev.Type == TouchDown {
		res := e.TouchTest(ev.X, ev.Y, ev.Source)
		targets := monopolize(res.Targets)
		if len(targets) == 0 {
			delete(e.sessions, key)
			return false
		}
		e.sessions[key] = &touchSession{key: key, targets: targets}
		e.referee.AddToScope(key, rootsOf(targets))
		e.debugf("down #%d at (%.1f, %.1f): %d target(s)", ev.ID, ev.X, ev.Y, len(targets))
	}

	sess := e.sessions[key]
	if sess == nil {
		return false
	}
	e.dispatchTouch(sess, ev)

	switch ev.Type {
	case TouchUp:
		delete(e.sessions, key)
		e.referee.CleanScope(key)
	case TouchCancel:
		delete(e.sessions, key)
		e.referee.ForceCloseScope(key)
	}
	return true
}

func rootsOf(targets []HitTarget) []Handle {
	roots := make([]Handle, 0, len(targets))
	for _, t := range targets {
		if !t.Recognizer.IsZero() {
			roots = append(roots, t.Recognizer)
		}
	}
	return roots
}

// dispatchTouch forwards ev to the session's candidates in hit order. Raw
// OnTouch callbacks honor StopPropagation; recognizers always see the event.
func (e *Engine) dispatchTouch(sess *touchSession, ev TouchEvent) {
	stopped := false
	for _, t := range sess.targets {
		if t.Recognizer.IsZero() {
			if stopped || t.Node.disposed || t.Node.OnTouch == nil {
				continue
			}
			info := &TouchEventInfo{Event: ev, Node: t.Node}
			info.LocalX, info.LocalY = t.Node.WorldToLocal(ev.X, ev.Y)
			t.Node.OnTouch(info)
			stopped = info.stopped
			continue
		}
		r := e.arena.get(t.Recognizer)
		if r == nil {
			continue
		}
		r.handleTouch(ev)
	}
}

// --- Axis dispatch ---

// HandleAxisEvent dispatches one wheel or trackpad event and reports
// whether any candidate received it.
func (e *Engine) HandleAxisEvent(ev AxisEvent) bool {
	if ev.Action == AxisNone || ev.Action > AxisCancel {
		return false
	}
	e.advanceTo(ev.Time)
	ev.Time = e.now
	key := ScopeKey{ID: ev.ID, Axis: true}

	if ev.Action == AxisBegin {
		res := e.TouchTest(ev.X, ev.Y, SourceAxis)
		targets := monopolize(res.Targets)
		if len(targets) == 0 {
			delete(e.sessions, key)
			return false
		}
		e.sessions[key] = &touchSession{key: key, targets: targets}
		e.referee.AddToScope(key, rootsOf(targets))
	}

	sess := e.sessions[key]
	if sess == nil {
		return false
	}
	for _, t := range sess.targets {
		if r := e.arena.get(t.Recognizer); r != nil {
			r.handleAxis(ev)
		}
	}

	switch ev.Action {
	case AxisEnd:
		delete(e.sessions, key)
		e.referee.CleanScope(key)
	case AxisCancel:
		delete(e.sessions, key)
		e.referee.ForceCloseScope(key)
	}
	return true
}

// CancelAll cancels every open session, as a platform would when the window
// loses focus.
func (e *Engine) CancelAll() {
	for key := range e.sessions {
		sess := e.sessions[key]
		delete(e.sessions, key)
		for _, t := range sess.targets {
			if r := e.arena.get(t.Recognizer); r != nil {
				r.cancel("cancel all")
			}
		}
		e.referee.ForceCloseScope(key)
	}
}

// --- Node lifecycle hooks ---

// forceRejectNode rejects every undecided recognizer n owns, cascading to
// descendants of each group.
func (e *Engine) forceRejectNode(n *Node) {
	for _, h := range n.hub.roots {
		r := e.arena.get(h)
		if r == nil || r.State() == StateReady || r.State() == StateFail {
			continue
		}
		if r.State() == StateSucceed {
			r.cancel("node disabled")
			continue
		}
		e.referee.Adjudicate(r, DisposalReject)
	}
}
