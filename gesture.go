package gesture

import "fmt"

// Gesture is a declarative gesture description bound to a node. The engine
// compiles a node's bindings into recognizer trees the first time a touch
// session needs them, and again after the bindings change.
type Gesture interface {
	build(e *Engine, n *Node, parent Handle) Recognizer
}

const maxFingers = 10

// clampFingers returns n limited to [lo, hi], or lo when n is zero.
func clampFingers(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// GestureGroup composes gestures under one arbitration mode.
type GestureGroup struct {
	Tag      string
	Mode     GroupMode
	Gestures []Gesture
}

// NewGestureGroup is shorthand for a GestureGroup literal.
func NewGestureGroup(mode GroupMode, gestures ...Gesture) *GestureGroup {
	return &GestureGroup{Mode: mode, Gestures: gestures}
}

func (d GestureGroup) build(e *Engine, n *Node, parent Handle) Recognizer {
	h := e.arena.alloc()
	g := &groupRecognizer{mode: d.Mode}
	g.init(g, nil, e, h, parent, KindGroup, n, d.Tag)
	e.arena.set(h, g)
	for _, c := range d.Gestures {
		if c == nil {
			continue
		}
		g.kids = append(g.kids, c.build(e, n, h).Handle())
	}
	return g
}

// --- Compilation ---

var priorities = [...]GesturePriority{PriorityNormal, PriorityHigh, PriorityParallel}

// compile (re)builds the recognizer trees for n's bindings. Each priority
// class gets one root exclusive group. Trees still engaged in a session are
// left alone until they return to READY.
func (e *Engine) compile(n *Node) {
	hub := &n.hub
	if hub.engine != nil && hub.engine != e {
		hub.engine.releaseNode(n)
		hub.dirty = true
	}
	hub.engine = e
	if !hub.dirty {
		return
	}
	for _, h := range hub.roots {
		if r := e.arena.get(h); r != nil && r.State() != StateReady {
			return
		}
	}
	e.releaseNode(n)
	for _, p := range priorities {
		var decl GestureGroup
		for _, b := range n.bindings {
			if b.priority == p {
				decl.Gestures = append(decl.Gestures, b.gesture)
			}
		}
		if len(decl.Gestures) == 0 {
			continue
		}
		root := decl.build(e, n, Handle{})
		root.base().parallel = p == PriorityParallel
		hub.roots[p] = root.Handle()
	}
	hub.dirty = false
	e.debugf("compiled %d binding(s) on %s", len(n.bindings), nodeLabel(n))
}

// releaseTree frees h and every recognizer beneath it.
func (e *Engine) releaseTree(h Handle) {
	r := e.arena.get(h)
	if r == nil {
		return
	}
	for _, c := range r.children() {
		e.releaseTree(c.Handle())
	}
	e.timers.CancelAll(h)
	e.referee.dropMember(h)
	e.arena.release(h)
}

// releaseNode frees every recognizer tree compiled for n.
func (e *Engine) releaseNode(n *Node) {
	for i, h := range n.hub.roots {
		e.releaseTree(h)
		n.hub.roots[i] = Handle{}
	}
	if n.hub.engine == e {
		n.hub.dirty = len(n.bindings) > 0
	}
}

// rootOf returns n's compiled root for priority p, or nil.
func (e *Engine) rootOf(n *Node, p GesturePriority) Recognizer {
	return e.arena.get(n.hub.roots[p])
}

// Recognizers returns the compiled roots of n in priority order (normal,
// high, parallel), compiling pending bindings first.
func (e *Engine) Recognizers(n *Node) []Recognizer {
	e.compile(n)
	var out []Recognizer
	for _, p := range priorities {
		if r := e.rootOf(n, p); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the first recognizer on n whose declaration carried tag.
func (e *Engine) Find(n *Node, tag string) Recognizer {
	var found Recognizer
	for _, r := range e.Recognizers(n) {
		walk(r, func(c Recognizer) {
			if found == nil && c.Tag() == tag {
				found = c
			}
		})
	}
	return found
}

// Lookup resolves a handle. A stale handle yields nil.
func (e *Engine) Lookup(h Handle) Recognizer {
	return e.arena.get(h)
}

func describe(r Recognizer) string {
	if r == nil {
		return "<nil>"
	}
	if r.Tag() != "" {
		return fmt.Sprintf("%s(%s)%v", r.Kind(), r.Tag(), r.Handle())
	}
	return fmt.Sprintf("%s%v", r.Kind(), r.Handle())
}

func nodeLabel(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return fmt.Sprintf("%q", n.Name)
	}
	return fmt.Sprintf("node#%d", n.ID)
}
