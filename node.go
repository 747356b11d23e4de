package gesture

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic: the engine is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// GestureInfo describes the gesture a judge is asked about.
type GestureInfo struct {
	Kind    Kind
	Tag     string
	Node    *Node
	Fingers int
	Source  SourceType
}

// --- Node ---

// Node is an element of the retained tree that hit testing walks. It carries
// only what hit testing and gesture binding need: geometry, transform,
// response regions, modes and the declared gestures.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local, relative to Parent)
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	// Layout size; the default response region is (0, 0, Width, Height).
	Width, Height float64

	// Hit testing
	Visible              bool
	Enabled              bool
	Clip                 bool
	Monopolize           bool
	HitTestMode          HitTestMode
	ZIndex               int
	ResponseRegions      []HitShape // touch and pen; nil means bounds
	MouseResponseRegions []HitShape // mouse and axis; nil falls back to ResponseRegions

	// Metadata
	UserData any
	EntityID uint32

	// OnTouch receives raw touch events for fingers that hit this node, in
	// hit-test order, before recognizers see them.
	OnTouch func(*TouchEventInfo)

	// GestureJudge, when set, is consulted immediately before any gesture
	// bound to this node commits an accept.
	GestureJudge func(GestureInfo, *GestureEvent) JudgeResult

	bindings []gestureBinding
	hub      gestureHub

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

type gestureBinding struct {
	gesture  Gesture
	priority GesturePriority
}

// gestureHub holds the handles of the recognizer trees compiled from a node's
// bindings, one root per priority class.
type gestureHub struct {
	engine *Engine
	roots  [3]Handle
	dirty  bool
}

// NewNode creates an enabled, visible node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		Visible:        true,
		Enabled:        true,
		childrenSorted: true,
	}
}

// NewBox creates a node with the given position and size.
func NewBox(name string, x, y, w, h float64) *Node {
	n := NewNode(name)
	n.X, n.Y = x, y
	n.Width, n.Height = w, h
	return n
}

// --- Gesture binding ---

// AddGesture binds g to the node with normal priority.
func (n *Node) AddGesture(g Gesture) {
	n.AddGestureWithPriority(g, PriorityNormal)
}

// AddGestureWithPriority binds g with the given priority. Bindings take
// effect for the next touch session; a session already in flight keeps the
// recognizers it started with.
func (n *Node) AddGestureWithPriority(g Gesture, p GesturePriority) {
	if g == nil {
		panic("gesture: cannot bind nil gesture")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddGesture")
	}
	n.bindings = append(n.bindings, gestureBinding{gesture: g, priority: p})
	n.hub.dirty = true
}

// ClearGestures removes every gesture binding from the node.
func (n *Node) ClearGestures() {
	n.bindings = nil
	n.hub.dirty = true
}

// NumGestures returns the number of gesture bindings.
func (n *Node) NumGestures() int {
	return len(n.bindings)
}

// SetEnabled enables or disables the node. Disabling a node force-rejects
// every recognizer it owns that is still in play.
func (n *Node) SetEnabled(enabled bool) {
	if n.Enabled == enabled {
		return
	}
	n.Enabled = enabled
	if !enabled && n.hub.engine != nil {
		n.hub.engine.forceRejectNode(n)
	}
}

// ResponseRegionList returns the regions that gate whether the node itself is
// hit for the given source. A nil result means the node's bounds.
func (n *Node) ResponseRegionList(source SourceType) []HitShape {
	if (source == SourceMouse || source == SourceAxis) && n.MouseResponseRegions != nil {
		return n.MouseResponseRegions
	}
	return n.ResponseRegions
}

// containsLocal tests whether (lx, ly) falls inside the node's response
// regions for source.
func (n *Node) containsLocal(lx, ly float64, source SourceType) bool {
	regions := n.ResponseRegionList(source)
	if regions == nil {
		if n.Width <= 0 && n.Height <= 0 {
			return false
		}
		return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
	}
	for _, r := range regions {
		if r.Contains(lx, ly) {
			return true
		}
	}
	return false
}

// inBounds reports whether (lx, ly) lies within the node's layout bounds.
func (n *Node) inBounds(lx, ly float64) bool {
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("gesture: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("gesture: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("gesture: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// paintOrder returns children in ZIndex-stable paint order (last is topmost).
// Uses insertion sort: stable and O(n) when already sorted.
func (n *Node) paintOrder() []*Node {
	if n.childrenSorted {
		if n.sortedChildren == nil {
			return n.children
		}
		return n.sortedChildren
	}
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
	return n.sortedChildren
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, releases
// its recognizers and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	if e := n.hub.engine; e != nil {
		e.forceRejectNode(n)
		e.releaseNode(n)
	}
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.bindings = nil
	n.ResponseRegions = nil
	n.MouseResponseRegions = nil
	n.UserData = nil
	n.OnTouch = nil
	n.GestureJudge = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
