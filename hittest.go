package gesture

// HitTarget is one candidate produced by hit testing: a compiled recognizer
// root, or a node's raw OnTouch callback when Recognizer is zero.
type HitTarget struct {
	Node       *Node
	Recognizer Handle
	Priority   GesturePriority
}

// TouchTestResult is the ordered candidate list for one point plus the
// result of the root subtree.
type TouchTestResult struct {
	Targets []HitTarget
	Result  HitTestResult
}

// TouchTest walks the tree from the root and collects, in arbitration
// order, the recognizers and OnTouch targets that the point (x, y) in world
// coordinates reaches. Children are tested topmost first. For each hit node
// its high-priority gestures come before its descendants' targets, and its
// normal and parallel gestures after.
func (e *Engine) TouchTest(x, y float64, source SourceType) TouchTestResult {
	var res TouchTestResult
	if e.root == nil || source == SourceUnknown {
		return res
	}
	res.Result = e.touchTest(e.root, x, y, source, true, &res.Targets)
	return res
}

// touchTest tests n against (px, py) in n's parent space. enabled is false
// inside a disabled subtree: geometry still counts but no targets are
// collected.
func (e *Engine) touchTest(n *Node, px, py float64, src SourceType, enabled bool, out *[]HitTarget) HitTestResult {
	if !n.Visible || n.disposed {
		return OutOfRegion
	}
	inv, ok := n.LocalTransform().Invert()
	if !ok {
		return OutOfRegion
	}
	lx, ly := inv.Apply(px, py)
	enabled = enabled && n.Enabled
	selfHit := n.HitTestMode != HitTestNone && n.containsLocal(lx, ly, src)
	collect := selfHit && enabled

	if collect {
		e.compile(n)
		e.collect(n, PriorityHigh, src, out)
	}

	childResult := OutOfRegion
	if !n.Clip || n.inBounds(lx, ly) {
		kids := n.paintOrder()
		for i := len(kids) - 1; i >= 0; i-- {
			r := e.touchTest(kids[i], lx, ly, src, enabled, out)
			if r == OutOfRegion {
				continue
			}
			if r == StopBubbling {
				childResult = StopBubbling
				break
			}
			childResult = Bubbling
		}
	}

	if collect {
		if n.OnTouch != nil && src != SourceAxis {
			*out = append(*out, HitTarget{Node: n, Priority: PriorityNormal})
		}
		e.collect(n, PriorityNormal, src, out)
		e.collect(n, PriorityParallel, src, out)
	}

	childHit := childResult != OutOfRegion
	switch n.HitTestMode {
	case HitTestNone:
		return childResult
	case HitTestBlock:
		if selfHit || childHit {
			return StopBubbling
		}
	case HitTestTransparent:
		if selfHit || childHit {
			return Bubbling
		}
	case HitTestTransparentSelf:
		if childHit {
			return childResult
		}
		if selfHit {
			return SelfTransparent
		}
	default:
		if selfHit {
			return StopBubbling
		}
		return childResult
	}
	return OutOfRegion
}

// collect appends n's root for priority p. Axis streams only reach roots
// that have an axis-capable recognizer.
func (e *Engine) collect(n *Node, p GesturePriority, src SourceType, out *[]HitTarget) {
	r := e.rootOf(n, p)
	if r == nil {
		return
	}
	if src == SourceAxis && !r.acceptsAxis() {
		return
	}
	*out = append(*out, HitTarget{Node: n, Recognizer: r.Handle(), Priority: p})
}

// monopolize truncates the list after the last target of the first hit node
// that has Monopolize set, so lower-priority nodes never see the session.
func monopolize(targets []HitTarget) []HitTarget {
	var owner *Node
	last := -1
	for i, t := range targets {
		if owner == nil && t.Node.Monopolize {
			owner = t.Node
		}
		if owner != nil && t.Node == owner {
			last = i
		}
	}
	if owner == nil {
		return targets
	}
	return targets[:last+1]
}
