package gesture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("n")
	if !n.Visible || !n.Enabled {
		t.Error("new node should be visible and enabled")
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.ID == 0 || NewNode("m").ID == n.ID {
		t.Error("node IDs should be unique and non-zero")
	}
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	if c.Parent != b {
		t.Error("child not moved to its new parent")
	}
	if a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Errorf("children: a=%d b=%d, want 0 1", a.NumChildren(), b.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewNode("a").AddChild(nil) }},
		{"self", func() { a := NewNode("a"); a.AddChild(a) }},
		{"cycle", func() {
			a, b := NewNode("a"), NewNode("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"remove foreign child", func() { NewNode("a").RemoveChild(NewNode("b")) }},
		{"nil gesture", func() { NewNode("a").AddGesture(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveFromParent(t *testing.T) {
	p, a, b := NewNode("p"), NewNode("a"), NewNode("b")
	p.AddChild(a)
	p.AddChild(b)
	a.RemoveFromParent()
	a.RemoveFromParent()
	if a.Parent != nil {
		t.Error("parent not cleared")
	}
	if diff := cmp.Diff([]string{"b"}, names(p.Children())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestPaintOrderFollowsZIndex(t *testing.T) {
	p := NewNode("p")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(p.paintOrder())); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}

	a.SetZIndex(2)
	c.SetZIndex(-1)
	if diff := cmp.Diff([]string{"c", "b", "a"}, names(p.paintOrder())); diff != "" {
		t.Errorf("z order mismatch (-want +got):\n%s", diff)
	}
	// Children keeps insertion order.
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(p.Children())); diff != "" {
		t.Errorf("Children mismatch (-want +got):\n%s", diff)
	}
}

func TestDisposeClearsSubtree(t *testing.T) {
	p, c, g := NewNode("p"), NewNode("c"), NewNode("g")
	root := NewNode("root")
	root.AddChild(p)
	p.AddChild(c)
	c.AddChild(g)
	p.AddGesture(TapGesture{})
	p.OnTouch = func(*TouchEventInfo) {}

	p.Dispose()
	if root.NumChildren() != 0 {
		t.Error("disposed node still attached")
	}
	for _, n := range []*Node{p, c, g} {
		if !n.IsDisposed() || n.ID != 0 || n.Parent != nil {
			t.Errorf("%s not fully disposed", n.Name)
		}
	}
	if p.NumGestures() != 0 || p.OnTouch != nil {
		t.Error("bindings survived Dispose")
	}
	p.Dispose()
}

func TestGestureBindings(t *testing.T) {
	n := NewNode("n")
	n.AddGesture(TapGesture{})
	n.AddGestureWithPriority(PanGesture{}, PriorityHigh)
	if n.NumGestures() != 2 || !n.hub.dirty {
		t.Fatalf("NumGestures = %d, dirty = %v", n.NumGestures(), n.hub.dirty)
	}
	n.ClearGestures()
	if n.NumGestures() != 0 {
		t.Errorf("NumGestures = %d after ClearGestures", n.NumGestures())
	}
}

func TestResponseRegionList(t *testing.T) {
	n := NewBox("n", 0, 0, 10, 10)
	if n.ResponseRegionList(SourceTouch) != nil {
		t.Error("default regions should be nil")
	}
	touch := []HitShape{HitCircle{CenterX: 5, CenterY: 5, Radius: 5}}
	n.ResponseRegions = touch
	if got := n.ResponseRegionList(SourceMouse); len(got) != 1 {
		t.Error("mouse should fall back to touch regions")
	}
	n.MouseResponseRegions = []HitShape{HitRect{Width: 40, Height: 40}}
	if _, ok := n.ResponseRegionList(SourceAxis)[0].(HitRect); !ok {
		t.Error("axis should use mouse regions")
	}
	if _, ok := n.ResponseRegionList(SourcePen)[0].(HitCircle); !ok {
		t.Error("pen should use touch regions")
	}
}

func TestContainsLocal(t *testing.T) {
	n := NewBox("n", 0, 0, 10, 10)
	if !n.containsLocal(10, 10, SourceTouch) || n.containsLocal(11, 5, SourceTouch) {
		t.Error("bounds test wrong")
	}
	empty := NewNode("empty")
	if empty.containsLocal(0, 0, SourceTouch) {
		t.Error("zero-size node without regions should never be hit")
	}
	empty.ResponseRegions = []HitShape{HitRect{X: -5, Y: -5, Width: 10, Height: 10}}
	if !empty.containsLocal(-3, 2, SourceTouch) {
		t.Error("region outside bounds should still hit")
	}
}
