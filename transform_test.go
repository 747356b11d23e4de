package gesture

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- LocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewNode("test")
	assertMatrix(t, "identity", n.LocalTransform(), Identity)
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewNode("test")
	n.SetPosition(10, 20)
	assertMatrix(t, "translation", n.LocalTransform(), Affine{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewNode("test")
	n.SetScale(2, 3)
	assertMatrix(t, "scale", n.LocalTransform(), Affine{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewNode("test")
	n.SetRotation(math.Pi / 2)
	assertMatrix(t, "rot90", n.LocalTransform(), Affine{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewNode("test")
	n.SetPosition(100, 50)
	n.SetPivot(10, 20)
	n.SetScale(2, 2)
	// The pivot lands on (X, Y).
	assertMatrix(t, "pivot", n.LocalTransform(), Affine{2, 0, 0, 2, 80, 10})
	wx, wy := n.LocalToWorld(10, 20)
	assertNear(t, "pivot x", wx, 100)
	assertNear(t, "pivot y", wy, 50)
}

func TestLocalTransformSkew(t *testing.T) {
	n := NewNode("test")
	n.SkewX = math.Pi / 4
	m := n.LocalTransform()
	x, y := m.Apply(0, 10)
	assertNear(t, "skew x", x, 10)
	assertNear(t, "skew y", y, 10)
}

// --- Composition ---

func TestWorldTransformComposes(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(100, 0)
	parent.SetScale(2, 2)
	child := NewNode("child")
	child.SetPosition(10, 5)
	parent.AddChild(child)

	assertMatrix(t, "world", child.WorldTransform(), Affine{2, 0, 0, 2, 120, 10})
	x, y := child.LocalToWorld(1, 1)
	assertNear(t, "x", x, 122)
	assertNear(t, "y", y, 12)
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(40, -20)
	parent.SetRotation(0.7)
	child := NewNode("child")
	child.SetPosition(5, 9)
	child.SetScale(1.5, 0.5)
	child.SetPivot(3, 4)
	parent.AddChild(child)

	wx, wy := child.LocalToWorld(12, -7)
	lx, ly := child.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 12)
	assertNear(t, "ly", ly, -7)
}

func TestWorldToLocalSingular(t *testing.T) {
	n := NewNode("flat")
	n.SetScale(0, 1)
	lx, ly := n.WorldToLocal(1, 1)
	if !math.IsNaN(lx) || !math.IsNaN(ly) {
		t.Errorf("WorldToLocal on a singular node = (%v, %v), want NaN", lx, ly)
	}
}

func TestAffineInvert(t *testing.T) {
	m := Affine{2, 1, -1, 3, 5, 7}
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported a singular matrix")
	}
	assertMatrix(t, "m * inv", m.Mul(inv), Identity)

	if _, ok := (Affine{1, 2, 2, 4, 0, 0}).Invert(); ok {
		t.Error("singular matrix inverted")
	}
}
