package gesture

import "math"

// Affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mul returns p * c (c applied first).
func (p Affine) Mul(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Invert returns the inverse matrix and false if m is singular. A singular
// node transform collapses its subtree to nothing, so callers treat it as a miss.
func (m Affine) Invert() (Affine, bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity, false
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// LocalTransform returns the node's matrix from local space into its
// parent's space.
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func (n *Node) LocalTransform() Affine {
	sx, sy := n.ScaleX, n.ScaleY
	sin, cos := math.Sincos(n.Rotation)

	var tanX, tanY float64
	if n.SkewX != 0 {
		tanX = math.Tan(n.SkewX)
	}
	if n.SkewY != 0 {
		tanY = math.Tan(n.SkewY)
	}

	a, b := sx, tanY*sx
	c, d := tanX*sy, sy
	px, py := n.PivotX, n.PivotY
	preTx := -px*sx - tanX*py*sy
	preTy := -tanY*px*sx - py*sy

	return Affine{
		cos*a - sin*b,
		sin*a + cos*b,
		cos*c - sin*d,
		sin*c + cos*d,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// WorldTransform composes local transforms from the root down to n.
func (n *Node) WorldTransform() Affine {
	m := n.LocalTransform()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalTransform().Mul(m)
	}
	return m
}

// WorldToLocal converts a world-space point to this node's local space.
// A singular transform maps every point to NaN.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv, ok := n.WorldTransform().Invert()
	if !ok {
		return math.NaN(), math.NaN()
	}
	return inv.Apply(wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.WorldTransform().Apply(lx, ly)
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetRotation sets the node's rotation in radians.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
}

// SetPivot sets the node's PivotX and PivotY.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
}

// SetSize sets the node's layout size used for its default response region.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}
