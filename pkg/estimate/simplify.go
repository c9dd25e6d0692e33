package estimate

import (
	"math"

	"github.com/lemonberrylabs/estimate/pkg/dist"
)

// Add returns a + b.
func Add(a, b *Node) *Node { return Apply(OpAdd, a, b) }

// Sub returns a - b.
func Sub(a, b *Node) *Node { return Apply(OpSub, a, b) }

// Mul returns a * b.
func Mul(a, b *Node) *Node { return Apply(OpMul, a, b) }

// Div returns a / b. Dividing by a Constant(0) leaf yields Constant(0).
func Div(a, b *Node) *Node { return Apply(OpDiv, a, b) }

// AddScalar returns n + s.
func AddScalar(n *Node, s float64) *Node { return ApplyScalar(OpAdd, n, s) }

// SubScalar returns n - s.
func SubScalar(n *Node, s float64) *Node { return ApplyScalar(OpSub, n, s) }

// MulScalar returns n * s. Multiplying by 0 yields Constant(0).
func MulScalar(n *Node, s float64) *Node { return ApplyScalar(OpMul, n, s) }

// DivScalar returns n / s. Dividing by 0 yields Constant(0).
func DivScalar(n *Node, s float64) *Node { return ApplyScalar(OpDiv, n, s) }

// ScalarAdd returns s + n.
func ScalarAdd(s float64, n *Node) *Node { return ApplyScalarLeft(OpAdd, s, n) }

// ScalarSub returns s - n.
func ScalarSub(s float64, n *Node) *Node { return ApplyScalarLeft(OpSub, s, n) }

// ScalarMul returns s * n.
func ScalarMul(s float64, n *Node) *Node { return ApplyScalarLeft(OpMul, s, n) }

// ScalarDiv returns s / n. A zero numerator, or a Constant(0) denominator,
// yields Constant(0).
func ScalarDiv(s float64, n *Node) *Node { return ApplyScalarLeft(OpDiv, s, n) }

// IsZeroDivisor reports whether dividing by n would hit the zero-divisor
// rule, i.e. whether n is a Constant(0) leaf.
func IsZeroDivisor(n *Node) bool {
	c, ok := n.dist.(dist.Constant)
	return ok && c.Value() == 0
}

// Apply combines two nodes, folding into a closed-form leaf when a rule
// exists and wrapping both operands in an operation node otherwise.
func Apply(op Op, a, b *Node) *Node {
	if folded, ok := fold(op, a, b); ok {
		return folded
	}
	return operation(op, a, b)
}

// ApplyScalar combines a node with a scalar right operand. When no rule
// applies the scalar becomes a Constant leaf. A LogNormal multiplied or
// divided by a negative scalar is wrapped, not folded through ln|s|: the
// product is negative and no LogNormal describes it.
func ApplyScalar(op Op, n *Node, s float64) *Node {
	if folded, ok := foldScalar(op, n, s); ok {
		return folded
	}
	return operation(op, n, Constant(s))
}

// ApplyScalarLeft combines a scalar left operand with a node. As with
// ApplyScalar, a negative scalar divided by a LogNormal is wrapped.
func ApplyScalarLeft(op Op, s float64, n *Node) *Node {
	if folded, ok := foldScalarLeft(op, s, n); ok {
		return folded
	}
	return operation(op, Constant(s), n)
}

// fold implements the node-node rules: Normal±Normal, LogNormal×÷LogNormal
// and Constant⊕Constant.
func fold(op Op, a, b *Node) (*Node, bool) {
	if !a.IsLeaf() || !b.IsLeaf() {
		return nil, false
	}

	switch l := a.dist.(type) {
	case dist.Normal:
		r, ok := b.dist.(dist.Normal)
		if !ok {
			return nil, false
		}
		sd := math.Sqrt(l.Variance() + r.Variance())
		switch op {
		case OpAdd:
			return Normal(l.Mean()+r.Mean(), sd), true
		case OpSub:
			return Normal(l.Mean()-r.Mean(), sd), true
		}

	case dist.LogNormal:
		r, ok := b.dist.(dist.LogNormal)
		if !ok {
			return nil, false
		}
		scale := math.Sqrt(dist.Square(l.Scale()) + dist.Square(r.Scale()))
		switch op {
		case OpMul:
			return logNormalLeaf(l.Location()+r.Location(), scale)
		case OpDiv:
			return logNormalLeaf(l.Location()-r.Location(), scale)
		}

	case dist.Constant:
		r, ok := b.dist.(dist.Constant)
		if !ok {
			return nil, false
		}
		return Constant(constantOp(op, l.Value(), r.Value())), true
	}

	return nil, false
}

// foldScalar implements the node-scalar rules.
func foldScalar(op Op, n *Node, s float64) (*Node, bool) {
	if (op == OpMul || op == OpDiv) && s == 0 {
		return Constant(0), true
	}
	if !n.IsLeaf() {
		return nil, false
	}

	switch d := n.dist.(type) {
	case dist.Constant:
		return Constant(op.Apply(d.Value(), s)), true

	case dist.Normal:
		switch op {
		case OpAdd, OpSub:
			return Normal(op.Apply(d.Mean(), s), d.StdDev()), true
		case OpMul, OpDiv:
			return Normal(op.Apply(d.Mean(), s), op.Apply(d.StdDev(), math.Abs(s))), true
		}

	case dist.LogNormal:
		// A non-positive factor moves mass off the positive axis, which no
		// LogNormal can describe.
		if !(s > 0) {
			return nil, false
		}
		switch op {
		case OpMul:
			return logNormalLeaf(d.Location()+math.Log(s), d.Scale())
		case OpDiv:
			return logNormalLeaf(d.Location()-math.Log(s), d.Scale())
		}
	}

	return nil, false
}

// foldScalarLeft implements the scalar-node rules.
func foldScalarLeft(op Op, s float64, n *Node) (*Node, bool) {
	switch op {
	case OpAdd, OpMul:
		return foldScalar(op, n, s)
	case OpDiv:
		if s == 0 || IsZeroDivisor(n) {
			return Constant(0), true
		}
	}
	if !n.IsLeaf() {
		return nil, false
	}

	switch d := n.dist.(type) {
	case dist.Constant:
		return Constant(op.Apply(s, d.Value())), true

	case dist.Normal:
		if op == OpSub {
			return Normal(s-d.Mean(), d.StdDev()), true
		}

	case dist.LogNormal:
		if op == OpDiv && s > 0 {
			return logNormalLeaf(math.Log(s)-d.Location(), d.Scale())
		}
	}

	return nil, false
}

// constantOp applies op to two constants. A zero divisor yields 0.
func constantOp(op Op, a, b float64) float64 {
	if op == OpDiv && b == 0 {
		return 0
	}
	return op.Apply(a, b)
}

func logNormalLeaf(location, scale float64) (*Node, bool) {
	d, err := dist.NewLogNormal(location, scale)
	if err != nil {
		return nil, false
	}
	return Leaf(d), true
}
