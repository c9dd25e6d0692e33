// Package estimate builds random variables out of primitive distributions.
//
// A *Node is either a leaf holding a distribution from package dist or an
// operation combining two child nodes with +, -, * or /. The combinators in
// this package (Add, MulScalar, ScalarDiv, ...) fold the combination into a
// single closed-form leaf whenever an analytic rule exists and otherwise
// build an operation node around the unmodified operands. Sample and NSample
// evaluate the resulting tree by drawing every leaf independently.
//
// Nodes are immutable. Combinators adopt their operands as children rather
// than copying them; since nothing is memoized, a node reachable twice is
// still sampled independently each time. Clone produces a strict tree.
package estimate

import (
	"fmt"

	"github.com/lemonberrylabs/estimate/pkg/dist"
)

// Kind is the tag of a Node.
type Kind int

const (
	KindContinuous Kind = iota // leaf holding a continuous distribution
	KindDiscrete               // leaf holding a discrete distribution
	KindOperation              // binary operation over two sub-trees
)

// String returns a debug-friendly kind name.
func (k Kind) String() string {
	switch k {
	case KindContinuous:
		return "continuous"
	case KindDiscrete:
		return "discrete"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// Op is a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the infix symbol of the operator.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Apply combines two outcomes. Division follows IEEE-754.
func (o Op) Apply(a, b float64) float64 {
	switch o {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	default:
		panic(fmt.Sprintf("estimate: unknown operator %d", int(o)))
	}
}

func (o Op) precedence() int {
	if o == OpMul || o == OpDiv {
		return 2
	}
	return 1
}

// Node is a random variable: a distribution leaf or an operation.
type Node struct {
	kind  Kind
	dist  dist.Distribution
	op    Op
	left  *Node
	right *Node
}

// Leaf wraps a distribution in a leaf node.
func Leaf(d dist.Distribution) *Node {
	if d == nil {
		panic("estimate: Leaf called with nil distribution")
	}
	kind := KindDiscrete
	if d.Kind().Continuous() {
		kind = KindContinuous
	}
	return &Node{kind: kind, dist: d}
}

func operation(op Op, left, right *Node) *Node {
	return &Node{kind: KindOperation, op: op, left: left, right: right}
}

// Kind returns the node's tag.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether the node holds a distribution.
func (n *Node) IsLeaf() bool { return n.kind != KindOperation }

// Distribution returns the leaf's distribution, or nil for an operation.
func (n *Node) Distribution() dist.Distribution { return n.dist }

// Op returns the operator of an operation node. It panics on leaves.
func (n *Node) Op() Op {
	if n.kind != KindOperation {
		panic(fmt.Sprintf("Op called on %s node", n.kind))
	}
	return n.op
}

// Left returns the left child of an operation node, or nil for a leaf.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child of an operation node, or nil for a leaf.
func (n *Node) Right() *Node { return n.right }

// Clone returns a deep copy sharing no nodes with n. Distributions are
// immutable values and are shared.
func (n *Node) Clone() *Node {
	if n.IsLeaf() {
		return &Node{kind: n.kind, dist: n.dist}
	}
	return operation(n.op, n.left.Clone(), n.right.Clone())
}

// Equal tests structural equality: same shape, operators and distribution
// parameters.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	if n.IsLeaf() {
		return n.dist.Equal(other.dist)
	}
	return n.op == other.op && n.left.Equal(other.left) && n.right.Equal(other.right)
}

// Size counts the nodes of the tree.
func (n *Node) Size() int {
	if n.IsLeaf() {
		return 1
	}
	return 1 + n.left.Size() + n.right.Size()
}

// Depth is the number of nodes on the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 1
	}
	return 1 + max(n.left.Depth(), n.right.Depth())
}

// String renders the tree as an infix formula. The rendering is diagnostic
// and is not meant to be parsed back.
func (n *Node) String() string {
	if n.IsLeaf() {
		return n.dist.String()
	}
	return n.childString(n.left, false) + " " + n.op.String() + " " + n.childString(n.right, true)
}

func (n *Node) childString(child *Node, right bool) string {
	s := child.String()
	if child.IsLeaf() {
		return s
	}
	p, cp := n.op.precedence(), child.op.precedence()
	if cp < p || (right && cp == p && (n.op == OpSub || n.op == OpDiv)) {
		return "(" + s + ")"
	}
	return s
}
