// Package ast defines the parsed form of an estimate model document: an
// ordered list of named formulas and the names to report.
package ast

import "github.com/lemonberrylabs/estimate/pkg/expr"

// Model represents a complete parsed model.
type Model struct {
	// Name is an optional human-readable title.
	Name string

	// Samples is the number of draws per output. Zero means the caller's
	// default.
	Samples int

	// Credibility is the default interval credibility in percent for range
	// functions. Zero means the caller's default.
	Credibility float64

	// Estimates are evaluated in order; each may refer to earlier ones.
	Estimates []*Estimate

	// Outputs names the estimates to sample and summarize.
	Outputs []string
}

// Estimate is a single named formula.
type Estimate struct {
	// Name is the identifier later formulas use to refer to this estimate.
	Name string

	// Source is the formula text as written in the document.
	Source string

	// Expr is the parsed formula.
	Expr expr.Node

	// Line is the 1-based document line, or 0 if unknown.
	Line int
}

// Lookup returns the estimate with the given name.
func (m *Model) Lookup(name string) (*Estimate, bool) {
	for _, e := range m.Estimates {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// References returns the estimate names a formula refers to, in order of
// first appearance.
func References(node expr.Node) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(expr.Node)
	walk = func(n expr.Node) {
		switch n := n.(type) {
		case *expr.IdentNode:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *expr.BinaryNode:
			walk(n.Left)
			walk(n.Right)
		case *expr.UnaryNode:
			walk(n.Operand)
		case *expr.CallNode:
			for _, a := range n.Args {
				walk(a)
			}
		case *expr.ListNode:
			for _, e := range n.Elements {
				walk(e)
			}
		}
	}
	walk(node)
	return names
}
