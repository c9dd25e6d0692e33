// Package types defines the values a formula evaluates to: plain numbers,
// lists of values, and distribution trees.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/lemonberrylabs/estimate/pkg/estimate"
)

// ValueType represents the type of a formula value.
type ValueType int

const (
	TypeNumber       ValueType = iota // float64
	TypeList                          // []Value
	TypeDistribution                  // *estimate.Node
)

// String returns the type name used in error messages.
func (t ValueType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeList:
		return "list"
	case TypeDistribution:
		return "distribution"
	default:
		return "unknown"
	}
}

// Value is a tagged union of the formula value types.
type Value struct {
	typ     ValueType
	number  float64
	listVal []Value
	node    *estimate.Node
}

// Zero is the number 0. It is also what failed evaluations return.
var Zero = Value{typ: TypeNumber}

// NewNumber creates a number value.
func NewNumber(v float64) Value {
	return Value{typ: TypeNumber, number: v}
}

// NewList creates a list value from a slice of values.
func NewList(v []Value) Value {
	return Value{typ: TypeList, listVal: v}
}

// NewDistribution creates a distribution value.
func NewDistribution(n *estimate.Node) Value {
	return Value{typ: TypeDistribution, node: n}
}

// Type returns the value's type.
func (v Value) Type() ValueType {
	return v.typ
}

// AsNumber returns the number. Panics if not a number.
func (v Value) AsNumber() float64 {
	if v.typ != TypeNumber {
		panic(fmt.Sprintf("AsNumber called on %s value", v.typ))
	}
	return v.number
}

// AsList returns the list. Panics if not a list.
func (v Value) AsList() []Value {
	if v.typ != TypeList {
		panic(fmt.Sprintf("AsList called on %s value", v.typ))
	}
	return v.listVal
}

// AsDistribution returns the tree. Panics if not a distribution.
func (v Value) AsDistribution() *estimate.Node {
	if v.typ != TypeDistribution {
		panic(fmt.Sprintf("AsDistribution called on %s value", v.typ))
	}
	return v.node
}

// AsNumbers returns the elements of a list of numbers.
func (v Value) AsNumbers() ([]float64, bool) {
	if v.typ != TypeList {
		return nil, false
	}
	out := make([]float64, len(v.listVal))
	for i, item := range v.listVal {
		if item.typ != TypeNumber {
			return nil, false
		}
		out[i] = item.number
	}
	return out, true
}

// ToNode lifts a number into a Constant leaf and returns distributions as
// they are. Lists cannot be lifted.
func (v Value) ToNode() (*estimate.Node, bool) {
	switch v.typ {
	case TypeNumber:
		return estimate.Constant(v.number), true
	case TypeDistribution:
		return v.node, true
	default:
		return nil, false
	}
}

// Clone creates a deep copy of the value. Distribution trees are cloned so
// the copy shares no nodes with the original.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeList:
		items := make([]Value, len(v.listVal))
		for i, item := range v.listVal {
			items[i] = item.Clone()
		}
		return NewList(items)
	case TypeDistribution:
		return NewDistribution(v.node.Clone())
	default:
		return v
	}
}

// Equal tests deep equality; distributions compare structurally.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNumber:
		return v.number == other.number
	case TypeList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case TypeDistribution:
		return v.node.Equal(other.node)
	}
	return false
}

// String returns a human-readable representation of the value.
func (v Value) String() string {
	switch v.typ {
	case TypeNumber:
		if v.number == math.Trunc(v.number) && !math.IsInf(v.number, 0) && math.Abs(v.number) < 1e15 {
			return fmt.Sprintf("%.0f", v.number)
		}
		return fmt.Sprintf("%g", v.number)
	case TypeList:
		parts := make([]string, len(v.listVal))
		for i, item := range v.listVal {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeDistribution:
		return v.node.String()
	}
	return "<unknown>"
}

// MarshalJSON renders numbers and lists as JSON and distributions as their
// formula string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeNumber:
		if math.IsNaN(v.number) || math.IsInf(v.number, 0) {
			return json.Marshal(fmt.Sprintf("%g", v.number))
		}
		return json.Marshal(v.number)
	case TypeList:
		items := make([]json.RawMessage, len(v.listVal))
		for i, item := range v.listVal {
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			items[i] = b
		}
		return json.Marshal(items)
	case TypeDistribution:
		return json.Marshal(v.node.String())
	}
	return nil, fmt.Errorf("cannot marshal unknown type %d", v.typ)
}
