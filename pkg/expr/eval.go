package expr

import (
	"fmt"

	"github.com/lemonberrylabs/estimate/pkg/estimate"
	"github.com/lemonberrylabs/estimate/pkg/types"
)

// Scope provides variable lookup and function resolution for formula evaluation.
type Scope interface {
	// GetVariable returns the value of an earlier estimate by name.
	GetVariable(name string) (types.Value, error)

	// CallFunction calls a named function with the given arguments.
	CallFunction(name string, args []types.Value) (types.Value, error)
}

// Evaluate evaluates a formula node within the given scope.
func Evaluate(node Node, scope Scope) (types.Value, error) {
	switch n := node.(type) {
	case *LiteralNode:
		return types.NewNumber(n.Value), nil
	case *IdentNode:
		return scope.GetVariable(n.Name)
	case *BinaryNode:
		return evalBinary(n, scope)
	case *UnaryNode:
		return evalUnary(n, scope)
	case *CallNode:
		return evalCall(n, scope)
	case *ListNode:
		return types.Zero, types.NewTypeError("list literals are only allowed as function arguments")
	default:
		return types.Zero, fmt.Errorf("unsupported expression node type: %T", node)
	}
}

var binaryOps = map[TokenType]estimate.Op{
	TokenPlus:  estimate.OpAdd,
	TokenMinus: estimate.OpSub,
	TokenStar:  estimate.OpMul,
	TokenSlash: estimate.OpDiv,
}

func evalBinary(n *BinaryNode, scope Scope) (types.Value, error) {
	op, ok := binaryOps[n.Op]
	if !ok {
		return types.Zero, fmt.Errorf("unsupported binary operator: %s", n.Op)
	}

	left, err := Evaluate(n.Left, scope)
	if err != nil {
		return types.Zero, err
	}
	right, err := Evaluate(n.Right, scope)
	if err != nil {
		return types.Zero, err
	}
	return Combine(op, left, right)
}

// Combine applies op to two values. Numbers combine arithmetically;
// anything involving a distribution goes through the estimate algebra.
// Dividing by a number 0 or a Constant(0) leaf is a ZeroDivisionError.
func Combine(op estimate.Op, left, right types.Value) (types.Value, error) {
	if left.Type() == types.TypeList || right.Type() == types.TypeList {
		return types.Zero, types.NewTypeError(
			fmt.Sprintf("unsupported operand types for %s: %s and %s", op, left.Type(), right.Type()))
	}

	switch {
	case left.Type() == types.TypeNumber && right.Type() == types.TypeNumber:
		if op == estimate.OpDiv && right.AsNumber() == 0 {
			return types.Zero, types.NewZeroDivisionError()
		}
		return types.NewNumber(op.Apply(left.AsNumber(), right.AsNumber())), nil

	case right.Type() == types.TypeNumber:
		if op == estimate.OpDiv && right.AsNumber() == 0 {
			return types.Zero, types.NewZeroDivisionError()
		}
		return types.NewDistribution(estimate.ApplyScalar(op, left.AsDistribution(), right.AsNumber())), nil

	case left.Type() == types.TypeNumber:
		if op == estimate.OpDiv && estimate.IsZeroDivisor(right.AsDistribution()) {
			return types.Zero, types.NewZeroDivisionError()
		}
		return types.NewDistribution(estimate.ApplyScalarLeft(op, left.AsNumber(), right.AsDistribution())), nil

	default:
		if op == estimate.OpDiv && estimate.IsZeroDivisor(right.AsDistribution()) {
			return types.Zero, types.NewZeroDivisionError()
		}
		return types.NewDistribution(estimate.Apply(op, left.AsDistribution(), right.AsDistribution())), nil
	}
}

func evalUnary(n *UnaryNode, scope Scope) (types.Value, error) {
	operand, err := Evaluate(n.Operand, scope)
	if err != nil {
		return types.Zero, err
	}

	if n.Op != TokenMinus {
		return types.Zero, fmt.Errorf("unsupported unary operator: %s", n.Op)
	}

	switch operand.Type() {
	case types.TypeNumber:
		return types.NewNumber(-operand.AsNumber()), nil
	case types.TypeDistribution:
		return types.NewDistribution(estimate.ScalarMul(-1, operand.AsDistribution())), nil
	default:
		return types.Zero, types.NewTypeError(fmt.Sprintf("unsupported operand type for unary -: %s", operand.Type()))
	}
}

func evalCall(n *CallNode, scope Scope) (types.Value, error) {
	args := make([]types.Value, len(n.Args))
	for i, arg := range n.Args {
		var (
			v   types.Value
			err error
		)
		if list, ok := arg.(*ListNode); ok {
			v, err = evalList(list, scope)
		} else {
			v, err = Evaluate(arg, scope)
		}
		if err != nil {
			return types.Zero, err
		}
		args[i] = v
	}
	return scope.CallFunction(n.Name, args)
}

func evalList(n *ListNode, scope Scope) (types.Value, error) {
	items := make([]types.Value, len(n.Elements))
	for i, elem := range n.Elements {
		v, err := Evaluate(elem, scope)
		if err != nil {
			return types.Zero, err
		}
		items[i] = v
	}
	return types.NewList(items), nil
}
