package stdlib

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lemonberrylabs/estimate/pkg/types"
)

// registerMath registers numeric helper functions.
func (r *Registry) registerMath() {
	r.Register("abs", mathAbs)
	r.Register("floor", mathFloor)
	r.Register("max", mathMax)
	r.Register("min", mathMin)
}

func mathAbs(args []types.Value) (types.Value, error) {
	if err := requireArgs("abs", args, 1, 1); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("abs", args)
	if err != nil {
		return types.Zero, err
	}
	return types.NewNumber(math.Abs(nums[0])), nil
}

func mathFloor(args []types.Value) (types.Value, error) {
	if err := requireArgs("floor", args, 1, 1); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("floor", args)
	if err != nil {
		return types.Zero, err
	}
	return types.NewNumber(math.Floor(nums[0])), nil
}

// variadic accepts either one list of numbers or one or more numbers.
func variadic(name string, args []types.Value) ([]float64, error) {
	if len(args) == 0 {
		return nil, types.NewTypeError(name + " expects at least 1 argument, got 0")
	}
	if len(args) == 1 && args[0].Type() == types.TypeList {
		nums, err := listArg(name, 1, args[0])
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, types.NewValueError(name + " of an empty list")
		}
		return nums, nil
	}
	return numberArgs(name, args)
}

func mathMax(args []types.Value) (types.Value, error) {
	nums, err := variadic("max", args)
	if err != nil {
		return types.Zero, err
	}
	return types.NewNumber(floats.Max(nums)), nil
}

func mathMin(args []types.Value) (types.Value, error) {
	nums, err := variadic("min", args)
	if err != nil {
		return types.Zero, err
	}
	return types.NewNumber(floats.Min(nums)), nil
}
