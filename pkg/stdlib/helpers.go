package stdlib

import (
	"fmt"

	"github.com/lemonberrylabs/estimate/pkg/estimate"
	"github.com/lemonberrylabs/estimate/pkg/types"
)

// requireArgs checks that the number of args is in range.
func requireArgs(name string, args []types.Value, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return types.NewTypeError(fmt.Sprintf("%s expects %d argument(s), got %d", name, min, len(args)))
		}
		return types.NewTypeError(fmt.Sprintf("%s expects %d-%d arguments, got %d", name, min, max, len(args)))
	}
	return nil
}

// numberArgs extracts every argument as a number.
func numberArgs(name string, args []types.Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		if a.Type() != types.TypeNumber {
			return nil, types.NewTypeError(
				fmt.Sprintf("%s: argument %d must be a number, got %s", name, i+1, a.Type()))
		}
		out[i] = a.AsNumber()
	}
	return out, nil
}

// listArg extracts a list of numbers.
func listArg(name string, pos int, v types.Value) ([]float64, error) {
	nums, ok := v.AsNumbers()
	if !ok {
		return nil, types.NewTypeError(
			fmt.Sprintf("%s: argument %d must be a list of numbers, got %s", name, pos, v.Type()))
	}
	return nums, nil
}

// credibilityArg returns the optional third argument of a range function,
// falling back to the registry default.
func (r *Registry) credibilityArg(nums []float64) float64 {
	if len(nums) == 3 {
		return nums[2]
	}
	return r.credibility
}

// distribution converts a constructor result into a value.
func distribution(name string, n *estimate.Node, err error) (types.Value, error) {
	if err != nil {
		return types.Zero, types.NewConstructionError(name, err)
	}
	return types.NewDistribution(n), nil
}
