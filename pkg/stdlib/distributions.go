package stdlib

import (
	"fmt"

	"github.com/lemonberrylabs/estimate/pkg/estimate"
	"github.com/lemonberrylabs/estimate/pkg/types"
)

// registerDistributions registers the distribution constructors.
func (r *Registry) registerDistributions() {
	r.Register("to", r.rangeFunc("to", estimate.To))
	r.Register("normal_range", r.rangeFunc("normal_range", estimate.NormalFromRange))
	r.Register("lognormal_range", r.rangeFunc("lognormal_range", estimate.LogNormalFromRange))
	r.Register("normal", distNormal)
	r.Register("lognormal", distLogNormal)
	r.Register("lognormal_mean", distLogNormalMean)
	r.Register("triangular", distTriangular)
	r.Register("uniform", distUniform)
	r.Register("poisson", distPoisson)
	r.Register("constant", distConstant)
	r.Register("discrete", distDiscrete)
	r.Register("mean", distMean)
}

type rangeConstructor func(x, y, credibility float64) (*estimate.Node, error)

// rangeFunc wraps a constructor taking (x, y, credibility) where the
// credibility argument is optional.
func (r *Registry) rangeFunc(name string, build rangeConstructor) StdlibFunc {
	return func(args []types.Value) (types.Value, error) {
		if err := requireArgs(name, args, 2, 3); err != nil {
			return types.Zero, err
		}
		nums, err := numberArgs(name, args)
		if err != nil {
			return types.Zero, err
		}
		n, err := build(nums[0], nums[1], r.credibilityArg(nums))
		return distribution(name, n, err)
	}
}

func distNormal(args []types.Value) (types.Value, error) {
	if err := requireArgs("normal", args, 2, 2); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("normal", args)
	if err != nil {
		return types.Zero, err
	}
	return types.NewDistribution(estimate.Normal(nums[0], nums[1])), nil
}

func distLogNormal(args []types.Value) (types.Value, error) {
	if err := requireArgs("lognormal", args, 2, 2); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("lognormal", args)
	if err != nil {
		return types.Zero, err
	}
	n, err := estimate.LogNormal(nums[0], nums[1])
	return distribution("lognormal", n, err)
}

func distLogNormalMean(args []types.Value) (types.Value, error) {
	if err := requireArgs("lognormal_mean", args, 2, 2); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("lognormal_mean", args)
	if err != nil {
		return types.Zero, err
	}
	n, err := estimate.LogNormalFromMean(nums[0], nums[1])
	return distribution("lognormal_mean", n, err)
}

func distTriangular(args []types.Value) (types.Value, error) {
	if err := requireArgs("triangular", args, 3, 3); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("triangular", args)
	if err != nil {
		return types.Zero, err
	}
	n, err := estimate.Triangular(nums[0], nums[1], nums[2])
	return distribution("triangular", n, err)
}

func distUniform(args []types.Value) (types.Value, error) {
	if err := requireArgs("uniform", args, 2, 2); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("uniform", args)
	if err != nil {
		return types.Zero, err
	}
	n, err := estimate.Uniform(nums[0], nums[1])
	return distribution("uniform", n, err)
}

func distPoisson(args []types.Value) (types.Value, error) {
	if err := requireArgs("poisson", args, 1, 1); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("poisson", args)
	if err != nil {
		return types.Zero, err
	}
	n, err := estimate.Poisson(nums[0])
	return distribution("poisson", n, err)
}

func distConstant(args []types.Value) (types.Value, error) {
	if err := requireArgs("constant", args, 1, 1); err != nil {
		return types.Zero, err
	}
	nums, err := numberArgs("constant", args)
	if err != nil {
		return types.Zero, err
	}
	return types.NewDistribution(estimate.Constant(nums[0])), nil
}

func distDiscrete(args []types.Value) (types.Value, error) {
	if err := requireArgs("discrete", args, 2, 2); err != nil {
		return types.Zero, err
	}
	values, err := listArg("discrete", 1, args[0])
	if err != nil {
		return types.Zero, err
	}
	weights, err := listArg("discrete", 2, args[1])
	if err != nil {
		return types.Zero, err
	}
	n, err := estimate.Discrete(values, weights)
	return distribution("discrete", n, err)
}

// distMean returns the closed-form mean of a single distribution. Numbers
// pass through unchanged.
func distMean(args []types.Value) (types.Value, error) {
	if err := requireArgs("mean", args, 1, 1); err != nil {
		return types.Zero, err
	}
	switch v := args[0]; v.Type() {
	case types.TypeNumber:
		return v, nil
	case types.TypeDistribution:
		n := v.AsDistribution()
		if !n.IsLeaf() {
			return types.Zero, types.NewValueError(
				fmt.Sprintf("mean: no closed form for %s; sample it instead", n))
		}
		return types.NewNumber(n.Distribution().Mean()), nil
	default:
		return types.Zero, types.NewTypeError(fmt.Sprintf("mean: unsupported argument type %s", v.Type()))
	}
}
