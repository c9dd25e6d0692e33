package estimate

import "github.com/lemonberrylabs/estimate/pkg/dist"

// Normal returns a Normal leaf; a negative stdDev is replaced by its
// absolute value.
func Normal(mean, stdDev float64) *Node {
	return Leaf(dist.NewNormal(mean, stdDev))
}

// NormalFromMean returns a Normal leaf from its mean and standard deviation.
func NormalFromMean(mean, stdDev float64) *Node {
	return Leaf(dist.NormalFromMean(mean, stdDev))
}

// NormalFromRange returns the Normal leaf whose central credibility-percent
// interval is [x, y].
func NormalFromRange(x, y, credibility float64) (*Node, error) {
	return leaf(dist.NormalFromRange(x, y, credibility))
}

// LogNormal returns a LogNormal leaf from log-space parameters.
func LogNormal(location, scale float64) (*Node, error) {
	return leaf(dist.NewLogNormal(location, scale))
}

// LogNormalFromMean returns a LogNormal leaf matching an arithmetic mean and
// standard deviation.
func LogNormalFromMean(mean, stdDev float64) (*Node, error) {
	return leaf(dist.LogNormalFromMean(mean, stdDev))
}

// LogNormalFromRange returns the LogNormal leaf whose central
// credibility-percent interval is [x, y].
func LogNormalFromRange(x, y, credibility float64) (*Node, error) {
	return leaf(dist.LogNormalFromRange(x, y, credibility))
}

func Triangular(min, mode, max float64) (*Node, error) {
	return leaf(dist.NewTriangular(min, mode, max))
}

func Uniform(min, max float64) (*Node, error) {
	return leaf(dist.NewUniform(min, max))
}

func Poisson(lambda float64) (*Node, error) {
	return leaf(dist.NewPoisson(lambda))
}

func Constant(value float64) *Node {
	return Leaf(dist.NewConstant(value))
}

func Discrete(values, weights []float64) (*Node, error) {
	return leaf(dist.NewDiscrete(values, weights))
}

// To returns a distribution spanning [x, y] at the given credibility.
// Quantities with a positive lower bound are modeled log-normally, anything
// else normally.
func To(x, y, credibility float64) (*Node, error) {
	if x > 0 {
		return LogNormalFromRange(x, y, credibility)
	}
	return NormalFromRange(x, y, credibility)
}

func leaf(d dist.Distribution, err error) (*Node, error) {
	if err != nil {
		return nil, err
	}
	return Leaf(d), nil
}
