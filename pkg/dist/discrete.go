package dist

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Constant always yields Value.
type Constant struct {
	value float64
}

// NewConstant returns a point mass at value.
func NewConstant(value float64) Constant {
	return Constant{value: value}
}

func (c Constant) Value() float64  { return c.value }
func (c Constant) Mean() float64   { return c.value }
func (c Constant) Kind() Kind      { return KindConstant }
func (c Constant) Sample() float64 { return c.value }
func (c Constant) distribution()   {}

func (c Constant) BatchSample(n int) []float64 {
	return batch(n, c.Sample)
}

func (c Constant) Equal(other Distribution) bool {
	o, ok := other.(Constant)
	return ok && c == o
}

func (c Constant) String() string {
	return fmt.Sprintf("Constant(%s)", formatFloat(c.value))
}

// Poisson counts events at rate Lambda.
type Poisson struct {
	lambda float64
}

// NewPoisson returns a Poisson. Lambda must be positive.
func NewPoisson(lambda float64) (Poisson, error) {
	if !(lambda > 0) {
		return Poisson{}, newConstructionError("Poisson", "lambda must be positive, got %s", formatFloat(lambda))
	}
	return Poisson{lambda: lambda}, nil
}

func (p Poisson) Lambda() float64 { return p.lambda }
func (p Poisson) Mean() float64   { return p.lambda }
func (p Poisson) Kind() Kind      { return KindPoisson }
func (p Poisson) distribution()   {}

func (p Poisson) gonum() distuv.Poisson {
	return distuv.Poisson{Lambda: p.lambda}
}

func (p Poisson) Sample() float64 {
	return p.gonum().Rand()
}

func (p Poisson) BatchSample(n int) []float64 {
	return batch(n, p.gonum().Rand)
}

func (p Poisson) Equal(other Distribution) bool {
	o, ok := other.(Poisson)
	return ok && p == o
}

func (p Poisson) String() string {
	return fmt.Sprintf("Poisson(%s)", formatFloat(p.lambda))
}

// Discrete picks one of Values with probability given by the matching
// entry of Weights. Weights are expected to sum to 1 but this is not
// checked: with a total below 1 the last value absorbs the missing mass,
// with a total above 1 trailing values become unreachable.
type Discrete struct {
	values     []float64
	weights    []float64
	cumulative []float64
}

// NewDiscrete returns a Discrete over values. Both slices are copied.
func NewDiscrete(values, weights []float64) (Discrete, error) {
	if len(values) != len(weights) {
		return Discrete{}, newConstructionError("Discrete",
			"values and weights differ in length (%d != %d)", len(values), len(weights))
	}
	if len(values) == 0 {
		return Discrete{}, newConstructionError("Discrete", "at least one value is required")
	}
	d := Discrete{
		values:     append([]float64(nil), values...),
		weights:    append([]float64(nil), weights...),
		cumulative: make([]float64, len(weights)),
	}
	floats.CumSum(d.cumulative, d.weights)
	return d, nil
}

// Values returns a copy of the outcomes.
func (d Discrete) Values() []float64 { return append([]float64(nil), d.values...) }

// Weights returns a copy of the weights.
func (d Discrete) Weights() []float64 { return append([]float64(nil), d.weights...) }

func (d Discrete) Kind() Kind    { return KindDiscrete }
func (d Discrete) distribution() {}

// Mean is the weighted sum of the values.
func (d Discrete) Mean() float64 {
	return floats.Dot(d.values, d.weights)
}

// Sample returns the first value whose cumulative weight exceeds a uniform
// draw in [0, 1), or the last value when rounding leaves none.
func (d Discrete) Sample() float64 {
	r := unitUniform.Rand()
	for i, c := range d.cumulative {
		if c > r {
			return d.values[i]
		}
	}
	return d.values[len(d.values)-1]
}

func (d Discrete) BatchSample(n int) []float64 {
	return batch(n, d.Sample)
}

func (d Discrete) Equal(other Distribution) bool {
	o, ok := other.(Discrete)
	return ok && floats.Equal(d.values, o.values) && floats.Equal(d.weights, o.weights)
}

func (d Discrete) String() string {
	return fmt.Sprintf("Discrete([%s], [%s])", joinFloats(d.values), joinFloats(d.weights))
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = formatFloat(f)
	}
	return strings.Join(parts, ", ")
}
