package dist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is a Gaussian distribution. StdDev is never negative.
type Normal struct {
	mean   float64
	stdDev float64
}

// NewNormal returns a Normal. A negative stdDev is replaced by its absolute
// value; construction never fails.
func NewNormal(mean, stdDev float64) Normal {
	return Normal{mean: mean, stdDev: math.Abs(stdDev)}
}

func (n Normal) StdDev() float64   { return n.stdDev }
func (n Normal) Variance() float64 { return Square(n.stdDev) }
func (n Normal) Mean() float64     { return n.mean }
func (n Normal) Kind() Kind        { return KindNormal }
func (n Normal) distribution()     {}

func (n Normal) gonum() distuv.Normal {
	return distuv.Normal{Mu: n.mean, Sigma: n.stdDev}
}

func (n Normal) Sample() float64 {
	return n.gonum().Rand()
}

func (n Normal) BatchSample(size int) []float64 {
	return batch(size, n.gonum().Rand)
}

func (n Normal) Equal(other Distribution) bool {
	o, ok := other.(Normal)
	return ok && n == o
}

func (n Normal) String() string {
	return fmt.Sprintf("Normal(%s, %s)", formatFloat(n.mean), formatFloat(n.stdDev))
}

// LogNormal is parameterized in log space: the logarithm of an outcome is
// Normal(Location, Scale).
type LogNormal struct {
	location float64
	scale    float64
}

// NewLogNormal returns a LogNormal. Scale must be positive.
func NewLogNormal(location, scale float64) (LogNormal, error) {
	if !(scale > 0) {
		return LogNormal{}, newConstructionError("LogNormal", "scale must be positive, got %s", formatFloat(scale))
	}
	if math.IsNaN(location) {
		return LogNormal{}, newConstructionError("LogNormal", "location is NaN")
	}
	return LogNormal{location: location, scale: scale}, nil
}

func (l LogNormal) Location() float64 { return l.location }
func (l LogNormal) Scale() float64    { return l.scale }
func (l LogNormal) Kind() Kind        { return KindLogNormal }
func (l LogNormal) distribution()     {}

func (l LogNormal) gonum() distuv.LogNormal {
	return distuv.LogNormal{Mu: l.location, Sigma: l.scale}
}

// Mean is exp(location + scale²/2).
func (l LogNormal) Mean() float64 {
	return l.gonum().Mean()
}

// Median is exp(location).
func (l LogNormal) Median() float64 {
	return l.gonum().Median()
}

func (l LogNormal) Sample() float64 {
	return l.gonum().Rand()
}

func (l LogNormal) BatchSample(n int) []float64 {
	return batch(n, l.gonum().Rand)
}

func (l LogNormal) Equal(other Distribution) bool {
	o, ok := other.(LogNormal)
	return ok && l == o
}

func (l LogNormal) String() string {
	return fmt.Sprintf("LogNormal(%s, %s)", formatFloat(l.location), formatFloat(l.scale))
}

// Triangular has a piecewise-linear density on [Min, Max] peaking at Mode.
type Triangular struct {
	min  float64
	mode float64
	max  float64
}

// NewTriangular returns a Triangular. Requires min <= mode <= max.
func NewTriangular(min, mode, max float64) (Triangular, error) {
	if !(min <= mode && mode <= max) {
		return Triangular{}, newConstructionError("Triangular",
			"requires min <= mode <= max, got min=%s mode=%s max=%s", formatFloat(min), formatFloat(mode), formatFloat(max))
	}
	return Triangular{min: min, mode: mode, max: max}, nil
}

func (t Triangular) Min() float64  { return t.min }
func (t Triangular) Mode() float64 { return t.mode }
func (t Triangular) Max() float64  { return t.max }
func (t Triangular) Kind() Kind    { return KindTriangular }
func (t Triangular) distribution() {}

func (t Triangular) Mean() float64 {
	return (t.min + t.mode + t.max) / 3
}

// sampler returns a draw function. A zero-width triangle is a point mass,
// which distuv refuses to build.
func (t Triangular) sampler() func() float64 {
	if t.min == t.max {
		v := t.min
		return func() float64 { return v }
	}
	return distuv.NewTriangle(t.min, t.max, t.mode, nil).Rand
}

func (t Triangular) Sample() float64 {
	return t.sampler()()
}

func (t Triangular) BatchSample(n int) []float64 {
	return batch(n, t.sampler())
}

func (t Triangular) Equal(other Distribution) bool {
	o, ok := other.(Triangular)
	return ok && t == o
}

func (t Triangular) String() string {
	return fmt.Sprintf("Triangular(%s, %s, %s)", formatFloat(t.min), formatFloat(t.mode), formatFloat(t.max))
}

// Uniform is flat on [Min, Max].
type Uniform struct {
	min float64
	max float64
}

// NewUniform returns a Uniform. Requires min <= max.
func NewUniform(min, max float64) (Uniform, error) {
	if !(min <= max) {
		return Uniform{}, newConstructionError("Uniform",
			"requires min <= max, got min=%s max=%s", formatFloat(min), formatFloat(max))
	}
	return Uniform{min: min, max: max}, nil
}

func (u Uniform) Min() float64  { return u.min }
func (u Uniform) Max() float64  { return u.max }
func (u Uniform) Kind() Kind    { return KindUniform }
func (u Uniform) distribution() {}

func (u Uniform) gonum() distuv.Uniform {
	return distuv.Uniform{Min: u.min, Max: u.max}
}

func (u Uniform) Mean() float64 {
	return (u.min + u.max) / 2
}

func (u Uniform) Sample() float64 {
	return u.gonum().Rand()
}

func (u Uniform) BatchSample(n int) []float64 {
	return batch(n, u.gonum().Rand)
}

func (u Uniform) Equal(other Distribution) bool {
	o, ok := other.(Uniform)
	return ok && u == o
}

func (u Uniform) String() string {
	return fmt.Sprintf("Uniform(%s, %s)", formatFloat(u.min), formatFloat(u.max))
}
