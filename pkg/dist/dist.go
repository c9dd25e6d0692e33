// Package dist implements the closed set of primitive probability
// distributions that estimate trees are built from.
//
// Continuous variants are Normal, LogNormal, Triangular and Uniform; discrete
// variants are Constant, Poisson and Discrete. Every variant draws single
// samples and batches from the process-wide default random source.
package dist

// Kind identifies a distribution variant.
type Kind int

const (
	KindNormal Kind = iota
	KindLogNormal
	KindTriangular
	KindUniform
	KindConstant
	KindPoisson
	KindDiscrete
)

// String returns the variant name as used in formulas and renderings.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindLogNormal:
		return "LogNormal"
	case KindTriangular:
		return "Triangular"
	case KindUniform:
		return "Uniform"
	case KindConstant:
		return "Constant"
	case KindPoisson:
		return "Poisson"
	case KindDiscrete:
		return "Discrete"
	default:
		return "unknown"
	}
}

// Continuous reports whether the variant has a continuous support.
func (k Kind) Continuous() bool {
	switch k {
	case KindNormal, KindLogNormal, KindTriangular, KindUniform:
		return true
	default:
		return false
	}
}

// Distribution is implemented by every variant in this package and only
// by them.
type Distribution interface {
	Kind() Kind

	// Sample draws one outcome.
	Sample() float64

	// BatchSample draws n independent outcomes. n <= 0 yields an empty slice.
	BatchSample(n int) []float64

	// Mean is the closed-form expected value.
	Mean() float64

	// Equal reports parameter equality.
	Equal(other Distribution) bool

	String() string

	distribution()
}
