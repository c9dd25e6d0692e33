package dist

import (
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"
)

// unitUniform draws r in [0, 1) from the same default source as the
// other variants.
var unitUniform = distuv.Uniform{Min: 0, Max: 1}

// Quantile is the inverse CDF of the standard normal distribution.
func Quantile(q float64) float64 {
	return distuv.UnitNormal.Quantile(q)
}

// Square returns x².
func Square(x float64) float64 {
	return x * x
}

// zScore converts a credibility percentage into the standard-deviation
// multiplier of a symmetric interval holding that much mass.
func zScore(credibility float64) (float64, error) {
	if !(credibility > 0 && credibility < 100) {
		return 0, newConstructionError("credibility", "must lie strictly between 0 and 100, got %s", formatFloat(credibility))
	}
	return Quantile(0.5 * (1 + credibility/100)), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func batch(n int, draw func() float64) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = draw()
	}
	return out
}
