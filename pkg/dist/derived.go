package dist

import "math"

// NormalFromMean is NewNormal under the name used by the derived
// constructors.
func NormalFromMean(mean, stdDev float64) Normal {
	return NewNormal(mean, stdDev)
}

// NormalFromRange returns the Normal whose central credibility-percent
// interval is [x, y].
func NormalFromRange(x, y, credibility float64) (Normal, error) {
	z, err := zScore(credibility)
	if err != nil {
		return Normal{}, err
	}
	mean := (x + y) / 2
	return NewNormal(mean, (y-mean)/z), nil
}

// LogNormalFromRange returns the LogNormal whose central credibility-percent
// interval is [x, y]. Both bounds must be positive and x < y.
func LogNormalFromRange(x, y, credibility float64) (LogNormal, error) {
	if !(x > 0 && y > 0) {
		return LogNormal{}, newConstructionError("LogNormal",
			"range bounds must be positive, got [%s, %s]", formatFloat(x), formatFloat(y))
	}
	z, err := zScore(credibility)
	if err != nil {
		return LogNormal{}, err
	}
	location := (math.Log(x) + math.Log(y)) / 2
	return NewLogNormal(location, (math.Log(y)-location)/z)
}

// LogNormalFromMean converts an arithmetic mean and standard deviation into
// log-space parameters by the method of moments:
//
//	location = ln(mean² / √(mean² + stdDev²))
//	scale    = √(ln(1 + stdDev²/mean²))
func LogNormalFromMean(mean, stdDev float64) (LogNormal, error) {
	if !(mean > 0) {
		return LogNormal{}, newConstructionError("LogNormal", "mean must be positive, got %s", formatFloat(mean))
	}
	m2 := Square(mean)
	s2 := Square(stdDev)
	location := math.Log(m2 / math.Sqrt(m2+s2))
	scale := math.Sqrt(math.Log(1 + s2/m2))
	return NewLogNormal(location, scale)
}
