// Package summary reduces sample batches to descriptive statistics.
package summary

import (
	"math"

	"github.com/beorn7/perks/quantile"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Percentiles reported in a Summary, as quantiles.
var Percentiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// rankError is the allowed rank error for every tracked quantile.
const rankError = 0.001

// Summary describes a batch of samples. Non-finite samples are counted in
// Invalid and excluded from every other field.
type Summary struct {
	Count   int     `json:"count"`
	Invalid int     `json:"invalid,omitempty"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	P5      float64 `json:"p5"`
	P25     float64 `json:"p25"`
	P50     float64 `json:"p50"`
	P75     float64 `json:"p75"`
	P95     float64 `json:"p95"`
}

// Summarize computes a Summary over samples.
func Summarize(samples []float64) Summary {
	s := NewStream()
	s.Add(samples)
	return s.Summary()
}

// Stream accumulates samples chunk by chunk so a large run never has to
// hold every draw at once. The zero value is not usable; call NewStream.
type Stream struct {
	quantiles *quantile.Stream
	count     int
	invalid   int
	mean      float64
	m2        float64 // sum of squared deviations from mean
	min, max  float64
}

// NewStream returns an empty Stream.
func NewStream() *Stream {
	targets := make(map[float64]float64, len(Percentiles))
	for _, q := range Percentiles {
		targets[q] = rankError
	}
	return &Stream{
		quantiles: quantile.NewTargeted(targets),
		min:       math.Inf(1),
		max:       math.Inf(-1),
	}
}

// Add folds a chunk of samples into the stream.
func (s *Stream) Add(chunk []float64) {
	valid := make([]float64, 0, len(chunk))
	for _, v := range chunk {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.invalid++
			continue
		}
		valid = append(valid, v)
		s.quantiles.Insert(v)
	}
	n := len(valid)
	if n == 0 {
		return
	}

	mean, variance := stat.MeanVariance(valid, nil)
	m2 := 0.0
	if n > 1 {
		m2 = variance * float64(n-1)
	}

	// Pairwise combination of running moments.
	total := s.count + n
	delta := mean - s.mean
	s.mean += delta * float64(n) / float64(total)
	s.m2 += m2 + delta*delta*float64(s.count)*float64(n)/float64(total)
	s.count = total

	s.min = math.Min(s.min, floats.Min(valid))
	s.max = math.Max(s.max, floats.Max(valid))
}

// Count returns the number of finite samples seen so far.
func (s *Stream) Count() int {
	return s.count
}

// Summary returns the statistics of everything added so far.
func (s *Stream) Summary() Summary {
	if s.count == 0 {
		return Summary{Invalid: s.invalid}
	}
	sum := Summary{
		Count:   s.count,
		Invalid: s.invalid,
		Mean:    s.mean,
		Min:     s.min,
		Max:     s.max,
		P5:      s.quantiles.Query(0.05),
		P25:     s.quantiles.Query(0.25),
		P50:     s.quantiles.Query(0.5),
		P75:     s.quantiles.Query(0.75),
		P95:     s.quantiles.Query(0.95),
	}
	if s.count > 1 {
		sum.StdDev = math.Sqrt(s.m2 / float64(s.count-1))
	}
	return sum
}
