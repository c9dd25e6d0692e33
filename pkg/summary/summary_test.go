package summary

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sequence(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}

func TestSummarize(t *testing.T) {
	s := Summarize(sequence(100))

	if s.Count != 100 || s.Invalid != 0 {
		t.Fatalf("Count = %d, Invalid = %d", s.Count, s.Invalid)
	}
	if s.Mean != 50.5 {
		t.Errorf("Mean = %v, want 50.5", s.Mean)
	}
	wantSD := math.Sqrt(101.0 * 100 / 12)
	if math.Abs(s.StdDev-wantSD) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, wantSD)
	}
	if s.Min != 1 || s.Max != 100 {
		t.Errorf("Min, Max = %v, %v", s.Min, s.Max)
	}

	percentiles := []struct {
		name string
		got  float64
		want float64
	}{
		{"P5", s.P5, 5},
		{"P25", s.P25, 25},
		{"P50", s.P50, 50},
		{"P75", s.P75, 75},
		{"P95", s.P95, 95},
	}
	for _, p := range percentiles {
		if math.Abs(p.got-p.want) > 2 {
			t.Errorf("%s = %v, want about %v", p.name, p.got, p.want)
		}
	}
	if !(s.P5 <= s.P25 && s.P25 <= s.P50 && s.P50 <= s.P75 && s.P75 <= s.P95) {
		t.Errorf("percentiles out of order: %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if diff := cmp.Diff(Summary{}, Summarize(nil)); diff != "" {
		t.Errorf("empty summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeInvalid(t *testing.T) {
	s := Summarize([]float64{math.NaN(), 2, math.Inf(1), 4, math.Inf(-1)})
	if s.Count != 2 || s.Invalid != 3 {
		t.Fatalf("Count = %d, Invalid = %d", s.Count, s.Invalid)
	}
	if s.Mean != 3 || s.Min != 2 || s.Max != 4 {
		t.Errorf("got %+v", s)
	}

	only := Summarize([]float64{math.NaN(), math.NaN()})
	if diff := cmp.Diff(Summary{Invalid: 2}, only); diff != "" {
		t.Errorf("all-invalid summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{7})
	want := Summary{Count: 1, Mean: 7, Min: 7, Max: 7, P5: 7, P25: 7, P50: 7, P75: 7, P95: 7}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("single summary mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamChunksMatchBatch(t *testing.T) {
	xs := sequence(1000)
	for i := range xs {
		xs[i] = math.Sin(xs[i]) * 100
	}

	stream := NewStream()
	for start := 0; start < len(xs); start += 137 {
		end := min(start+137, len(xs))
		stream.Add(xs[start:end])
	}
	if stream.Count() != len(xs) {
		t.Fatalf("Count() = %d", stream.Count())
	}

	got := stream.Summary()
	want := Summarize(xs)
	opts := cmpopts.EquateApprox(1e-12, 1e-9)
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("chunked summary mismatch (-batch +chunked):\n%s", diff)
	}
}
