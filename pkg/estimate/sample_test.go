package estimate

import (
	"math"
	"testing"
)

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestNSampleLength(t *testing.T) {
	uni, _ := Uniform(1, 2)
	poi, _ := Poisson(2)
	trees := []*Node{
		Constant(1),
		Normal(0, 1),
		Mul(Normal(0, 1), Normal(0, 1)),
		Div(Add(uni, poi), SubScalar(Mul(uni, uni), 4)),
	}
	for _, tree := range trees {
		for _, n := range []int{0, 1, 2, 10, 999} {
			if got := len(tree.NSample(n)); got != n {
				t.Errorf("%s: NSample(%d) returned %d values", tree, n, got)
			}
		}
		if got := tree.NSample(-1); got == nil || len(got) != 0 {
			t.Errorf("%s: NSample(-1) = %v, want empty slice", tree, got)
		}
	}
}

func TestConstantAlwaysSamplesItsValue(t *testing.T) {
	c := Constant(7.0)
	for i := 0; i < 1000; i++ {
		if got := c.Sample(); got != 7.0 {
			t.Fatalf("Sample() = %v, want 7", got)
		}
	}
	for _, v := range c.NSample(100) {
		if v != 7.0 {
			t.Fatalf("NSample value %v, want 7", v)
		}
	}
}

func TestOperationCombinesElementwise(t *testing.T) {
	disc, _ := Discrete([]float64{2}, []float64{1})
	tree := Mul(disc, AddScalar(disc, 1))
	if tree.IsLeaf() {
		t.Fatalf("expected an operation, got %s", tree)
	}
	for _, v := range tree.NSample(50) {
		if v != 6 {
			t.Fatalf("sample %v, want 2 * 3", v)
		}
	}
	if got := tree.Sample(); got != 6 {
		t.Errorf("Sample() = %v, want 6", got)
	}
}

func TestSidesAreSampledIndependently(t *testing.T) {
	// x - x for the same non-degenerate variable is not identically zero
	// because each side draws on its own.
	x := Normal(0, 1)
	tree := Sub(x, x)
	if tree.IsLeaf() {
		// Normal - Normal folds; the variance doubles instead of vanishing.
		if sd := tree.Distribution().(interface{ StdDev() float64 }).StdDev(); math.Abs(sd-math.Sqrt2) > 1e-12 {
			t.Fatalf("std dev = %v, want sqrt(2)", sd)
		}
	}

	u, _ := Uniform(0, 1)
	diff := Sub(u, u)
	nonZero := 0
	for _, v := range diff.NSample(1000) {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero < 990 {
		t.Errorf("only %d of 1000 samples of u - u are non-zero", nonZero)
	}
}

func TestSampleMeansMatchClosedForm(t *testing.T) {
	ln, _ := LogNormal(0, 0.5)
	uni, _ := Uniform(2, 4)
	tests := []struct {
		name string
		tree *Node
		want float64
		tol  float64
	}{
		{"normal", Normal(10, 2), 10, 0.1},
		{"normal sum", Add(Normal(1, 1), Normal(2, 1)), 3, 0.1},
		{"lognormal", ln, math.Exp(0.125), 0.05},
		{"uniform product", Mul(uni, uni), 9, 0.2},
		{"shifted uniform", AddScalar(uni, 10), 13, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mean(tt.tree.NSample(50000))
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("sample mean = %v, want %v ± %v", got, tt.want, tt.tol)
			}
		})
	}
}

func TestSampledZeroDivisionPropagates(t *testing.T) {
	zero, _ := Discrete([]float64{0}, []float64{1})
	tree := Div(Constant(1), zero)
	if tree.IsLeaf() {
		t.Fatalf("expected an operation, got %s", tree)
	}
	if v := tree.Sample(); !math.IsInf(v, 1) {
		t.Errorf("1 / 0 sampled as %v, want +Inf", v)
	}
	nan := Div(zero, zero.Clone())
	if v := nan.Sample(); !math.IsNaN(v) {
		t.Errorf("0 / 0 sampled as %v, want NaN", v)
	}
}
