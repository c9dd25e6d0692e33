package estimate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lemonberrylabs/estimate/pkg/dist"
)

var nodeOpts = cmp.Options{
	cmp.AllowUnexported(Node{}, dist.Normal{}, dist.LogNormal{}, dist.Triangular{},
		dist.Uniform{}, dist.Constant{}, dist.Poisson{}, dist.Discrete{}),
	cmpopts.EquateApprox(0, 1e-12),
}

// mustNode fails the test when a constructor returns an error.
func mustNode(t *testing.T) func(*Node, error) *Node {
	return func(n *Node, err error) *Node {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return n
	}
}

func TestNormalSumIsExact(t *testing.T) {
	tests := []struct{ m1, s1, m2, s2 float64 }{
		{0, 1, 2, 1.5},
		{-3, 0, 7, 0},
		{1e6, 250, -2e5, 1200},
		{0.5, 0.1, 0.25, 0.3},
	}
	for _, tt := range tests {
		got := Add(Normal(tt.m1, tt.s1), Normal(tt.m2, tt.s2))
		want := Normal(tt.m1+tt.m2, math.Sqrt(tt.s1*tt.s1+tt.s2*tt.s2))
		if !got.Equal(want) {
			t.Errorf("Normal(%v, %v) + Normal(%v, %v) = %s, want %s", tt.m1, tt.s1, tt.m2, tt.s2, got, want)
		}

		diff := Sub(Normal(tt.m1, tt.s1), Normal(tt.m2, tt.s2))
		wantDiff := Normal(tt.m1-tt.m2, math.Sqrt(tt.s1*tt.s1+tt.s2*tt.s2))
		if !diff.Equal(wantDiff) {
			t.Errorf("Normal(%v, %v) - Normal(%v, %v) = %s, want %s", tt.m1, tt.s1, tt.m2, tt.s2, diff, wantDiff)
		}
	}
}

func TestFromMeanSum(t *testing.T) {
	got := Add(NormalFromMean(0, 1), NormalFromMean(2, 1.5))
	want := NormalFromMean(2, math.Sqrt(1+1.5*1.5))
	if diff := cmp.Diff(want, got, nodeOpts); diff != "" {
		t.Errorf("sum mismatch (-want +got):\n%s", diff)
	}
	n := got.Distribution().(dist.Normal)
	if math.Abs(n.StdDev()-1.8028) > 1e-4 {
		t.Errorf("std dev = %v, want about 1.8028", n.StdDev())
	}
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		a, b float64
		want float64
	}{
		{"add", OpAdd, 2, 3, 5},
		{"sub", OpSub, 2, 3, -1},
		{"mul", OpMul, 2, 3, 6},
		{"div", OpDiv, 3, 2, 1.5},
		{"div by zero constant", OpDiv, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.op, Constant(tt.a), Constant(tt.b))
			if diff := cmp.Diff(Constant(tt.want), got, nodeOpts); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestZeroScalarCollapsesToConstant(t *testing.T) {
	n := Normal(4, 2)
	for name, got := range map[string]*Node{
		"mul":        MulScalar(n, 0),
		"div":        DivScalar(n, 0),
		"scalar mul": ScalarMul(0, n),
		"zero over":  ScalarDiv(0, n),
		"over zero":  ScalarDiv(5, Constant(0)),
		"operation":  DivScalar(Mul(n, n), 0),
	} {
		if !got.Equal(Constant(0)) {
			t.Errorf("%s: got %s, want Constant(0)", name, got)
		}
	}
}

func TestNormalScalarRules(t *testing.T) {
	n := Normal(10, 2)
	tests := []struct {
		name string
		got  *Node
		want *Node
	}{
		{"add", AddScalar(n, 5), Normal(15, 2)},
		{"sub", SubScalar(n, 5), Normal(5, 2)},
		{"scalar add", ScalarAdd(5, n), Normal(15, 2)},
		{"scalar sub", ScalarSub(5, n), Normal(-5, 2)},
		{"mul", MulScalar(n, 3), Normal(30, 6)},
		{"mul negative", MulScalar(n, -3), Normal(-30, 6)},
		{"scalar mul", ScalarMul(0.5, n), Normal(5, 1)},
		{"div", DivScalar(n, 4), Normal(2.5, 0.5)},
		{"div negative", DivScalar(n, -4), Normal(-2.5, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, nodeOpts); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConstantScalarRules(t *testing.T) {
	c := Constant(6)
	tests := []struct {
		got  *Node
		want float64
	}{
		{AddScalar(c, 1), 7},
		{SubScalar(c, 1), 5},
		{MulScalar(c, 2), 12},
		{DivScalar(c, 4), 1.5},
		{ScalarSub(1, c), -5},
		{ScalarDiv(3, c), 0.5},
		{ScalarAdd(1, c), 7},
	}
	for _, tt := range tests {
		if !tt.got.Equal(Constant(tt.want)) {
			t.Errorf("got %s, want Constant(%v)", tt.got, tt.want)
		}
	}
}

func TestLogNormalRules(t *testing.T) {
	a := mustNode(t)(LogNormal(1, 0.3))
	b := mustNode(t)(LogNormal(2, 0.4))
	scale := math.Sqrt(0.3*0.3 + 0.4*0.4)

	tests := []struct {
		name string
		got  *Node
		want *Node
	}{
		{"mul", Mul(a, b), mustNode(t)(LogNormal(3, scale))},
		{"div", Div(a, b), mustNode(t)(LogNormal(-1, scale))},
		{"mul scalar", MulScalar(a, math.E), mustNode(t)(LogNormal(2, 0.3))},
		{"scalar mul", ScalarMul(math.E, a), mustNode(t)(LogNormal(2, 0.3))},
		{"div scalar", DivScalar(a, math.E), mustNode(t)(LogNormal(0, 0.3))},
		{"scalar div", ScalarDiv(math.E, b), mustNode(t)(LogNormal(-1, 0.4))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, nodeOpts); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogNormalFoldUsesStoredParameters(t *testing.T) {
	a := mustNode(t)(LogNormal(0.5, 0.2))
	b := mustNode(t)(LogNormal(1.0, 0.1))
	folded := Mul(a, b)
	if !folded.IsLeaf() {
		t.Fatalf("LogNormal * LogNormal did not fold: %s", folded)
	}
	ln := folded.Distribution().(dist.LogNormal)
	if math.Abs(ln.Median()-math.Exp(1.5)) > 1e-12 {
		t.Errorf("median = %v, want e^1.5", ln.Median())
	}
	if math.Abs(ln.Location()-1.5) > 1e-12 {
		t.Errorf("location = %v, want 1.5", ln.Location())
	}
	if want := math.Sqrt(0.2*0.2 + 0.1*0.1); math.Abs(ln.Scale()-want) > 1e-12 {
		t.Errorf("scale = %v, want %v", ln.Scale(), want)
	}

	quotient := Div(a, b).Distribution().(dist.LogNormal)
	if math.Abs(quotient.Location()+0.5) > 1e-12 {
		t.Errorf("quotient location = %v, want -0.5", quotient.Location())
	}
	if want := math.Sqrt(0.2*0.2 + 0.1*0.1); math.Abs(quotient.Scale()-want) > 1e-12 {
		t.Errorf("quotient scale = %v, want %v", quotient.Scale(), want)
	}
}

func TestUnfoldableCombinationsWrap(t *testing.T) {
	ln := mustNode(t)(LogNormal(0, 1))
	tri := mustNode(t)(Triangular(0, 1, 2))
	uni := mustNode(t)(Uniform(0, 1))
	poi := mustNode(t)(Poisson(3))
	disc := mustNode(t)(Discrete([]float64{1, 2}, []float64{0.5, 0.5}))

	pairs := []struct {
		name string
		op   Op
		a, b *Node
	}{
		{"normal times normal", OpMul, Normal(0, 1), Normal(0, 1)},
		{"normal over normal", OpDiv, Normal(0, 1), Normal(3, 1)},
		{"lognormal plus lognormal", OpAdd, ln, ln.Clone()},
		{"lognormal minus lognormal", OpSub, ln, ln.Clone()},
		{"normal plus lognormal", OpAdd, Normal(0, 1), ln},
		{"normal plus constant", OpAdd, Normal(0, 1), Constant(2)},
		{"poisson plus poisson", OpAdd, poi, poi.Clone()},
		{"triangular times uniform", OpMul, tri, uni},
		{"discrete minus constant", OpSub, disc, Constant(1)},
		{"uniform over poisson", OpDiv, uni, poi},
		{"operation plus normal", OpAdd, Mul(Normal(0, 1), Normal(0, 1)), Normal(1, 1)},
	}
	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.op, tt.a, tt.b)
			if got.Kind() != KindOperation {
				t.Fatalf("expected an operation node, got %s", got)
			}
			if got.Op() != tt.op {
				t.Errorf("operator = %s, want %s", got.Op(), tt.op)
			}
			if got.Left() != tt.a || got.Right() != tt.b {
				t.Errorf("children are not the original operands")
			}
			if diff := cmp.Diff(tt.a, got.Left(), nodeOpts); diff != "" {
				t.Errorf("left child changed (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.b, got.Right(), nodeOpts); diff != "" {
				t.Errorf("right child changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnfoldableScalarCombinationsWrap(t *testing.T) {
	ln := mustNode(t)(LogNormal(0, 1))
	poi := mustNode(t)(Poisson(3))
	uni := mustNode(t)(Uniform(0, 1))

	tests := []struct {
		name      string
		got       *Node
		wantLeft  *Node
		wantRight *Node
	}{
		{"poisson plus scalar", AddScalar(poi, 2), poi, Constant(2)},
		{"uniform times scalar", MulScalar(uni, 3), uni, Constant(3)},
		{"lognormal plus scalar", AddScalar(ln, 1), ln, Constant(1)},
		{"lognormal times negative", MulScalar(ln, -2), ln, Constant(-2)},
		{"lognormal over negative", DivScalar(ln, -2), ln, Constant(-2)},
		{"negative times lognormal", ScalarMul(-2, ln), Constant(-2), ln},
		{"scalar minus lognormal", ScalarSub(1, ln), Constant(1), ln},
		{"scalar over normal", ScalarDiv(1, Normal(5, 1)), Constant(1), Normal(5, 1)},
		{"negative over lognormal", ScalarDiv(-1, ln), Constant(-1), ln},
		{"scalar over uniform", ScalarDiv(2, uni), Constant(2), uni},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Kind() != KindOperation {
				t.Fatalf("expected an operation node, got %s", tt.got)
			}
			if diff := cmp.Diff(tt.wantLeft, tt.got.Left(), nodeOpts); diff != "" {
				t.Errorf("left child mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRight, tt.got.Right(), nodeOpts); diff != "" {
				t.Errorf("right child mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOperandsAreNotMutated(t *testing.T) {
	a := Normal(1, 2)
	b := Normal(3, 4)
	before := a.Clone()
	_ = Add(a, b)
	_ = MulScalar(a, 10)
	if diff := cmp.Diff(before, a, nodeOpts); diff != "" {
		t.Errorf("operand mutated (-before +after):\n%s", diff)
	}
}

func TestTo(t *testing.T) {
	pos := mustNode(t)(To(8_100_000, 8_400_000, 90))
	if _, ok := pos.Distribution().(dist.LogNormal); !ok {
		t.Errorf("To(8.1e6, 8.4e6, 90) = %s, want a LogNormal leaf", pos)
	}
	span := mustNode(t)(To(-5, 5, 90))
	if _, ok := span.Distribution().(dist.Normal); !ok {
		t.Errorf("To(-5, 5, 90) = %s, want a Normal leaf", span)
	}
	zero := mustNode(t)(To(0, 5, 90))
	if _, ok := zero.Distribution().(dist.Normal); !ok {
		t.Errorf("To(0, 5, 90) = %s, want a Normal leaf", zero)
	}
	if _, err := To(1, 5, 120); err == nil {
		t.Error("expected an error for credibility above 100")
	}
}

func TestIsZeroDivisor(t *testing.T) {
	if !IsZeroDivisor(Constant(0)) {
		t.Error("Constant(0) is a zero divisor")
	}
	if IsZeroDivisor(Constant(1)) || IsZeroDivisor(Normal(0, 0)) || IsZeroDivisor(Add(Normal(0, 1), Constant(0))) {
		t.Error("only Constant(0) leaves are zero divisors")
	}
}
