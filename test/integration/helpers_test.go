package integration

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lemonberrylabs/estimate/pkg/parser"
	"github.com/lemonberrylabs/estimate/pkg/runtime"
	"github.com/lemonberrylabs/estimate/pkg/stdlib"
	"github.com/lemonberrylabs/estimate/pkg/types"
)

// loadModel reads a YAML model document from the testdata directory.
func loadModel(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", "models", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load model %s: %v", name, err)
	}
	return string(data)
}

// runModel parses and runs a model with the default registry.
func runModel(t *testing.T, source string, samples int) *runtime.Result {
	t.Helper()
	result, err := tryRunModel(source, samples)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

// runModelExpectError runs a model that must fail.
func runModelExpectError(t *testing.T, source string) error {
	t.Helper()
	_, err := tryRunModel(source, 10)
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	return err
}

func tryRunModel(source string, samples int) (*runtime.Result, error) {
	model, err := parser.Parse([]byte(source))
	if err != nil {
		return nil, err
	}
	var opts []stdlib.Option
	if model.Credibility != 0 {
		opts = append(opts, stdlib.WithCredibility(model.Credibility))
	}
	return runtime.NewEngine(model, stdlib.NewRegistry(opts...)).Run(context.Background(), samples)
}

// output returns the named output of a result.
func output(t *testing.T, r *runtime.Result, name string) *runtime.Output {
	t.Helper()
	for _, o := range r.Outputs {
		if o.Name == name {
			return o
		}
	}
	t.Fatalf("result has no output %q", name)
	return nil
}

// assertFolded checks that an output collapsed to the given leaf.
func assertFolded(t *testing.T, o *runtime.Output, formula string) {
	t.Helper()
	if !o.Folded {
		t.Errorf("%s: expected a folded leaf, got %s (%d nodes)", o.Name, o.Formula, o.Size)
	}
	if formula != "" && o.Formula != formula {
		t.Errorf("%s: formula = %s, want %s", o.Name, o.Formula, formula)
	}
}

// assertWrapped checks that an output stayed an operation tree.
func assertWrapped(t *testing.T, o *runtime.Output) {
	t.Helper()
	if o.Folded || o.Kind != "operation" {
		t.Errorf("%s: expected an operation tree, got %s", o.Name, o.Formula)
	}
}

// assertNear checks a statistic against an expected value with a relative
// tolerance.
func assertNear(t *testing.T, what string, got, want, rel float64) {
	t.Helper()
	if math.Abs(got-want) > rel*math.Abs(want) {
		t.Errorf("%s = %v, want %v ± %.0f%%", what, got, want, rel*100)
	}
}

// assertTag checks that err carries a tagged evaluation error.
func assertTag(t *testing.T, err error, tag string) {
	t.Helper()
	var evalErr *types.EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *types.EvalError, got %T: %v", err, err)
	}
	if !evalErr.HasTag(tag) {
		t.Errorf("expected tag %s, got %v", tag, evalErr.Tags)
	}
}
