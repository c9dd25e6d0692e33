package runtime

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lemonberrylabs/estimate/pkg/ast"
	"github.com/lemonberrylabs/estimate/pkg/estimate"
	"github.com/lemonberrylabs/estimate/pkg/expr"
	"github.com/lemonberrylabs/estimate/pkg/summary"
	"github.com/lemonberrylabs/estimate/pkg/types"
)

// MaxTreeSize is the maximum number of nodes an estimate's tree may hold.
const MaxTreeSize = 100_000

// DefaultSamples is the sample count used when neither the caller nor the
// model sets one.
const DefaultSamples = 1000

// SampleChunkSize bounds how many draws are held in memory at once.
const SampleChunkSize = 10_000

// Output is the sampled result of one model output.
type Output struct {
	Name    string          `json:"name"`
	Formula string          `json:"formula"`
	Folded  bool            `json:"folded"`
	Kind    string          `json:"kind"`
	Size    int             `json:"size"`
	Depth   int             `json:"depth"`
	Summary summary.Summary `json:"summary"`
}

// Result is the outcome of a model run.
type Result struct {
	Model   string    `json:"model,omitempty"`
	Samples int       `json:"samples"`
	Outputs []*Output `json:"outputs"`
}

// Engine evaluates estimate models.
type Engine struct {
	model *ast.Model
	funcs FunctionRegistry

	mu        sync.Mutex
	cancelled bool
}

// NewEngine creates a new model engine.
func NewEngine(model *ast.Model, funcs FunctionRegistry) *Engine {
	return &Engine{
		model: model,
		funcs: funcs,
	}
}

// Evaluate runs every estimate formula in order and returns the scope
// holding their values. Nothing is sampled.
func (e *Engine) Evaluate(ctx context.Context) (*VariableScope, error) {
	scope := NewScope()
	adapter := NewScopeAdapter(scope, e.funcs)

	for _, est := range e.model.Estimates {
		if err := e.checkCancelled(ctx); err != nil {
			return nil, err
		}

		v, err := e.evalEstimate(est, adapter)
		if err != nil {
			return nil, fmt.Errorf("estimate '%s': %w", est.Name, err)
		}
		scope.Set(est.Name, v)
	}
	return scope, nil
}

func (e *Engine) evalEstimate(est *ast.Estimate, adapter *ScopeAdapter) (types.Value, error) {
	v, err := expr.Evaluate(est.Expr, adapter)
	if err != nil {
		return types.Zero, err
	}
	switch v.Type() {
	case types.TypeNumber:
		return v, nil
	case types.TypeDistribution:
		if size := v.AsDistribution().Size(); size > MaxTreeSize {
			return types.Zero, types.NewResourceLimitError(
				fmt.Sprintf("expression tree has %d nodes, exceeding the limit of %d", size, MaxTreeSize))
		}
		return v, nil
	default:
		return types.Zero, types.NewTypeError(
			fmt.Sprintf("estimate must be a number or a distribution, got %s", v.Type()))
	}
}

// Run evaluates the model and samples each output. A non-positive samples
// argument falls back to the model's own setting, then DefaultSamples.
func (e *Engine) Run(ctx context.Context, samples int) (*Result, error) {
	if samples <= 0 {
		samples = e.model.Samples
	}
	if samples <= 0 {
		samples = DefaultSamples
	}

	scope, err := e.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Model: e.model.Name, Samples: samples}
	for _, name := range e.model.Outputs {
		v, err := scope.Get(name)
		if err != nil {
			return nil, fmt.Errorf("output '%s': %w", name, err)
		}
		node, err := outputNode(v)
		if err != nil {
			return nil, fmt.Errorf("output '%s': %w", name, err)
		}

		stream, err := e.sample(ctx, node, samples)
		if err != nil {
			return nil, err
		}
		out := &Output{
			Name:    name,
			Formula: node.String(),
			Folded:  node.IsLeaf(),
			Kind:    node.Kind().String(),
			Size:    node.Size(),
			Depth:   node.Depth(),
			Summary: stream.Summary(),
		}
		if out.Summary.Invalid > 0 {
			log.Printf("WARNING: output '%s' produced %d non-finite sample(s)", name, out.Summary.Invalid)
		}
		result.Outputs = append(result.Outputs, out)
	}
	return result, nil
}

// outputNode lifts an output value into a tree. Numbers become Constant
// leaves; lists cannot be sampled.
func outputNode(v types.Value) (*estimate.Node, error) {
	node, ok := v.ToNode()
	if !ok {
		return nil, types.NewTypeError(fmt.Sprintf("output must be a number or a distribution, got %s", v.Type()))
	}
	return node, nil
}

// sample draws n samples in chunks, checking for cancellation between them.
func (e *Engine) sample(ctx context.Context, node *estimate.Node, n int) (*summary.Stream, error) {
	stream := summary.NewStream()
	for remaining := n; remaining > 0; remaining -= SampleChunkSize {
		if err := e.checkCancelled(ctx); err != nil {
			return nil, err
		}
		stream.Add(node.NSample(min(remaining, SampleChunkSize)))
	}
	return stream, nil
}

func (e *Engine) checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancelled {
		return fmt.Errorf("run cancelled")
	}
	return nil
}

// Cancel stops a run in progress at the next estimate or sample chunk.
func (e *Engine) Cancel() {
	e.mu.Lock()
	e.cancelled = true
	e.mu.Unlock()
}
