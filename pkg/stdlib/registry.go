// Package stdlib implements the functions available to formulas:
// distribution constructors and a few numeric helpers.
package stdlib

import (
	"fmt"

	"github.com/lemonberrylabs/estimate/pkg/types"
)

// DefaultCredibility is the credibility, in percent, used by range
// constructors when a formula does not pass one.
const DefaultCredibility = 90.0

// StdlibFunc is a standard library function signature.
type StdlibFunc func(args []types.Value) (types.Value, error)

// Registry holds all standard library functions.
type Registry struct {
	funcs       map[string]StdlibFunc
	credibility float64
}

// Option configures a Registry.
type Option func(*Registry)

// WithCredibility sets the default credibility for to, normal_range and
// lognormal_range.
func WithCredibility(c float64) Option {
	return func(r *Registry) {
		r.credibility = c
	}
}

// NewRegistry creates a new registry with all built-in functions registered.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		funcs:       make(map[string]StdlibFunc),
		credibility: DefaultCredibility,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerDistributions()
	r.registerMath()
	return r
}

// Credibility returns the default credibility in percent.
func (r *Registry) Credibility() float64 {
	return r.credibility
}

// CallFunction calls a registered function by name.
func (r *Registry) CallFunction(name string, args []types.Value) (types.Value, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return types.Zero, types.NewKeyError(fmt.Sprintf("unknown function '%s'", name))
	}
	return fn(args)
}

// Register adds a function to the registry, replacing any function of the
// same name.
func (r *Registry) Register(name string, fn StdlibFunc) {
	r.funcs[name] = fn
}

// Has reports whether a function is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}
