// Package runtime evaluates estimate models and samples their outputs.
package runtime

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lemonberrylabs/estimate/pkg/expr"
	"github.com/lemonberrylabs/estimate/pkg/types"
)

// VariableScope holds the values of evaluated estimates. Reads return
// clones so a later formula never shares tree nodes with an earlier one.
type VariableScope struct {
	vars map[string]types.Value
	mu   sync.RWMutex
}

// NewScope creates an empty scope.
func NewScope() *VariableScope {
	return &VariableScope{
		vars: make(map[string]types.Value),
	}
}

// Get returns a deep copy of a variable's value.
func (s *VariableScope) Get(name string) (types.Value, error) {
	s.mu.RLock()
	v, ok := s.vars[name]
	s.mu.RUnlock()
	if !ok {
		return types.Zero, types.NewKeyError(fmt.Sprintf("estimate '%s' not found", name))
	}
	return v.Clone(), nil
}

// Set stores a variable's value.
func (s *VariableScope) Set(name string, value types.Value) {
	s.mu.Lock()
	s.vars[name] = value
	s.mu.Unlock()
}

// Exists checks if a variable exists.
func (s *VariableScope) Exists(name string) bool {
	s.mu.RLock()
	_, ok := s.vars[name]
	s.mu.RUnlock()
	return ok
}

// Names returns the variable names in sorted order.
func (s *VariableScope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionRegistry provides function lookup for formula evaluation.
type FunctionRegistry interface {
	// CallFunction calls a named function with the given arguments.
	CallFunction(name string, args []types.Value) (types.Value, error)
}

// ScopeAdapter adapts a VariableScope to implement the expr.Scope interface.
type ScopeAdapter struct {
	scope   *VariableScope
	funcMap FunctionRegistry
}

// NewScopeAdapter creates a scope adapter for formula evaluation.
func NewScopeAdapter(scope *VariableScope, funcs FunctionRegistry) *ScopeAdapter {
	return &ScopeAdapter{scope: scope, funcMap: funcs}
}

// GetVariable implements expr.Scope.
func (a *ScopeAdapter) GetVariable(name string) (types.Value, error) {
	return a.scope.Get(name)
}

// CallFunction implements expr.Scope.
func (a *ScopeAdapter) CallFunction(name string, args []types.Value) (types.Value, error) {
	if a.funcMap != nil {
		return a.funcMap.CallFunction(name, args)
	}
	return types.Zero, types.NewKeyError(fmt.Sprintf("function '%s' not found", name))
}

// EvalValue parses and evaluates a formula or number within the given scope.
func EvalValue(v interface{}, scope *VariableScope, funcs FunctionRegistry) (types.Value, error) {
	node, err := expr.ParseValue(v)
	if err != nil {
		return types.Zero, err
	}
	return expr.Evaluate(node, NewScopeAdapter(scope, funcs))
}
