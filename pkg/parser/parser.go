// Package parser converts YAML model documents into AST types.
package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/estimate/pkg/ast"
	"github.com/lemonberrylabs/estimate/pkg/expr"
)

// MaxEstimates is the maximum number of estimates per model.
const MaxEstimates = 200

// MaxSamples is the maximum sample count a model may request.
const MaxSamples = 10_000_000

// MaxSourceSize is the maximum model source size in bytes (64 KB).
const MaxSourceSize = 64 * 1024

// ParseError represents an error encountered during model parsing.
type ParseError struct {
	Message  string
	Location string // e.g., "estimate 'population'"
}

func (e *ParseError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Location, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Parse parses a YAML model document into an AST Model.
func Parse(source []byte) (*ast.Model, error) {
	if len(source) > MaxSourceSize {
		return nil, &ParseError{Message: fmt.Sprintf("model source size %d exceeds maximum %d bytes", len(source), MaxSourceSize)}
	}

	var raw yaml.Node
	if err := yaml.Unmarshal(source, &raw); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	// The root node is a document node containing the actual content
	if raw.Kind != yaml.DocumentNode || len(raw.Content) == 0 {
		return nil, &ParseError{Message: "empty model definition"}
	}

	root := raw.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Message: "model definition must be a mapping"}
	}

	model := &ast.Model{}
	var outputs *yaml.Node

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]

		switch key {
		case "name":
			if err := val.Decode(&model.Name); err != nil {
				return nil, &ParseError{Message: "name must be a string", Location: key}
			}
		case "samples":
			if err := val.Decode(&model.Samples); err != nil || model.Samples <= 0 || model.Samples > MaxSamples {
				return nil, &ParseError{
					Message:  fmt.Sprintf("samples must be an integer in [1, %d], got %q", MaxSamples, val.Value),
					Location: key,
				}
			}
		case "credibility":
			if err := val.Decode(&model.Credibility); err != nil || !(model.Credibility > 0 && model.Credibility < 100) {
				return nil, &ParseError{
					Message:  fmt.Sprintf("credibility must be a number strictly between 0 and 100, got %q", val.Value),
					Location: key,
				}
			}
		case "estimates":
			estimates, err := parseEstimates(val)
			if err != nil {
				return nil, err
			}
			model.Estimates = estimates
		case "outputs":
			outputs = val
		default:
			return nil, &ParseError{Message: fmt.Sprintf("unknown key '%s' in model", key)}
		}
	}

	if len(model.Estimates) == 0 {
		return nil, &ParseError{Message: "model must have at least one estimate"}
	}

	if outputs == nil {
		model.Outputs = []string{model.Estimates[len(model.Estimates)-1].Name}
		return model, nil
	}
	names, err := parseOutputs(outputs, model)
	if err != nil {
		return nil, err
	}
	model.Outputs = names
	return model, nil
}

// parseEstimates parses the ordered list of single-key estimate mappings.
func parseEstimates(node *yaml.Node) ([]*ast.Estimate, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, &ParseError{Message: "estimates must be a sequence", Location: "estimates"}
	}
	if len(node.Content) > MaxEstimates {
		return nil, &ParseError{
			Message:  fmt.Sprintf("%d estimates exceed maximum %d", len(node.Content), MaxEstimates),
			Location: "estimates",
		}
	}

	defined := make(map[string]bool)
	estimates := make([]*ast.Estimate, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, &ParseError{
				Message:  "each estimate must be a single-key mapping",
				Location: fmt.Sprintf("estimate #%d", i+1),
			}
		}

		est, err := parseEstimate(item.Content[0], item.Content[1])
		if err != nil {
			return nil, err
		}
		loc := fmt.Sprintf("estimate '%s'", est.Name)
		if defined[est.Name] {
			return nil, &ParseError{Message: "duplicate estimate name", Location: loc}
		}
		for _, ref := range ast.References(est.Expr) {
			if !defined[ref] {
				return nil, &ParseError{
					Message:  fmt.Sprintf("'%s' is not defined by an earlier estimate", ref),
					Location: loc,
				}
			}
		}
		defined[est.Name] = true
		estimates = append(estimates, est)
	}
	return estimates, nil
}

// parseEstimate parses a single name → formula pair.
func parseEstimate(nameNode, body *yaml.Node) (*ast.Estimate, error) {
	name := nameNode.Value
	loc := fmt.Sprintf("estimate '%s'", name)

	if !isIdentifier(name) {
		return nil, &ParseError{Message: "estimate name must be an identifier", Location: loc}
	}
	if body.Kind != yaml.ScalarNode || strings.TrimSpace(body.Value) == "" {
		return nil, &ParseError{Message: "estimate must be a formula or a number", Location: loc}
	}

	var raw interface{}
	if err := body.Decode(&raw); err != nil {
		return nil, &ParseError{Message: err.Error(), Location: loc}
	}
	node, err := expr.ParseValue(raw)
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Location: loc}
	}

	return &ast.Estimate{
		Name:   name,
		Source: body.Value,
		Expr:   node,
		Line:   nameNode.Line,
	}, nil
}

// parseOutputs accepts a single name or a sequence of names.
func parseOutputs(node *yaml.Node, model *ast.Model) ([]string, error) {
	var names []string
	switch node.Kind {
	case yaml.ScalarNode:
		names = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return nil, &ParseError{Message: "outputs must be a list of estimate names", Location: "outputs"}
		}
	default:
		return nil, &ParseError{Message: "outputs must be a name or a list of names", Location: "outputs"}
	}

	if len(names) == 0 {
		return nil, &ParseError{Message: "outputs must not be empty", Location: "outputs"}
	}
	for _, name := range names {
		if _, ok := model.Lookup(name); !ok {
			return nil, &ParseError{Message: fmt.Sprintf("unknown estimate '%s'", name), Location: "outputs"}
		}
	}
	return names, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		switch {
		case ch == '_', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// FormulaName is the estimate name ParseFormula gives its single formula.
const FormulaName = "result"

// ParseFormula wraps a single formula in a one-estimate model.
func ParseFormula(source string) (*ast.Model, error) {
	node, err := expr.ParseExpression(source)
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Location: "formula"}
	}
	return &ast.Model{
		Estimates: []*ast.Estimate{{Name: FormulaName, Source: source, Expr: node}},
		Outputs:   []string{FormulaName},
	}, nil
}
