package types

import (
	"fmt"
	"strings"
)

// Error tag constants.
const (
	TagTypeError          = "TypeError"
	TagValueError         = "ValueError"
	TagKeyError           = "KeyError"
	TagZeroDivisionError  = "ZeroDivisionError"
	TagConstructionError  = "ConstructionError"
	TagResourceLimitError = "ResourceLimitError"
)

// EvalError is a formula evaluation error with a message and tags.
type EvalError struct {
	Message string
	Tags    []string
	Err     error // underlying cause, if any
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("%s (tags=[%s])", e.Message, strings.Join(e.Tags, ", "))
}

// Unwrap returns the underlying cause.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// HasTag returns true if the error has the specified tag.
func (e *EvalError) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NewTypeError creates a TypeError.
func NewTypeError(msg string) *EvalError {
	return &EvalError{Message: msg, Tags: []string{TagTypeError}}
}

// NewValueError creates a ValueError.
func NewValueError(msg string) *EvalError {
	return &EvalError{Message: msg, Tags: []string{TagValueError}}
}

// NewKeyError creates a KeyError.
func NewKeyError(msg string) *EvalError {
	return &EvalError{Message: msg, Tags: []string{TagKeyError}}
}

// NewZeroDivisionError creates a ZeroDivisionError.
func NewZeroDivisionError() *EvalError {
	return &EvalError{Message: "division by zero", Tags: []string{TagZeroDivisionError}}
}

// NewConstructionError wraps a distribution construction failure.
func NewConstructionError(fn string, err error) *EvalError {
	return &EvalError{
		Message: fmt.Sprintf("%s: %v", fn, err),
		Tags:    []string{TagConstructionError, TagValueError},
		Err:     err,
	}
}

// NewResourceLimitError creates a ResourceLimitError.
func NewResourceLimitError(msg string) *EvalError {
	return &EvalError{Message: msg, Tags: []string{TagResourceLimitError}}
}
