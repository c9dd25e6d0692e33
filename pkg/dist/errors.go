package dist

import (
	"errors"
	"fmt"
)

// ErrConstruction matches every *ConstructionError through errors.Is.
var ErrConstruction = errors.New("invalid distribution parameters")

// ConstructionError reports parameters that violate a distribution's invariant.
type ConstructionError struct {
	Distribution string
	Message      string
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Distribution, e.Message)
}

// Is reports whether target is ErrConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

func newConstructionError(distribution, format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{Distribution: distribution, Message: fmt.Sprintf(format, args...)}
}
