// Package transition holds the error types shared by the guarded state
// transitions in retrieval and reveal.
package transition

import (
	"errors"
	"fmt"
)

// PreconditionError is returned when an executor is called on a state its
// guard does not permit. It signals a programming error: coordinators check
// the guard first and never produce one.
type PreconditionError struct {
	Op     string // Transition that was refused (e.g. "retrieve", "advance")
	Reason string // Human-readable reason
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Reason)
}

// IsPrecondition reports whether err is or wraps a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
