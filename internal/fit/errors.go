package fit

import (
	"errors"
	"fmt"
)

// ErrNotConverged matches every *ConvergenceError via errors.Is.
var ErrNotConverged = errors.New("fit did not converge")

// ConvergenceError reports a fit that produced no trustworthy parameters.
type ConvergenceError struct {
	Reason string
	Err    error
}

func (e *ConvergenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrNotConverged, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrNotConverged, e.Reason)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrNotConverged.
func (e *ConvergenceError) Is(target error) bool { return target == ErrNotConverged }
