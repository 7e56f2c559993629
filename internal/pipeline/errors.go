package pipeline

import (
	"fmt"

	oerrors "github.com/nawah-io/cli/internal/errors"
)

// StepError reports the step a pipeline run stopped at. It matches both
// ErrStepFailed and the underlying cause.
type StepError struct {
	// Step is the 1-based index of the failed step.
	Step int

	// Name is the failed step's name.
	Name string

	// Err is the error the step returned.
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Step, e.Name, e.Err)
}

// Unwrap exposes the sentinel and the cause to errors.Is / errors.As.
func (e *StepError) Unwrap() []error {
	return []error{oerrors.ErrStepFailed, e.Err}
}

// RangeError indicates a start step outside the pipeline.
type RangeError struct {
	From  int
	Total int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("start step %d is out of range 1..%d", e.From, e.Total)
}
