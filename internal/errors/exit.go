package errors

import "errors"

// Exit codes returned by the nawah binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid arguments or flags.
	ExitValidationError = 2

	// ExitTransportError indicates a remote resource could not be fetched.
	ExitTransportError = 3

	// ExitStepFailed indicates a provisioning step failed; re-run to resume.
	ExitStepFailed = 4

	// ExitCorruptState indicates the checkpoint could not be loaded.
	ExitCorruptState = 5

	// ExitNotFound indicates a file, template, or workspace was not found.
	ExitNotFound = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Code is the process exit status.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is set when the command layer already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with the exit code derived from its sentinel.
func NewExitError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitCodeFromError(err)}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitTransportError:
		return "Transport Error"
	case ExitStepFailed:
		return "Step Failed"
	case ExitCorruptState:
		return "Corrupt State"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Order matters: the more specific sentinels come first.
	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrCorruptState):
		return ExitCorruptState
	case errors.Is(err, ErrStepFailed):
		return ExitStepFailed
	case errors.Is(err, ErrTransport):
		return ExitTransportError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
