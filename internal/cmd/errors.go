package cmd

import (
	"errors"

	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/pipeline"
)

// exitError attaches the exit code for err. Step failures have already been
// logged by the pipeline, so main does not print them again.
func exitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var stepErr *pipeline.StepError
	exitErr = oerrors.NewExitError(err)
	exitErr.Printed = errors.As(err, &stepErr)
	return exitErr
}
