// Package pipeline runs the fixed, resumable sequence of steps that
// provisions an app workspace.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nawah-io/cli/internal/output"
)

// StepFunc performs one step. logger is prefixed with the step name.
type StepFunc func(ctx context.Context, logger *log.Logger) error

// Step is one unit of provisioning work.
type Step struct {
	// Index is the 1-based position of the step. It is also the value a
	// checkpoint records to resume from.
	Index int

	// Name is a short identifier, e.g. "git".
	Name string

	// Description is shown while the step runs.
	Description string

	// Run performs the step.
	Run StepFunc
}

// FailureHook is called with the failed step and its error before Run
// returns. A non-nil result is joined to the returned error.
type FailureHook func(step Step, err error) error

// Pipeline executes an ordered slice of steps.
type Pipeline struct {
	steps     []Step
	logger    *log.Logger
	onFailure FailureHook
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// OnFailure sets the hook called when a step fails.
func OnFailure(hook FailureHook) Option {
	return func(p *Pipeline) {
		p.onFailure = hook
	}
}

// New creates a pipeline. Step indices must run 1..len(steps) in order.
func New(steps []Step, logger *log.Logger, opts ...Option) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, errors.New("pipeline has no steps")
	}
	for i, s := range steps {
		if s.Index != i+1 {
			return nil, fmt.Errorf("step %q has index %d, expected %d", s.Name, s.Index, i+1)
		}
		if s.Run == nil {
			return nil, fmt.Errorf("step %q has no run function", s.Name)
		}
	}

	p := &Pipeline{steps: steps, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes steps from through the last one. Earlier steps are reported as skipped. The
// first failing step stops the run; its error is returned as *StepError after
// the failure hook has run. A cancelled context stops the run between steps
// without invoking the hook.
func (p *Pipeline) Run(ctx context.Context, from int) error {
	total := len(p.steps)
	if from < 1 || from > total {
		return &RangeError{From: from, Total: total}
	}

	for _, s := range p.steps[:from-1] {
		p.logger.Info(output.FormatStepLine(s.Index, total, s.Name, output.StatusSkipped))
	}

	for _, s := range p.steps[from-1:] {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.logger.Debug(s.Description, "step", s.Index)

		if err := s.Run(ctx, output.StepLoggerFrom(p.logger, s.Name)); err != nil {
			p.logger.Error(output.FormatStepLine(s.Index, total, s.Name, output.StatusFailed))

			stepErr := &StepError{Step: s.Index, Name: s.Name, Err: err}
			if p.onFailure != nil {
				if hookErr := p.onFailure(s, err); hookErr != nil {
					return errors.Join(stepErr, hookErr)
				}
			}
			return stepErr
		}

		p.logger.Info(output.FormatStepLine(s.Index, total, s.Name, output.StatusDone))
	}

	return nil
}
