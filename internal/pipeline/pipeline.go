package pipeline

import (
	"context"
	"log/slog"

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// Step is one stage of an announcement run. Steps execute in sequence
// and communicate through the run they all receive: earlier steps fill
// fields that later steps read.
//
// A step that finds nothing to do (no round selected) returns nil and
// leaves the run untouched; returning an error ends the run.
type Step interface {
	// Run executes the step against the given run.
	Run(ctx context.Context, run *model.Run) error

	// Name identifies the step in logs and in the run's performed-steps list.
	Name() string
}

// Pipeline executes an ordered step sequence against a single run.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger replaces the pipeline's default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError lets later steps run after a failure. The
// default is false: a run either posts its announcement or fails as a
// whole, because publishing after a failed fetch or failed check would
// post garbage to the club page.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// WithSteps appends steps to the pipeline in execution order.
func WithSteps(steps ...Step) Option {
	return func(p *Pipeline) {
		p.steps = append(p.steps, steps...)
	}
}

// New builds a Pipeline from the given options. Without WithLogger the
// default slog logger is used.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends one step in execution order.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps in order against run.
//
// Cancellation is checked between steps, not during them: a running
// step sees the same context and handles its own I/O deadlines, and
// the gap between steps is where stopping leaves the run in a state
// the ledger can describe. A cancelled run is marked timed out and
// failed with the context's error.
//
// A step error is recorded on the run via Fail. Unless the pipeline
// was built with WithContinueOnError, the failing step ends the run
// and is not added to the performed-steps list.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run cancelled",
				"step", step.Name(),
				"run_id", run.ID,
				"reason", err,
			)
			run.TimedOut = true
			run.Fail(err)
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"run_id", run.ID,
		)

		if err := step.Run(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"run_id", run.ID,
				"error", err,
			)

			run.Fail(err)

			if !p.continueOnError {
				return err
			}
		}

		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount reports how many steps the pipeline holds.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames lists the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
