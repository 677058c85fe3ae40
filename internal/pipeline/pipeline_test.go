package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// mockStep counts its invocations and delegates to runFunc when set.
type mockStep struct {
	name      string
	runFunc   func(ctx context.Context, run *model.Run) error
	callCount int
}

func (m *mockStep) Run(ctx context.Context, run *model.Run) error {
	m.callCount++
	if m.runFunc != nil {
		return m.runFunc(ctx, run)
	}
	return nil
}

func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew covers the constructor options.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.continueOnError {
			t.Error("expected continueOnError to default to false")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})

	t.Run("applies WithSteps option", func(t *testing.T) {
		t.Parallel()

		p := New(WithSteps(
			&mockStep{name: "first"},
			&mockStep{name: "second"},
		))

		if p.StepCount() != 2 {
			t.Errorf("expected 2 steps, got %d", p.StepCount())
		}
	})
}

// TestPipelineAddStep covers step registration and ordering.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&mockStep{name: "first"},
			&mockStep{name: "second"},
			&mockStep{name: "third"},
		)

		names := p.StepNames()

		expected := []string{"first", "second", "third"}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute covers ordering, failure modes, and cancellation.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New()
		p.AddSteps(
			&mockStep{name: "first", runFunc: func(_ context.Context, _ *model.Run) error {
				executionOrder = append(executionOrder, "first")
				return nil
			}},
			&mockStep{name: "second", runFunc: func(_ context.Context, _ *model.Run) error {
				executionOrder = append(executionOrder, "second")
				return nil
			}},
		)

		run := model.NewRun(model.TriggerManual)
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if len(executionOrder) != 2 || executionOrder[0] != "first" || executionOrder[1] != "second" {
			t.Errorf("execution order = %v, want [first second]", executionOrder)
		}
		if len(run.PerformedSteps) != 2 {
			t.Errorf("PerformedSteps = %v, want both steps", run.PerformedSteps)
		}
	})

	t.Run("stops at first failure by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("fetch blew up")
		second := &mockStep{name: "second"}

		p := New()
		p.AddSteps(
			&mockStep{name: "first", runFunc: func(_ context.Context, _ *model.Run) error {
				return stepErr
			}},
			second,
		)

		run := model.NewRun(model.TriggerManual)
		err := p.Execute(context.Background(), run)
		if !errors.Is(err, stepErr) {
			t.Fatalf("Execute() error = %v, want the step error", err)
		}

		if second.callCount != 0 {
			t.Error("second step ran after the first failed")
		}
		if run.Outcome != model.OutcomeFailed {
			t.Errorf("Outcome = %q, want %q", run.Outcome, model.OutcomeFailed)
		}
		if !errors.Is(run.Error, stepErr) {
			t.Errorf("run.Error = %v, want the step error", run.Error)
		}
		if run.ErrorMessage == "" {
			t.Error("ErrorMessage should carry the failure text")
		}
		if len(run.PerformedSteps) != 0 {
			t.Errorf("PerformedSteps = %v, want none for a failed first step", run.PerformedSteps)
		}
	})

	t.Run("continueOnError keeps executing", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "second"}

		p := New(WithContinueOnError(true))
		p.AddSteps(
			&mockStep{name: "first", runFunc: func(_ context.Context, _ *model.Run) error {
				return errors.New("non fatal")
			}},
			second,
		)

		run := model.NewRun(model.TriggerManual)
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v, want nil with continueOnError", err)
		}

		if second.callCount != 1 {
			t.Error("second step should run despite the first failing")
		}
		if run.Outcome != model.OutcomeFailed {
			t.Error("failed step should still mark the run failed")
		}
	})

	t.Run("cancelled context stops before the next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		second := &mockStep{name: "second"}

		p := New()
		p.AddSteps(
			&mockStep{name: "first", runFunc: func(_ context.Context, _ *model.Run) error {
				cancel()
				return nil
			}},
			second,
		)

		run := model.NewRun(model.TriggerManual)
		err := p.Execute(ctx, run)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}

		if second.callCount != 0 {
			t.Error("second step ran after cancellation")
		}
		if !run.TimedOut {
			t.Error("TimedOut should be set on cancellation")
		}
		if run.Outcome != model.OutcomeFailed {
			t.Errorf("Outcome = %q, want %q", run.Outcome, model.OutcomeFailed)
		}
	})

	t.Run("deadline exceeded marks the run timed out", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()

		p := New()
		p.AddStep(&mockStep{name: "never-runs"})

		run := model.NewRun(model.TriggerScheduled)
		err := p.Execute(ctx, run)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Execute() error = %v, want context.DeadlineExceeded", err)
		}
		if !run.TimedOut {
			t.Error("TimedOut should be set on deadline")
		}
	})

	t.Run("empty pipeline succeeds", func(t *testing.T) {
		t.Parallel()

		run := model.NewRun(model.TriggerManual)
		if err := New().Execute(context.Background(), run); err != nil {
			t.Errorf("Execute() error = %v, want nil", err)
		}
	})
}
