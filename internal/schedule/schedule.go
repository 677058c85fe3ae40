package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// timeLayout is the wall-clock layout for fire times.
const timeLayout = "15:04"

// DefaultAt is the fire time used when none is configured.
// 05:00 UTC is early morning in Norway year round, hours before
// anyone reads the club page.
const DefaultAt = "05:00"

// TriggerName is the trigger string passed to scheduled jobs.
const TriggerName = "scheduled"

// NextRun returns the next occurrence of the "HH:MM" UTC wall clock
// strictly after now. When today's occurrence has already passed (or is
// exactly now), the result is tomorrow's.
func NextRun(now time.Time, at string) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, at)
	}

	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)

	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next, nil
}

// Job is the callback a Scheduler invokes on each fire.
type Job func(ctx context.Context, trigger string) error

// Scheduler fires a job once per day at a fixed UTC wall-clock time.
//
// Design decision: We compute the next fire time and sleep on a timer
// rather than ticking every minute because:
//  1. One timer per day is cheaper than 1440 wakeups
//  2. The fire time survives clock reads under test via WithClock
//  3. Timer drift self-corrects since every iteration recomputes
type Scheduler struct {
	// job is invoked on each fire with trigger set to TriggerName.
	job Job

	// at is the daily fire time as "HH:MM" in UTC.
	at string

	// clock returns the current time. Injectable for tests.
	clock func() time.Time

	// logger is used for loop-level logging.
	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithAt sets the daily fire time as "HH:MM" in UTC.
// Default is DefaultAt if not specified.
func WithAt(at string) Option {
	return func(s *Scheduler) {
		if at != "" {
			s.at = at
		}
	}
}

// WithClock sets a custom time source. Tests use this to position
// the loop just before a fire without waiting a day.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the scheduler loop.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scheduler that invokes job on each daily fire.
func New(job Job, opts ...Option) *Scheduler {
	s := &Scheduler{
		job:   job,
		at:    DefaultAt,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Run executes the daily loop until the context is cancelled.
//
// Each iteration computes the next fire time, sleeps on a timer, and
// invokes the job. Job errors are logged and the loop continues; a
// failed run must not take the daemon down with it. Run returns the
// context's error on cancellation and ErrInvalidTime if the fire time
// cannot be parsed.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.job == nil {
		return ErrNoJob
	}

	for {
		now := s.clock()
		next, err := NextRun(now, s.at)
		if err != nil {
			return err
		}

		wait := next.Sub(now)
		s.logger.Info("waiting for next scheduled run",
			"next", next.Format(time.RFC3339),
			"wait", wait.Round(time.Second).String(),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.job(ctx, TriggerName); err != nil {
			s.logger.Error("scheduled run failed", "error", err)
		}
	}
}
