package checks

import (
	"fmt"
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// ScheduleChecker verifies the announced round has not already started.
// Announcing a past round happens when the --date override points
// backwards or the series page lists stale data.
type ScheduleChecker struct {
	// now returns the current time. Replaceable in tests.
	now func() time.Time
}

// ScheduleCheckerOption configures a ScheduleChecker.
type ScheduleCheckerOption func(*ScheduleChecker)

// WithNow replaces the clock, for tests.
func WithNow(now func() time.Time) ScheduleCheckerOption {
	return func(c *ScheduleChecker) {
		if now != nil {
			c.now = now
		}
	}
}

// NewScheduleChecker creates a ScheduleChecker using the system clock.
func NewScheduleChecker(opts ...ScheduleCheckerOption) *ScheduleChecker {
	c := &ScheduleChecker{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the checker name.
func (c *ScheduleChecker) Name() string {
	return "schedule"
}

// Check verifies the round starts strictly in the future.
func (c *ScheduleChecker) Check(run *model.Run) []Problem {
	if !run.HasRound() {
		return nil
	}

	if start := run.Round.StartsAt; !start.After(c.now()) {
		return []Problem{{
			Checker: c.Name(),
			Message: fmt.Sprintf("round start %s is not in the future", start.Format(time.RFC3339)),
		}}
	}

	return nil
}
