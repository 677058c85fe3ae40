package schedule

import "errors"

// Sentinel errors for schedule operations.
// These allow callers to check error types with errors.Is().
var (
	// ErrInvalidTime is returned when a fire time is not a valid
	// "HH:MM" wall-clock string.
	ErrInvalidTime = errors.New("invalid schedule time")

	// ErrNoJob is returned when a Scheduler is created without a job.
	ErrNoJob = errors.New("scheduler requires a job")
)
