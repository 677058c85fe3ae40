package pipeline

import "errors"

// Sentinel errors for pipeline steps.
// These allow callers to check error types with errors.Is().
var (
	// ErrNoRounds is returned when the series page parsed cleanly but
	// listed no rounds at all. An empty series usually means the page
	// layout changed or the series ID is wrong, either way a human
	// should look at it.
	ErrNoRounds = errors.New("series page listed no rounds")

	// ErrChecksFailed is returned when pre-publish validation found
	// problems with the composed announcement.
	ErrChecksFailed = errors.New("pre-publish checks failed")
)
