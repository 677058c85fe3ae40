// Package schedule provides the daily timer loop for watch mode.
//
// The scheduler fires once per day at a fixed UTC wall-clock time and
// invokes a job callback. A failed job fails that day's run, not the
// daemon; the loop logs the error and waits for the next day.
//
// The clock is injectable so tests can drive the loop without waiting
// for real days to pass.
package schedule
