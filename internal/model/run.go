package model

import (
	"time"

	"github.com/google/uuid"
)

// Trigger identifies what started a bot run.
type Trigger string

// Trigger constants.
const (
	// TriggerManual is a run started by hand via the post command.
	TriggerManual Trigger = "manual"
	// TriggerScheduled is a run started by the watch daemon's daily timer.
	TriggerScheduled Trigger = "scheduled"
)

// String returns the string representation of the Trigger.
func (t Trigger) String() string {
	return string(t)
}

// Run is the report of a single end-to-end bot run.
// Pipeline steps fill it in as they execute; the ledger persists it;
// report writers render it.
//
// Design decision: We use a single accumulating struct rather than
// returning values step-to-step because:
//  1. Every step sees what earlier steps produced without plumbing
//  2. A failed run still carries everything gathered before the failure
//  3. Serialization for the ledger and reports needs one root anyway
type Run struct {
	// === Identity ===

	// ID uniquely identifies this run (UUID).
	ID string `json:"id"`

	// Trigger records what started the run.
	Trigger Trigger `json:"trigger"`

	// === Timing ===

	// StartedAt is when the run began (UTC).
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended (UTC). Zero while running.
	FinishedAt time.Time `json:"finished_at,omitzero"`

	// === Collected Data ===

	// Rounds holds every round parsed from the series page.
	Rounds []Round `json:"rounds,omitempty"`

	// Round is the round selected for announcement, nil when no round
	// matches the target date. Later pipeline steps no-op when nil.
	Round *RoundDetail `json:"round,omitempty"`

	// Message is the composed announcement text.
	Message string `json:"message,omitempty"`

	// PostID is the Graph API post ID returned on successful publish.
	PostID string `json:"post_id,omitempty"`

	// === Run State ===

	// Outcome records how the run ended.
	Outcome Outcome `json:"outcome"`

	// PerformedSteps lists the pipeline steps that actually ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// TimedOut is true if the run was terminated by its deadline.
	TimedOut bool `json:"timed_out"`

	// Error contains the error that stopped the run, if any.
	Error error `json:"-"` // never serialized

	// ErrorMessage mirrors Error as text so it survives serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewRun creates a new run report for the given trigger.
func NewRun(trigger Trigger) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the run as finished now. Safe to call once at the end
// of pipeline execution regardless of outcome.
func (r *Run) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Fail records the error that stopped the run and marks it failed.
func (r *Run) Fail(err error) {
	r.Outcome = OutcomeFailed
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// HasRound reports whether a round was selected for announcement.
// Steps after selection use this as their no-op gate.
func (r *Run) HasRound() bool {
	return r.Round != nil
}

// Duration returns how long the run took. Zero while still running.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
