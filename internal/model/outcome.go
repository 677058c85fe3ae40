package model

// outcomeUnknownStr is the string representation for unknown outcome values.
const outcomeUnknownStr = "unknown"

// Outcome represents how a bot run ended.
//
// Design decision: We use a typed string rather than iota constants because
// outcomes are persisted to the ledger and rendered in reports; a string
// survives schema evolution and is readable in raw SQL output.
type Outcome string

// Run outcome constants.
const (
	// OutcomePending means the run has not finished yet.
	// It is the zero value of a freshly created Run.
	OutcomePending Outcome = ""
	// OutcomePosted means an announcement was published to the page feed.
	OutcomePosted Outcome = "posted"
	// OutcomeNoRound means no round is scheduled for the target date.
	// This is a clean, successful outcome; nothing is published.
	OutcomeNoRound Outcome = "no_round"
	// OutcomeDuplicate means the round was already announced earlier and
	// the duplicate guard skipped publishing.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeDryRun means the message was composed but publishing was
	// suppressed by the --dry-run flag.
	OutcomeDryRun Outcome = "dry_run"
	// OutcomeFailed means a pipeline step returned an error.
	OutcomeFailed Outcome = "failed"
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	if o == OutcomePending {
		return "pending"
	}
	if !o.IsValid() {
		return outcomeUnknownStr
	}
	return string(o)
}

// IsValid returns true if this is a known outcome.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomePending, OutcomePosted, OutcomeNoRound,
		OutcomeDuplicate, OutcomeDryRun, OutcomeFailed:
		return true
	default:
		return false
	}
}

// Success reports whether the outcome counts as a successful run.
// A run that found nothing to announce is still a success.
func (o Outcome) Success() bool {
	switch o {
	case OutcomePosted, OutcomeNoRound, OutcomeDuplicate, OutcomeDryRun:
		return true
	default:
		return false
	}
}

// ParseOutcome converts a stored string back into an Outcome.
// Unknown strings map to OutcomeFailed so historical rows never
// masquerade as successes after a schema change.
func ParseOutcome(s string) Outcome {
	switch Outcome(s) {
	case OutcomePosted:
		return OutcomePosted
	case OutcomeNoRound:
		return OutcomeNoRound
	case OutcomeDuplicate:
		return OutcomeDuplicate
	case OutcomeDryRun:
		return OutcomeDryRun
	case OutcomePending:
		return OutcomePending
	default:
		return OutcomeFailed
	}
}
