package ledger

import "errors"

// Sentinel errors for ledger operations.
// These allow callers to check error types with errors.Is().
var (
	// ErrNotFound is returned when the ledger database does not exist
	// and the caller asked not to create it.
	ErrNotFound = errors.New("ledger database not found")

	// ErrNoPost is returned when recording a post from a run that has
	// no published post to record.
	ErrNoPost = errors.New("run carries no published post")
)
