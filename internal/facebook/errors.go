package facebook

import "errors"

// Sentinel errors for Facebook publishing.
// These allow callers to check error types with errors.Is().
var (
	// ErrMissingCredentials is returned when the page ID or page token
	// is not set. The caller should explain where credentials come from.
	ErrMissingCredentials = errors.New("facebook credentials are not set")

	// ErrEmptyMessage is returned when asked to publish an empty message.
	ErrEmptyMessage = errors.New("refusing to publish an empty message")
)
