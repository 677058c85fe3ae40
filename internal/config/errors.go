package config

import "errors"

// Validation errors returned by Config.Validate and ValidateCredentials.
// They are sentinels so callers can branch with errors.Is; the messages
// carry no dynamic values.
var (
	// ErrMissingPageID is returned when FB_PAGE_ID is not set.
	// Publishing requires the page identifier.
	ErrMissingPageID = errors.New("missing Facebook page ID: set FB_PAGE_ID in the environment or a .env file")

	// ErrMissingPageToken is returned when FB_PAGE_TOKEN is not set.
	// Publishing requires a page access token with pages_manage_posts.
	ErrMissingPageToken = errors.New("missing Facebook page token: set FB_PAGE_TOKEN in the environment or a .env file")

	// ErrInvalidSeriesID is returned when the series ID is not positive.
	// The ID is the numeric part of the series URL on DiscGolfMetrix.
	ErrInvalidSeriesID = errors.New("invalid series id: must be positive")

	// ErrInvalidBaseURL is returned when the base URL is empty or not HTTP(S).
	ErrInvalidBaseURL = errors.New("invalid base url: must start with http:// or https://")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid http timeout: must be positive")

	// ErrInvalidRunTimeout is returned when the run timeout is not positive.
	// Every run needs a deadline; zero would cancel runs immediately.
	ErrInvalidRunTimeout = errors.New("invalid run timeout: must be positive")

	// ErrInvalidTimezone is returned when the timezone is not a loadable
	// IANA zone name such as "Europe/Oslo".
	ErrInvalidTimezone = errors.New("invalid timezone: must be an IANA zone name")

	// ErrInvalidScheduleTime is returned when the schedule time does not
	// parse as a 24-hour "HH:MM" wall clock.
	ErrInvalidScheduleTime = errors.New("invalid schedule time: must be HH:MM on a 24-hour clock")

	// ErrInvalidMaxBodySize is returned for a negative body size limit.
	// Zero means the default limit applies.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidMaxDescription is returned when the description budget is
	// negative. Use 0 to disable truncation.
	ErrInvalidMaxDescription = errors.New("invalid max description: must be non-negative")
)
