package metrix

import "errors"

// ErrUnexpectedStatus is returned when DiscGolfMetrix answers with a
// non-2xx status. The wrapped message carries the URL and status line.
var ErrUnexpectedStatus = errors.New("unexpected http status")
