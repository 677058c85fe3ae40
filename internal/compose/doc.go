// Package compose renders round details into the Norwegian announcement
// text posted to Facebook. The output format is fixed; followers have
// learned to scan for the emoji-prefixed lines.
package compose
