// Package checks validates a composed announcement before it is
// published. A problem found here stops the run; a malformed post on
// the club page is worse than no post, because nobody re-reads an
// automated page for errors.
package checks
