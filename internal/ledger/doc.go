// Package ledger persists run history and published posts in SQLite.
//
// The posts table doubles as the duplicate-post guard: a round URL can
// be announced once. The runs table feeds the history command. Both use
// the pure-Go modernc.org/sqlite driver, so the binary stays CGO-free
// and runs unchanged on CI hosts.
package ledger
