// Package model holds the types the rest of metrixbot passes around.
//
//   - Round: a competition round as the series page lists it
//   - RoundDetail: what the round's own event page adds
//   - Run: the report of one end-to-end bot run
//   - Outcome: how a run ended (posted, no round, duplicate, ...)
//
// metrix, pipeline, ledger, and report all need these types, so they
// live here below every other package, where no import cycle can form.
// Everything carries json tags: a Run is rendered by the report
// writers and persisted by the ledger as-is.
package model
