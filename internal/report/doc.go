// Package report renders runs, previews, and history for the CLI.
//
// Three writers cover the output needs:
//   - SimpleWriter: terminal text for humans
//   - MarkdownWriter: markdown for pasting a run into an issue or chat
//   - JSONWriter: stable JSON for scripts
//
// The rendered data lives in the model and ledger packages; this
// package only formats it. All writers share the Writer interface, so
// the --format flag swaps them freely and MultiWriter fans a run out
// to several formats at once.
package report
