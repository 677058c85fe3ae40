// Package pipeline executes one announcement run as an ordered step
// sequence: fetch the series page, select the round, fetch its event
// page, compose the message, validate it, publish, record.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
//  1. Every trigger (manual or scheduled) runs the exact same sequence
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context for the run deadline
//  4. The performed-steps list makes a failed run diagnosable from its
//     ledger row alone
//
// Steps never retry; the first failure stops the run. The next
// scheduled trigger is a fresh run.
package pipeline
