// Package observer defines the two-channel progress interface the core reports to.
//
// A front end attaches whatever implementation suits it:
//   - Writer: prints lines to an io.Writer (the CLI uses stdout)
//   - Zap: forwards lines to a zap logger
//   - Recorder: keeps lines in memory (HTTP responses, tests)
//   - Multi: fans out to several observers
//
// Status lines are the short headline results. Log lines are the detail stream; the
// refresh flag asks the front end to show what it has buffered so far.
package observer
