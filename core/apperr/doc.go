// Package apperr classifies the failures a pack run can report.
//
// Four kinds exist:
//   - fetch: a table document could not be downloaded (network error, non-200)
//   - parse: a document was downloaded but is not what a difficulty table looks like
//   - validation: user input is missing or the session result is stale
//   - copy: a chart folder could not be copied into the pack
//
// Errors are wrapped in *Error so callers can both print the message and branch on
// the kind (the HTTP handlers map kinds to status codes).
//
// # Usage
//
//	if err != nil {
//	    return apperr.Fetch("retrieve table", err)
//	}
//	...
//	switch apperr.KindOf(err) {
//	case apperr.KindValidation:
//	}
package apperr
