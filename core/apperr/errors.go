package apperr

import (
	"errors"
	"fmt"
)

// Kind is the classification of an Error.
type Kind string

const (
	// KindFetch marks network failures and non-success HTTP statuses.
	KindFetch Kind = "fetch"
	// KindParse marks missing tags/fields and malformed JSON.
	KindParse Kind = "parse"
	// KindValidation marks missing user input or stale session state.
	KindValidation Kind = "validation"
	// KindCopy marks filesystem copy failures during a pack build.
	KindCopy Kind = "copy"
	// KindUnknown is returned by KindOf for unclassified errors.
	KindUnknown Kind = ""
)

// Error is a classified error.
type Error struct {
	Kind Kind
	// Op names the step that failed, e.g. "retrieve header".
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind returns the kind as a string.
func (e *Error) ErrorKind() string {
	return string(e.Kind)
}

// New wraps err with the given kind. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Fetch wraps err as a KindFetch error.
func Fetch(op string, err error) error { return New(KindFetch, op, err) }

// Parse wraps err as a KindParse error.
func Parse(op string, err error) error { return New(KindParse, op, err) }

// Copy wraps err as a KindCopy error.
func Copy(op string, err error) error { return New(KindCopy, op, err) }

// Validation builds a KindValidation error from a message.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
