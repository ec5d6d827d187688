// pkg/check/check.go

// Package check builds and composes validation predicates over a finished
// input string.
//
// A Check either accepts a candidate (returns nil) or rejects it with an
// *InvalidInput carrying a message for the user. Constructors close over
// their configuration and hold no other state, so a Check may be reused
// and evaluated from several goroutines at once.
//
//	answer := check.AnyOf(
//	    check.Equals(false, "y", "n"),
//	    check.WithMessage(check.Range[int](1, 3), "pick 1, 2 or 3"),
//	)
package check

import (
	cerr "github.com/cockroachdb/errors"
)

// DefaultMessage is reported when a check rejects without a custom message.
const DefaultMessage = "Invalid Input"

// Check is a predicate over a candidate answer.
type Check interface {
	// Evaluate returns nil to accept candidate, or an error (normally
	// *InvalidInput) to reject it.
	Evaluate(candidate string) error
}

// Func adapts a plain function to the Check interface.
type Func func(candidate string) error

// Evaluate calls f.
func (f Func) Evaluate(candidate string) error {
	return f(candidate)
}

// InvalidInput is the rejection produced by a Check.
type InvalidInput struct {
	Message string
}

func (e *InvalidInput) Error() string {
	if e.Message == "" {
		return DefaultMessage
	}
	return e.Message
}

// Reject returns an *InvalidInput with msg, or the default message when msg
// is empty.
func Reject(msg string) error {
	return &InvalidInput{Message: msg}
}

// IsInvalidInput reports whether err is (or wraps) an *InvalidInput.
func IsInvalidInput(err error) bool {
	var invalid *InvalidInput
	return cerr.As(err, &invalid)
}

// MessageOf returns the text to show the user for a rejection. Errors that
// are not *InvalidInput, e.g. from a hand-written Func, are shown as-is.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var invalid *InvalidInput
	if cerr.As(err, &invalid) {
		return invalid.Error()
	}
	return err.Error()
}

// Accepts is shorthand for c.Evaluate(candidate) == nil.
func Accepts(c Check, candidate string) bool {
	return c.Evaluate(candidate) == nil
}
