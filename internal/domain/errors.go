package domain

import (
	"errors"
	"strings"
)

// The three failure categories the service exposes at its boundary. Each
// wraps the low-level cause so operator logs keep the full chain, while
// the HTTP layer renders only the category and a safe message.

// ValidationError reports malformed caller input. Its message is safe to
// return to the caller.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Cause }

// PersistenceError reports a failure while acquiring, writing, or committing
// against the store. The cause must never reach the caller.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string { return e.Message }
func (e *PersistenceError) Unwrap() error { return e.Cause }

// DispatchError reports a failure sending outbound email. The cause must
// never reach the caller.
type DispatchError struct {
	Message string
	Cause   error
}

func (e *DispatchError) Error() string { return e.Message }
func (e *DispatchError) Unwrap() error { return e.Cause }

// CauseChain renders an error together with every wrapped cause, one level
// per line. It is the operator-facing diagnostic representation; API callers
// never see it.
func CauseChain(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(err.Error())
	for {
		err = errors.Unwrap(err)
		if err == nil {
			return b.String()
		}
		b.WriteString("\n  caused by: ")
		b.WriteString(err.Error())
	}
}
