package ddl

import "errors"

// ErrMissingFunction is the panic cause when a trigger is rendered
// without a function to execute.
var ErrMissingFunction = errors.New("stanza/ddl: trigger has no function to execute")

// ErrConflictingWhen is the panic cause when trigger events carry WHEN
// conditions that do not agree. PostgreSQL allows only a single WHEN
// clause per trigger, so every event must share the same one.
var ErrConflictingWhen = errors.New("stanza/ddl: trigger events have conflicting WHEN conditions")

// ErrNoEvents is the panic cause when a trigger is rendered with no
// firing events.
var ErrNoEvents = errors.New("stanza/ddl: trigger has no events")

// IsMissingFunctionErr returns true if the error indicates a trigger
// rendered without a function.
func IsMissingFunctionErr(err error) bool {
	return errors.Is(err, ErrMissingFunction)
}

// IsConflictingWhenErr returns true if the error indicates disagreeing
// WHEN conditions across trigger events.
func IsConflictingWhenErr(err error) bool {
	return errors.Is(err, ErrConflictingWhen)
}
