package stanza

// DiagnosticCode identifies a class of non-fatal statement diagnostics.
type DiagnosticCode string

const (
	// DiagDeadUpdateFilter reports an update filter that can have no effect
	// because the conflict action is (or degraded to) DO NOTHING.
	DiagDeadUpdateFilter DiagnosticCode = "dead_update_filter"

	// DiagFilterWithoutUpdateTarget reports an update filter attached to a
	// statement that has no conflict clause for it to apply to.
	DiagFilterWithoutUpdateTarget DiagnosticCode = "filter_without_update_target"

	// DiagFilterWithoutConflictTarget reports a conflict target filter that
	// was dropped because there are no target columns to attach it to.
	DiagFilterWithoutConflictTarget DiagnosticCode = "filter_without_conflict_target"
)

// Diagnostic is a non-fatal finding reported alongside a still-valid rendered
// statement. Diagnostics flag statement shapes that are legal SQL but cannot
// do what the caller intended. They are deliberately not errors: batch
// statement building must never be aborted by a stylistic warning.
type Diagnostic struct {
	Code    DiagnosticCode
	Message string
}

// String returns "code: message".
func (d Diagnostic) String() string {
	return string(d.Code) + ": " + d.Message
}
