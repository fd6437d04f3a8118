package ddl

import (
	"strings"

	"github.com/pthm/stanza"
)

// DeriveName builds a deterministic identifier for a trigger or its
// backing function from the table, timing, event kinds and a purpose
// token, e.g. "tasks_before_update_set_updated_at". The same inputs
// always produce the same name, so generated DDL is stable across
// runs and safe to diff.
func DeriveName(table stanza.Table, timing Timing, events []Event, purpose string) string {
	parts := []string{table.Name, timing.token()}
	for _, e := range events {
		parts = append(parts, e.kind.token())
	}
	if purpose != "" {
		parts = append(parts, purpose)
	}
	return sanitizeIdentifier(strings.Join(parts, "_"))
}

// sanitizeIdentifier converts an arbitrary string to a valid SQL
// identifier: lowercased, with anything outside [a-z0-9_] replaced
// by an underscore.
func sanitizeIdentifier(s string) string {
	var result strings.Builder
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			result.WriteRune(c)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}

// bareIdentifier reports whether s can appear unquoted in SQL text.
func bareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
