package ddl

import (
	"strings"

	"github.com/pthm/stanza/frag"
)

// Timing selects when a trigger fires relative to the triggering
// statement.
type Timing int

const (
	Before Timing = iota
	After
	InsteadOf
)

// String returns the SQL keyword for the timing.
func (t Timing) String() string {
	switch t {
	case After:
		return "AFTER"
	case InsteadOf:
		return "INSTEAD OF"
	default:
		return "BEFORE"
	}
}

// token returns the timing as a name component.
func (t Timing) token() string {
	switch t {
	case After:
		return "after"
	case InsteadOf:
		return "instead_of"
	default:
		return "before"
	}
}

// EventKind identifies the statement kind a trigger event responds to.
type EventKind int

const (
	EventInsert EventKind = iota
	EventUpdate
	EventDelete
	EventTruncate
)

// String returns the SQL keyword for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventUpdate:
		return "UPDATE"
	case EventDelete:
		return "DELETE"
	case EventTruncate:
		return "TRUNCATE"
	default:
		return "INSERT"
	}
}

// token returns the event kind as a name component.
func (k EventKind) token() string {
	switch k {
	case EventUpdate:
		return "update"
	case EventDelete:
		return "delete"
	case EventTruncate:
		return "truncate"
	default:
		return "insert"
	}
}

// Event is a single firing event of a trigger, optionally narrowed to
// an UPDATE column list and a WHEN condition.
type Event struct {
	kind    EventKind
	columns []string
	when    frag.Fragment
}

// OnInsert fires the trigger on INSERT.
func OnInsert() Event {
	return Event{kind: EventInsert}
}

// OnUpdate fires the trigger on UPDATE, optionally restricted to the
// named columns (UPDATE OF col, ...).
func OnUpdate(columns ...string) Event {
	return Event{kind: EventUpdate, columns: columns}
}

// OnDelete fires the trigger on DELETE.
func OnDelete() Event {
	return Event{kind: EventDelete}
}

// OnTruncate fires the trigger on TRUNCATE.
func OnTruncate() Event {
	return Event{kind: EventTruncate}
}

// When attaches a WHEN condition to the event. PostgreSQL permits a
// single WHEN clause per trigger, so every event on the same trigger
// must carry an identical condition (or none).
func (e Event) When(pred frag.Fragment) Event {
	e.when = pred
	return e
}

// Kind returns the statement kind this event responds to.
func (e Event) Kind() EventKind {
	return e.kind
}

// render writes the event as it appears in CREATE TRIGGER.
func (e Event) render() string {
	if e.kind != EventUpdate || len(e.columns) == 0 {
		return e.kind.String()
	}
	cols := make([]string, len(e.columns))
	for i, c := range e.columns {
		cols[i] = maybeQuote(c)
	}
	return "UPDATE OF " + strings.Join(cols, ", ")
}

// Level selects row-level or statement-level firing.
type Level int

const (
	ForEachRow Level = iota
	ForEachStatement
)

// String returns the SQL keyword for the level.
func (l Level) String() string {
	if l == ForEachStatement {
		return "STATEMENT"
	}
	return "ROW"
}

// PseudoRow refers to the transition rows available inside trigger
// bodies and WHEN conditions.
type PseudoRow string

const (
	NewRow PseudoRow = "NEW"
	OldRow PseudoRow = "OLD"
)

// Col returns a reference to a column of the pseudo row, e.g.
// NEW.status. The column is quoted only when it is not a plain
// lowercase identifier.
func (r PseudoRow) Col(name string) frag.Fragment {
	return frag.Raw(string(r) + "." + maybeQuote(name))
}

// maybeQuote quotes an identifier only when it cannot appear bare.
func maybeQuote(name string) string {
	if bareIdentifier(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
