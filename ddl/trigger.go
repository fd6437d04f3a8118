// Package ddl builds PostgreSQL trigger and trigger-function DDL.
//
// Triggers and their plpgsql functions are derived from the same
// inputs (table, timing, events, purpose), so the generated names line
// up and the output is deterministic. CREATE statements use OR REPLACE
// where PostgreSQL supports it, and DROP statements can be softened
// with IF EXISTS, so generated migrations are safe to re-apply.
package ddl

import (
	"fmt"
	"strings"

	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
)

// Trigger is a CREATE TRIGGER statement under construction. The zero
// value is not usable; start from NewTrigger. Builder methods return
// copies, so partially built triggers can be shared and extended
// independently.
type Trigger struct {
	table  stanza.Table
	timing Timing
	events []Event
	level  Level
	name   string
	fn     string
	hasFn  bool
}

// NewTrigger starts a row-level trigger on the table, firing at the
// given timing for the given events.
func NewTrigger(table stanza.Table, timing Timing, events ...Event) Trigger {
	return Trigger{table: table, timing: timing, events: events}
}

// Named overrides the derived trigger name.
func (t Trigger) Named(name string) Trigger {
	t.name = name
	return t
}

// ForEachStatement switches the trigger to statement-level firing.
func (t Trigger) ForEachStatement() Trigger {
	t.level = ForEachStatement
	return t
}

// Executes sets the trigger function by name.
func (t Trigger) Executes(fn string) Trigger {
	t.fn = fn
	t.hasFn = true
	return t
}

// ExecutesFunction sets the trigger function and, when the trigger has
// no explicit name, reuses the function's purpose token for name
// derivation so the pair share a stem.
func (t Trigger) ExecutesFunction(fn Function) Trigger {
	t.fn = fn.name
	t.hasFn = true
	if t.name == "" && fn.purpose != "" {
		t.name = DeriveName(t.table, t.timing, t.events, fn.purpose)
	}
	return t
}

// Name returns the explicit name if one was set, otherwise a name
// derived from the table, timing, events and function.
func (t Trigger) Name() string {
	if t.name != "" {
		return t.name
	}
	return DeriveName(t.table, t.timing, t.events, sanitizeIdentifier(t.fn))
}

// Render returns the CREATE TRIGGER statement as a fragment. It
// panics with ErrNoEvents, ErrMissingFunction or ErrConflictingWhen
// when the trigger is structurally invalid, since those are
// programming errors rather than runtime conditions.
func (t Trigger) Render() frag.Fragment {
	if len(t.events) == 0 {
		panic(fmt.Errorf("%w: table %s", ErrNoEvents, t.table.Name))
	}
	if !t.hasFn || t.fn == "" {
		panic(fmt.Errorf("%w: trigger %s", ErrMissingFunction, t.Name()))
	}
	when := t.sharedWhen()

	kinds := make([]string, len(t.events))
	for i, e := range t.events {
		kinds[i] = e.render()
	}

	out := frag.Rawf("CREATE TRIGGER %s", quoteName(t.Name()))
	out = out.Append(frag.SoftBreak(), frag.Rawf("%s %s ON %s", t.timing, strings.Join(kinds, " OR "), t.table.Ref().String()))
	out = out.Append(frag.SoftBreak(), frag.Rawf("FOR EACH %s", t.level))
	if !when.IsEmpty() {
		out = out.Append(frag.SoftBreak(), frag.Rawf("WHEN (%s)", frag.Inline(when)))
	}
	out = out.Append(frag.SoftBreak(), frag.Rawf("EXECUTE FUNCTION %s()", quoteName(t.fn)))
	return out
}

// SQL returns the CREATE statement text. Trigger DDL cannot carry
// bound arguments, so any values in WHEN conditions are inlined as
// literals.
func (t Trigger) SQL() (string, []any) {
	sql, _ := t.Render().RenderCompact()
	return sql, nil
}

// Drop returns a DROP TRIGGER statement for the trigger.
func (t Trigger) Drop() DropStatement {
	return DropStatement{
		kind: "TRIGGER",
		name: quoteName(t.Name()),
		on:   t.table.Ref().String(),
	}
}

// sharedWhen returns the single WHEN condition shared by all events,
// or an empty fragment when none carry one. Events with differing
// conditions are a construction bug: PostgreSQL has one WHEN clause
// per trigger, so silently picking one would change semantics.
func (t Trigger) sharedWhen() frag.Fragment {
	var when frag.Fragment
	var whenText string
	seen := false
	for _, e := range t.events {
		if e.when.IsEmpty() {
			continue
		}
		text := frag.Inline(e.when)
		if !seen {
			when, whenText, seen = e.when, text, true
			continue
		}
		if text != whenText {
			panic(fmt.Errorf("%w: %q vs %q", ErrConflictingWhen, whenText, text))
		}
	}
	return when
}

func quoteName(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
