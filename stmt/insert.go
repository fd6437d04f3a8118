package stmt

import (
	"fmt"

	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
)

// excludedAlias is the fixed name PostgreSQL gives the virtual row of values
// that would have been inserted, visible inside DO UPDATE.
const excludedAlias = "excluded"

type sourceKind uint8

const (
	sourceRows sourceKind = iota
	sourceDefault
	sourceSelect
)

type conflictAction uint8

const (
	actionUnset conflictAction = iota
	actionNothing
	actionUpdate
)

type conflictClause struct {
	targets     []string
	targetWhere []frag.Fragment
	action      conflictAction
	assignments []frag.Fragment
	updateWhere []frag.Fragment

	// requested is set once conflict handling is actually asked for
	// (OnConflict, DoNothing, DoUpdate). Filters recorded before that
	// point render no clause, only diagnostics.
	requested bool
}

// InsertStatement accumulates an INSERT: column list, value source, optional
// conflict clause, optional RETURNING. Like SelectStatement it is an
// immutable value; combinators clone before mutating.
type InsertStatement struct {
	table     stanza.Table
	columns   []string
	source    sourceKind
	rows      []frag.Fragment
	query     *SelectStatement
	conflict  *conflictClause
	returning []frag.Fragment
}

// Insert starts an INSERT into the given table with an explicit column list.
// With no columns, rows bind positionally to the table's declared columns.
func Insert(table stanza.Table, columns ...string) InsertStatement {
	return InsertStatement{table: table, columns: columns}
}

func (s InsertStatement) clone() InsertStatement {
	c := s
	c.columns = append([]string(nil), s.columns...)
	c.rows = cloneFrags(s.rows)
	c.returning = cloneFrags(s.returning)
	if s.query != nil {
		q := s.query.clone()
		c.query = &q
	}
	if s.conflict != nil {
		cc := *s.conflict
		cc.targets = append([]string(nil), s.conflict.targets...)
		cc.targetWhere = cloneFrags(s.conflict.targetWhere)
		cc.assignments = cloneFrags(s.conflict.assignments)
		cc.updateWhere = cloneFrags(s.conflict.updateWhere)
		c.conflict = &cc
	}
	return c
}

// insertColumns is the effective column list rows must match.
func (s InsertStatement) insertColumns() []string {
	if len(s.columns) > 0 {
		return s.columns
	}
	return s.table.Columns
}

// Row appends one VALUES row with each value bound. The value count must
// match the statement's column list; a mismatch is a caller bug and panics
// with an error wrapping ErrRowArity.
func (s InsertStatement) Row(values ...any) InsertStatement {
	cols := s.insertColumns()
	if len(cols) > 0 && len(values) != len(cols) {
		panic(fmt.Errorf("%w: got %d values for %d columns", ErrRowArity, len(values), len(cols)))
	}
	binds := make([]frag.Fragment, len(values))
	for i, v := range values {
		binds[i] = frag.Bind(v)
	}
	c := s.clone()
	c.source = sourceRows
	c.rows = append(c.rows, frag.Paren(frag.Join(binds, frag.Raw(", "))))
	return c
}

// Rows appends multiple VALUES rows; see Row.
func (s InsertStatement) Rows(rows ...[]any) InsertStatement {
	c := s
	for _, r := range rows {
		c = c.Row(r...)
	}
	return c
}

// RowFragments appends pre-built row tuple fragments. Each fragment must
// render a parenthesized tuple.
func (s InsertStatement) RowFragments(rows ...frag.Fragment) InsertStatement {
	c := s.clone()
	c.source = sourceRows
	c.rows = append(c.rows, rows...)
	return c
}

// DefaultValues makes the statement insert a single row of column defaults.
// The column list is ignored: DEFAULT VALUES addresses every column.
func (s InsertStatement) DefaultValues() InsertStatement {
	c := s.clone()
	c.source = sourceDefault
	c.rows = nil
	return c
}

// FromSelect makes the statement insert the rows produced by a sub-select.
func (s InsertStatement) FromSelect(query SelectStatement) InsertStatement {
	c := s.clone()
	c.source = sourceSelect
	c.query = &query
	return c
}

// OnConflict adds an ON CONFLICT clause matching the given target columns.
// With no columns the clause matches any conflict. The default action is
// DO NOTHING until DoUpdate is called.
func (s InsertStatement) OnConflict(targets ...string) InsertStatement {
	c := s.clone()
	c.conflict = &conflictClause{targets: targets, requested: true}
	return c
}

// OnConflictWhere appends predicates to the conflict target filter (the WHERE
// before the action, selecting which partial index arbitrates). Without a
// prior OnConflict the filter is recorded but no conflict clause renders;
// the mismatch surfaces as a diagnostic.
func (s InsertStatement) OnConflictWhere(preds ...frag.Fragment) InsertStatement {
	c := s.clone()
	if c.conflict == nil {
		c.conflict = &conflictClause{}
	}
	c.conflict.targetWhere = append(c.conflict.targetWhere, preds...)
	return c
}

// DoNothing sets the conflict action to DO NOTHING.
func (s InsertStatement) DoNothing() InsertStatement {
	c := s.clone()
	if c.conflict == nil {
		c.conflict = &conflictClause{}
	}
	c.conflict.action = actionNothing
	c.conflict.assignments = nil
	c.conflict.requested = true
	return c
}

// DoUpdate sets the conflict action to DO UPDATE with the assignments built
// by set. The closure receives the virtual excluded row holding the values
// that would have been inserted. An empty assignment list degrades to
// DO NOTHING at render time, and any update filter becomes dead (reported as
// a diagnostic, not an error).
func (s InsertStatement) DoUpdate(set func(excluded ExcludedRow) []frag.Fragment) InsertStatement {
	c := s.clone()
	if c.conflict == nil {
		c.conflict = &conflictClause{}
	}
	c.conflict.action = actionUpdate
	c.conflict.assignments = set(ExcludedRow{})
	c.conflict.requested = true
	return c
}

// DoUpdateWhere appends predicates to the DO UPDATE action's own filter.
// Without a prior conflict action the filter is recorded but no conflict
// clause renders; the mismatch surfaces as a diagnostic.
func (s InsertStatement) DoUpdateWhere(preds ...frag.Fragment) InsertStatement {
	c := s.clone()
	if c.conflict == nil {
		c.conflict = &conflictClause{}
	}
	c.conflict.updateWhere = append(c.conflict.updateWhere, preds...)
	return c
}

// Returning appends RETURNING expressions.
func (s InsertStatement) Returning(exprs ...frag.Fragment) InsertStatement {
	c := s.clone()
	c.returning = append(c.returning, exprs...)
	return c
}

// Set builds one DO UPDATE assignment: "column" = value.
func Set(column string, value frag.Fragment) frag.Fragment {
	return frag.Concat(frag.Ident(column), frag.Raw(" = "), value)
}

// ExcludedRow is the virtual row of would-have-been-inserted values exposed
// to DO UPDATE closures.
type ExcludedRow struct{}

// Col renders a reference to the excluded row's column: "excluded"."name".
func (ExcludedRow) Col(name string) frag.Fragment {
	return frag.Concat(frag.Ident(excludedAlias), frag.Raw("."), frag.Ident(name))
}

// Render produces the statement fragment plus diagnostics.
//
// A VALUES insert with zero rows renders the zero fragment: inserting nothing
// is a deliberate no-op, never an error. The same holds for an INSERT..SELECT
// whose sub-select is empty, so emptiness keeps propagating through FromSelect.
// An update filter that cannot apply (DO NOTHING action, or no conflict clause
// at all) is reported as a diagnostic alongside the still-valid statement.
func (s InsertStatement) Render() (frag.Fragment, []stanza.Diagnostic) {
	if s.source == sourceRows && len(s.rows) == 0 {
		return frag.Fragment{}, nil
	}
	if s.source == sourceSelect && s.query.IsEmpty() {
		return frag.Fragment{}, nil
	}

	var diags []stanza.Diagnostic
	parts := []frag.Fragment{s.renderInto(), s.renderSource()}

	if s.conflict != nil {
		conflict, cd := s.conflict.render()
		parts = append(parts, conflict)
		diags = append(diags, cd...)
	}

	parts = append(parts, renderList("RETURNING", s.returning))
	return frag.Join(parts, frag.SoftBreak()), diags
}

// SQL renders the statement to text plus ordered parameters, discarding
// diagnostics.
func (s InsertStatement) SQL() (string, []any) {
	f, _ := s.Render()
	return f.Render()
}

func (s InsertStatement) renderInto() frag.Fragment {
	out := frag.Concat(frag.Raw("INSERT INTO "), s.table.Ref())
	if s.source == sourceDefault || len(s.columns) == 0 {
		return out
	}
	cols := make([]frag.Fragment, len(s.columns))
	for i, c := range s.columns {
		cols[i] = frag.Ident(c)
	}
	return out.Append(frag.Raw(" "), frag.Paren(frag.Join(cols, frag.Raw(", "))))
}

func (s InsertStatement) renderSource() frag.Fragment {
	switch s.source {
	case sourceDefault:
		return frag.Raw("DEFAULT VALUES")
	case sourceSelect:
		sub, _ := s.query.Render()
		return sub
	default:
		return frag.Concat(frag.Raw("VALUES "), frag.Join(s.rows, frag.Raw(", ")))
	}
}

func (c *conflictClause) render() (frag.Fragment, []stanza.Diagnostic) {
	var diags []stanza.Diagnostic

	if !c.requested {
		// Filters alone never materialize a clause: an implicit
		// ON CONFLICT DO NOTHING would swallow unique violations the
		// caller never asked to suppress.
		if len(c.targetWhere) > 0 {
			diags = append(diags, stanza.Diagnostic{
				Code:    stanza.DiagFilterWithoutConflictTarget,
				Message: "conflict target filter set but no conflict clause requested",
			})
		}
		if len(c.updateWhere) > 0 {
			diags = append(diags, stanza.Diagnostic{
				Code:    stanza.DiagFilterWithoutUpdateTarget,
				Message: "update filter set but no DO UPDATE action requested",
			})
		}
		return frag.Fragment{}, diags
	}

	out := frag.Raw("ON CONFLICT")

	if len(c.targets) > 0 {
		cols := make([]frag.Fragment, len(c.targets))
		for i, t := range c.targets {
			cols[i] = frag.Ident(t)
		}
		out = out.Append(frag.Raw(" "), frag.Paren(frag.Join(cols, frag.Raw(", "))))
		if len(c.targetWhere) > 0 {
			out = out.Append(frag.Raw(" WHERE "), frag.And(c.targetWhere...))
		}
	} else if len(c.targetWhere) > 0 {
		diags = append(diags, stanza.Diagnostic{
			Code:    stanza.DiagFilterWithoutConflictTarget,
			Message: "conflict target filter dropped: clause has no target columns",
		})
	}

	doUpdate := c.action == actionUpdate && len(c.assignments) > 0
	if !doUpdate {
		out = out.Append(frag.Raw(" DO NOTHING"))
		switch {
		case len(c.updateWhere) == 0:
		case c.action == actionUnset:
			diags = append(diags, stanza.Diagnostic{
				Code:    stanza.DiagFilterWithoutUpdateTarget,
				Message: "update filter set but no DO UPDATE action requested",
			})
		default:
			diags = append(diags, stanza.Diagnostic{
				Code:    stanza.DiagDeadUpdateFilter,
				Message: "update filter has no effect on DO NOTHING",
			})
		}
		return out, diags
	}

	out = out.Append(frag.Raw(" DO UPDATE SET "), frag.Join(c.assignments, frag.Raw(", ")))
	if len(c.updateWhere) > 0 {
		out = out.Append(frag.Raw(" WHERE "), frag.And(c.updateWhere...))
	}
	return out, diags
}
