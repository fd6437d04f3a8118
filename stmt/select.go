// Package stmt provides the statement builders: SELECT clause stores with
// their merge combinators, the INSERT/upsert builder, and window
// specifications. Builders are immutable values; every combinator clones
// before mutating, so partial statements can be shared and merged freely.
package stmt

import (
	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
)

type joinOp uint8

const (
	joinInner joinOp = iota
	joinLeft
	joinRight
	joinFull
)

func (op joinOp) keyword() string {
	switch op {
	case joinLeft:
		return "LEFT OUTER JOIN"
	case joinRight:
		return "RIGHT OUTER JOIN"
	case joinFull:
		return "FULL OUTER JOIN"
	default:
		return "INNER JOIN"
	}
}

// nullable reports which join sides can produce absent rows, for downstream
// optional-wrapping. The renderer itself only uses the keyword.
func (op joinOp) nullable() (left, right bool) {
	switch op {
	case joinLeft:
		return false, true
	case joinRight:
		return true, false
	case joinFull:
		return true, true
	default:
		return false, false
	}
}

type joinClause struct {
	op    joinOp
	table stanza.Table
	on    frag.Fragment
}

type windowClause struct {
	name string
	spec frag.Fragment
}

type distinctClause struct {
	on []frag.Fragment // nil means plain DISTINCT
}

type limitClause struct {
	max    frag.Fragment
	offset frag.Fragment // empty means no OFFSET
}

// SelectStatement accumulates the clauses of one SELECT. The zero value is
// not usable; construct with Select or None. Combinators return new values,
// never mutate the receiver, and the statement is read exactly once by the
// renderer.
type SelectStatement struct {
	table    stanza.Table
	empty    bool
	distinct *distinctClause
	columns  []frag.Fragment
	joins    []joinClause
	where    []frag.Fragment
	group    []frag.Fragment
	having   []frag.Fragment
	order    []frag.Fragment
	windows  []windowClause
	limit    *limitClause
}

// Select starts a statement over the given base table.
func Select(table stanza.Table) SelectStatement {
	return SelectStatement{table: table}
}

// None starts a statement over the given table that is marked empty: it
// renders to nothing regardless of any clauses added later, and emptiness
// propagates through every merge.
func None(table stanza.Table) SelectStatement {
	return SelectStatement{table: table, empty: true}
}

// Table returns the statement's base table.
func (s SelectStatement) Table() stanza.Table {
	return s.table
}

// IsEmpty reports whether the statement is marked empty.
func (s SelectStatement) IsEmpty() bool {
	return s.empty
}

// clone copies the statement so appends never alias a shared backing array.
func (s SelectStatement) clone() SelectStatement {
	c := s
	c.columns = cloneFrags(s.columns)
	c.joins = append([]joinClause(nil), s.joins...)
	c.where = cloneFrags(s.where)
	c.group = cloneFrags(s.group)
	c.having = cloneFrags(s.having)
	c.order = cloneFrags(s.order)
	c.windows = append([]windowClause(nil), s.windows...)
	if s.distinct != nil {
		d := *s.distinct
		c.distinct = &d
	}
	if s.limit != nil {
		l := *s.limit
		c.limit = &l
	}
	return c
}

func cloneFrags(in []frag.Fragment) []frag.Fragment {
	return append([]frag.Fragment(nil), in...)
}

// Columns appends explicit output columns. When no columns are ever selected,
// rendering defaults to all columns of the base table followed by each joined
// table's columns in join order.
func (s SelectStatement) Columns(cols ...frag.Fragment) SelectStatement {
	c := s.clone()
	c.columns = append(c.columns, cols...)
	return c
}

// Where appends predicates; they are AND-combined at render time.
func (s SelectStatement) Where(preds ...frag.Fragment) SelectStatement {
	c := s.clone()
	c.where = append(c.where, preds...)
	return c
}

// GroupBy appends grouping expressions.
func (s SelectStatement) GroupBy(exprs ...frag.Fragment) SelectStatement {
	c := s.clone()
	c.group = append(c.group, exprs...)
	return c
}

// Having appends having predicates; they are AND-combined at render time.
func (s SelectStatement) Having(preds ...frag.Fragment) SelectStatement {
	c := s.clone()
	c.having = append(c.having, preds...)
	return c
}

// OrderBy appends ordering expressions.
func (s SelectStatement) OrderBy(exprs ...frag.Fragment) SelectStatement {
	c := s.clone()
	c.order = append(c.order, exprs...)
	return c
}

// Distinct sets SELECT DISTINCT, overwriting any earlier distinct clause.
func (s SelectStatement) Distinct() SelectStatement {
	c := s.clone()
	c.distinct = &distinctClause{}
	return c
}

// DistinctOn sets SELECT DISTINCT ON (exprs...), overwriting any earlier
// distinct clause.
func (s SelectStatement) DistinctOn(exprs ...frag.Fragment) SelectStatement {
	c := s.clone()
	c.distinct = &distinctClause{on: cloneFrags(exprs)}
	return c
}

// Limit sets LIMIT n, overwriting an earlier limit. An offset set earlier is
// preserved.
func (s SelectStatement) Limit(n int) SelectStatement {
	c := s.clone()
	l := limitClause{max: frag.Rawf("%d", n)}
	if c.limit != nil {
		l.offset = c.limit.offset
	}
	c.limit = &l
	return c
}

// Offset sets the OFFSET of the current limit clause. Without a prior Limit,
// the statement renders LIMIT ALL OFFSET n.
func (s SelectStatement) Offset(n int) SelectStatement {
	c := s.clone()
	if c.limit == nil {
		c.limit = &limitClause{max: frag.Raw("ALL")}
	}
	c.limit.offset = frag.Rawf("%d", n)
	return c
}

// Window appends a named window usable from OVER clauses. Duplicate names are
// structurally allowed; merging keeps the first occurrence of any name.
func (s SelectStatement) Window(name string, spec WindowSpec) SelectStatement {
	c := s.clone()
	c.windows = append(c.windows, windowClause{name: name, spec: spec.render()})
	return c
}

// And merges another partial statement into this one: predicate and ordering
// lists concatenate with duplicates removed, windows keep the first
// occurrence per name, and limit/distinct take the right operand's value when
// it has one. Emptiness propagates.
func (s SelectStatement) And(other SelectStatement) SelectStatement {
	return mergeSelect(s, other, nil)
}

// OrWhere combines this statement's accumulated predicates with another's
// using boolean OR, parenthesizing each side. If either side has no
// predicates, its side is vacuously true and the result has no WHERE at all.
// Clauses other than WHERE follow the And merge rules.
func (s SelectStatement) OrWhere(other SelectStatement) SelectStatement {
	m := mergeSelect(s, other, nil)
	if len(s.where) == 0 || len(other.where) == 0 {
		m.where = nil
		return m
	}
	m.where = []frag.Fragment{
		frag.Or(frag.And(s.where...), frag.And(other.where...)),
	}
	return m
}

// Join merges another statement as the right side of an INNER JOIN with the
// given constraint. Columns become left-then-right, the new join clause sits
// between the two sides' existing joins, and the remaining clauses follow the
// And merge rules.
func (s SelectStatement) Join(other SelectStatement, on frag.Fragment) SelectStatement {
	return s.joinWith(joinInner, other, on)
}

// LeftJoin is Join with a LEFT OUTER JOIN; the right side's columns are
// possibly absent.
func (s SelectStatement) LeftJoin(other SelectStatement, on frag.Fragment) SelectStatement {
	return s.joinWith(joinLeft, other, on)
}

// RightJoin is Join with a RIGHT OUTER JOIN; the left side's columns are
// possibly absent.
func (s SelectStatement) RightJoin(other SelectStatement, on frag.Fragment) SelectStatement {
	return s.joinWith(joinRight, other, on)
}

// FullJoin is Join with a FULL OUTER JOIN; both sides' columns are possibly
// absent.
func (s SelectStatement) FullJoin(other SelectStatement, on frag.Fragment) SelectStatement {
	return s.joinWith(joinFull, other, on)
}

func (s SelectStatement) joinWith(op joinOp, other SelectStatement, on frag.Fragment) SelectStatement {
	clause := &joinClause{op: op, table: other.table, on: on}
	return mergeSelect(s, other, clause)
}

// JoinedTables returns the joined tables in accumulation order.
func (s SelectStatement) JoinedTables() []stanza.Table {
	tables := make([]stanza.Table, len(s.joins))
	for i, j := range s.joins {
		tables[i] = j.table
	}
	return tables
}
