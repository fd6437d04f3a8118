package stmt

import "github.com/pthm/stanza/frag"

// mergeSelect implements the shared merge algebra for combining two partial
// statements. Every clause kind has its own rule:
//
//   - columns: left then right, order preserved, no dedup
//   - joins: left's joins, then the new clause (for join combinators), then
//     right's joins; order is append-only and significant
//   - where/group/having/order: concatenate, then drop duplicate fragments
//   - windows: concatenate, keeping the first occurrence of each name
//   - limit, distinct: right operand's value if present, else left's
//   - empty: logical OR
//
// The base table is always the left operand's.
func mergeSelect(left, right SelectStatement, join *joinClause) SelectStatement {
	m := SelectStatement{
		table: left.table,
		empty: left.empty || right.empty,
	}

	m.columns = append(cloneFrags(left.columns), right.columns...)

	m.joins = append([]joinClause(nil), left.joins...)
	if join != nil {
		m.joins = append(m.joins, *join)
	}
	m.joins = append(m.joins, right.joins...)

	m.where = dedupFrags(append(cloneFrags(left.where), right.where...))
	m.group = dedupFrags(append(cloneFrags(left.group), right.group...))
	m.having = dedupFrags(append(cloneFrags(left.having), right.having...))
	m.order = dedupFrags(append(cloneFrags(left.order), right.order...))

	m.windows = dedupWindows(append(append([]windowClause(nil), left.windows...), right.windows...))

	if right.limit != nil {
		l := *right.limit
		m.limit = &l
	} else if left.limit != nil {
		l := *left.limit
		m.limit = &l
	}

	if right.distinct != nil {
		d := *right.distinct
		m.distinct = &d
	} else if left.distinct != nil {
		d := *left.distinct
		m.distinct = &d
	}

	return m
}

// dedupFrags removes later duplicates, keeping first occurrences in order.
// Quadratic, but clause lists are short and fragments compare segment-wise.
func dedupFrags(in []frag.Fragment) []frag.Fragment {
	if len(in) < 2 {
		return in
	}
	out := in[:0]
	for _, f := range in {
		dup := false
		for _, kept := range out {
			if kept.Equal(f) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, f)
		}
	}
	return out
}

// dedupWindows keeps the first window clause for each name.
func dedupWindows(in []windowClause) []windowClause {
	if len(in) < 2 {
		return in
	}
	out := in[:0]
	seen := make(map[string]struct{}, len(in))
	for _, w := range in {
		if _, ok := seen[w.name]; ok {
			continue
		}
		seen[w.name] = struct{}{}
		out = append(out, w)
	}
	return out
}
