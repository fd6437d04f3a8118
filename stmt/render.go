package stmt

import (
	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
)

// Render produces the statement fragment and any non-fatal diagnostics.
// Clause emission order is fixed: SELECT, FROM, joins in accumulation order,
// WHERE, GROUP BY, HAVING, WINDOW, ORDER BY, LIMIT/OFFSET. A statement marked
// empty renders the zero fragment regardless of its other clauses.
func (s SelectStatement) Render() (frag.Fragment, []stanza.Diagnostic) {
	if s.empty {
		return frag.Fragment{}, nil
	}

	parts := []frag.Fragment{s.renderSelect(), s.renderFrom()}
	for _, j := range s.joins {
		parts = append(parts, j.render())
	}
	parts = append(parts,
		renderPredicates("WHERE", s.where),
		renderList("GROUP BY", s.group),
		renderPredicates("HAVING", s.having),
		s.renderWindows(),
		renderList("ORDER BY", s.order),
		s.renderLimit(),
	)
	return frag.Join(parts, frag.SoftBreak()), nil
}

// SQL renders the statement to text plus ordered parameters, discarding
// diagnostics.
func (s SelectStatement) SQL() (string, []any) {
	f, _ := s.Render()
	return f.Render()
}

func (s SelectStatement) renderSelect() frag.Fragment {
	head := frag.Raw("SELECT")
	if s.distinct != nil {
		if s.distinct.on == nil {
			head = head.Append(frag.Raw(" DISTINCT"))
		} else {
			head = head.Append(
				frag.Raw(" DISTINCT ON "),
				frag.Paren(frag.Join(s.distinct.on, frag.Raw(", "))),
			)
		}
	}
	return head.Append(frag.Raw(" "), frag.Join(s.outputColumns(), frag.Raw(", ")))
}

// outputColumns returns the explicit columns, or the default projection: all
// base table columns followed by each joined table's columns in join order.
func (s SelectStatement) outputColumns() []frag.Fragment {
	if len(s.columns) > 0 {
		return s.columns
	}
	cols := s.table.ColumnRefs()
	for _, j := range s.joins {
		cols = append(cols, j.table.ColumnRefs()...)
	}
	if len(cols) == 0 {
		cols = []frag.Fragment{frag.Raw("*")}
	}
	return cols
}

func (s SelectStatement) renderFrom() frag.Fragment {
	return frag.Concat(frag.Raw("FROM "), s.table.From())
}

func (j joinClause) render() frag.Fragment {
	out := frag.Concat(frag.Raw(j.op.keyword()+" "), j.table.From())
	if !j.on.IsEmpty() {
		out = out.Append(frag.Raw(" ON "), j.on)
	}
	return out
}

// renderPredicates AND-joins predicates under the given keyword, or renders
// nothing when the list is empty.
func renderPredicates(keyword string, preds []frag.Fragment) frag.Fragment {
	if len(preds) == 0 {
		return frag.Fragment{}
	}
	return frag.Concat(frag.Raw(keyword+" "), frag.And(preds...))
}

// renderList comma-joins expressions under the given keyword, or renders
// nothing when the list is empty.
func renderList(keyword string, exprs []frag.Fragment) frag.Fragment {
	if len(exprs) == 0 {
		return frag.Fragment{}
	}
	return frag.Concat(frag.Raw(keyword+" "), frag.Join(exprs, frag.Raw(", ")))
}

func (s SelectStatement) renderWindows() frag.Fragment {
	if len(s.windows) == 0 {
		return frag.Fragment{}
	}
	defs := make([]frag.Fragment, len(s.windows))
	for i, w := range s.windows {
		defs[i] = frag.Concat(frag.Ident(w.name), frag.Raw(" AS "), frag.Paren(w.spec))
	}
	return frag.Concat(frag.Raw("WINDOW "), frag.Join(defs, frag.Raw(", ")))
}

func (s SelectStatement) renderLimit() frag.Fragment {
	if s.limit == nil {
		return frag.Fragment{}
	}
	out := frag.Concat(frag.Raw("LIMIT "), s.limit.max)
	if !s.limit.offset.IsEmpty() {
		out = out.Append(frag.Raw(" OFFSET "), s.limit.offset)
	}
	return out
}
