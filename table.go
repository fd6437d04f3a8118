package stanza

import "github.com/pthm/stanza/frag"

// Table describes a relation as supplied by the upstream typed layer: schema,
// name, optional alias, ordered column names, and the primary key columns.
// Names are trusted and never re-validated here.
//
// Tables are value types and safe to copy.
type Table struct {
	Schema     string
	Name       string
	Alias      string
	Columns    []string
	PrimaryKey []string
}

// RefName returns the name other clauses should qualify columns with: the
// alias when set, otherwise the table name.
func (t Table) RefName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// Ref renders the table reference, schema-qualified when a schema is set:
// "schema"."name" or "name".
func (t Table) Ref() frag.Fragment {
	if t.Schema != "" {
		return frag.Concat(frag.Ident(t.Schema), frag.Raw("."), frag.Ident(t.Name))
	}
	return frag.Ident(t.Name)
}

// From renders the table reference for a FROM or JOIN clause, including the
// alias when set: "schema"."name" AS "alias".
func (t Table) From() frag.Fragment {
	ref := t.Ref()
	if t.Alias == "" {
		return ref
	}
	return frag.Concat(ref, frag.Raw(" AS "), frag.Ident(t.Alias))
}

// Col renders a qualified column reference: "refname"."column".
func (t Table) Col(name string) frag.Fragment {
	return frag.Concat(frag.Ident(t.RefName()), frag.Raw("."), frag.Ident(name))
}

// ColumnRefs renders all declared columns as qualified references, in
// declaration order.
func (t Table) ColumnRefs() []frag.Fragment {
	refs := make([]frag.Fragment, len(t.Columns))
	for i, c := range t.Columns {
		refs[i] = t.Col(c)
	}
	return refs
}

// PrimaryKeyRefs renders the primary key columns as qualified references.
func (t Table) PrimaryKeyRefs() []frag.Fragment {
	refs := make([]frag.Fragment, len(t.PrimaryKey))
	for i, c := range t.PrimaryKey {
		refs[i] = t.Col(c)
	}
	return refs
}
