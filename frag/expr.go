package frag

// Expression helpers for building predicate and column fragments. These cover
// the operators statement builders need; Raw remains the escape hatch for
// anything else.

func binary(left Fragment, op string, right Fragment) Fragment {
	return Concat(left, Raw(" "+op+" "), right)
}

// Eq renders left = right.
func Eq(left, right Fragment) Fragment { return binary(left, "=", right) }

// Ne renders left <> right.
func Ne(left, right Fragment) Fragment { return binary(left, "<>", right) }

// Lt renders left < right.
func Lt(left, right Fragment) Fragment { return binary(left, "<", right) }

// Lte renders left <= right.
func Lte(left, right Fragment) Fragment { return binary(left, "<=", right) }

// Gt renders left > right.
func Gt(left, right Fragment) Fragment { return binary(left, ">", right) }

// Gte renders left >= right.
func Gte(left, right Fragment) Fragment { return binary(left, ">=", right) }

// And joins predicates with AND, parenthesizing each operand. Empty
// predicates are dropped; a single surviving predicate is returned unwrapped.
func And(preds ...Fragment) Fragment {
	return combine("AND", preds)
}

// Or joins predicates with OR, parenthesizing each operand. Empty predicates
// are dropped; a single surviving predicate is returned unwrapped.
func Or(preds ...Fragment) Fragment {
	return combine("OR", preds)
}

func combine(op string, preds []Fragment) Fragment {
	var live []Fragment
	for _, p := range preds {
		if !p.IsEmpty() {
			live = append(live, p)
		}
	}
	switch len(live) {
	case 0:
		return Fragment{}
	case 1:
		return live[0]
	}
	parts := make([]Fragment, len(live))
	for i, p := range live {
		parts[i] = Paren(p)
	}
	return Join(parts, Raw(" "+op+" "))
}

// Not renders NOT (pred).
func Not(pred Fragment) Fragment {
	return Concat(Raw("NOT "), Paren(pred))
}

// IsNull renders expr IS NULL.
func IsNull(expr Fragment) Fragment {
	return Concat(expr, Raw(" IS NULL"))
}

// IsNotNull renders expr IS NOT NULL.
func IsNotNull(expr Fragment) Fragment {
	return Concat(expr, Raw(" IS NOT NULL"))
}

// Paren wraps a fragment in parentheses.
func Paren(f Fragment) Fragment {
	return Concat(Raw("("), f, Raw(")"))
}

// As renders expr AS "alias".
func As(expr Fragment, alias string) Fragment {
	return Concat(expr, Raw(" AS "), Ident(alias))
}

// Call renders a function call name(arg, arg, ...).
func Call(name string, args ...Fragment) Fragment {
	return Concat(Raw(name), Paren(Join(args, Raw(", "))))
}

// In renders (expr) IN (v1, v2, ...) with each value bound.
//
// An empty value list renders (expr) IN (NULL), which is always false in
// PostgreSQL but never a syntax error. Callers building filters from dynamic
// lists therefore never have to special-case empty input.
func In(expr Fragment, values []any) Fragment {
	return inList(expr, "IN", values)
}

// NotIn renders (expr) NOT IN (v1, v2, ...) with each value bound, with the
// same empty-list degradation as In.
func NotIn(expr Fragment, values []any) Fragment {
	return inList(expr, "NOT IN", values)
}

func inList(expr Fragment, op string, values []any) Fragment {
	if len(values) == 0 {
		return Concat(Paren(expr), Raw(" "+op+" (NULL)"))
	}
	binds := make([]Fragment, len(values))
	for i, v := range values {
		binds[i] = Bind(v)
	}
	return Concat(Paren(expr), Raw(" "+op+" "), Paren(Join(binds, Raw(", "))))
}
