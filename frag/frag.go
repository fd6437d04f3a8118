// Package frag provides the composable SQL fragment primitives that every
// statement builder in stanza renders through.
//
// A Fragment is an immutable ordered sequence of segments: raw SQL text,
// bound parameter values, and cosmetic soft breaks. Segment order determines
// placeholder order, so a Fragment can always be rendered to the exact pair
// of (SQL text, ordered parameter list) that PostgreSQL expects.
//
// Fragments are value types. Every constructor and combinator returns a new
// Fragment; existing values are never mutated. This makes them safe to share
// across goroutines and across partially-built statements.
package frag

import (
	"fmt"

	"github.com/lib/pq"
)

type segKind uint8

const (
	rawSeg segKind = iota
	bindSeg
	breakSeg
)

type segment struct {
	kind segKind
	text string
	arg  any
}

// Fragment is a composable unit of SQL text plus its ordered bound parameters.
// The zero value is the empty fragment.
type Fragment struct {
	segs []segment
}

// Raw creates a fragment from verbatim SQL text. The text is trusted and
// emitted as-is; it must not contain user-supplied values.
func Raw(text string) Fragment {
	if text == "" {
		return Fragment{}
	}
	return Fragment{segs: []segment{{kind: rawSeg, text: text}}}
}

// Rawf creates a raw fragment from a format string. Like Raw, the result is
// trusted SQL text; never format user-supplied values into it.
func Rawf(format string, args ...any) Fragment {
	return Raw(fmt.Sprintf(format, args...))
}

// Ident creates a fragment holding a double-quoted PostgreSQL identifier,
// with embedded double quotes doubled.
//
// An empty name is a caller bug, not a data error: Ident panics with an error
// wrapping ErrInvalidIdentifier.
func Ident(name string) Fragment {
	if name == "" {
		panic(fmt.Errorf("%w: empty name", ErrInvalidIdentifier))
	}
	return Raw(pq.QuoteIdentifier(name))
}

// Bind creates a fragment holding one bound parameter. At render time the
// parameter becomes a positional placeholder ($1, $2, ...) and the value is
// appended to the argument list.
//
// A nil value renders as the literal NULL and contributes no parameter.
func Bind(value any) Fragment {
	if value == nil {
		return Raw("NULL")
	}
	return Fragment{segs: []segment{{kind: bindSeg, arg: value}}}
}

// SoftBreak returns the cosmetic separator used between statement clauses.
// It renders as a newline (or a single space under RenderCompact) and never
// affects semantics or parameter order.
func SoftBreak() Fragment {
	return Fragment{segs: []segment{{kind: breakSeg}}}
}

// Concat appends the given fragments in order with no separator.
func Concat(frags ...Fragment) Fragment {
	n := 0
	for _, f := range frags {
		n += len(f.segs)
	}
	if n == 0 {
		return Fragment{}
	}
	segs := make([]segment, 0, n)
	for _, f := range frags {
		segs = append(segs, f.segs...)
	}
	return Fragment{segs: segs}
}

// Join concatenates fragments with the separator between adjacent elements.
// Empty fragments are skipped so they do not produce doubled separators.
func Join(frags []Fragment, sep Fragment) Fragment {
	var parts []Fragment
	for _, f := range frags {
		if f.IsEmpty() {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, f)
	}
	return Concat(parts...)
}

// Append returns the receiver with the given fragments concatenated after it.
func (f Fragment) Append(others ...Fragment) Fragment {
	return Concat(append([]Fragment{f}, others...)...)
}

// IsEmpty reports whether the fragment holds no segments at all.
func (f Fragment) IsEmpty() bool {
	return len(f.segs) == 0
}

// Equal reports whether two fragments are segment-for-segment identical.
// Bound values compare with ==; unhashable values compare unequal rather
// than panicking. Statement merging uses Equal to drop duplicate clauses.
func (f Fragment) Equal(other Fragment) bool {
	if len(f.segs) != len(other.segs) {
		return false
	}
	for i, s := range f.segs {
		o := other.segs[i]
		if s.kind != o.kind || s.text != o.text {
			return false
		}
		if s.kind == bindSeg && !argEqual(s.arg, o.arg) {
			return false
		}
	}
	return true
}

func argEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
