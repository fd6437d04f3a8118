package stmt

import (
	"fmt"
	"strconv"

	"github.com/pthm/stanza/frag"
)

// FrameType selects the unit a window frame is measured in.
type FrameType uint8

const (
	FrameRows FrameType = iota
	FrameRange
	FrameGroups
)

// String returns the SQL keyword for the frame type.
func (t FrameType) String() string {
	switch t {
	case FrameRange:
		return "RANGE"
	case FrameGroups:
		return "GROUPS"
	default:
		return "ROWS"
	}
}

type boundKind uint8

const (
	boundUnboundedPreceding boundKind = iota
	boundPreceding
	boundCurrentRow
	boundFollowing
	boundUnboundedFollowing
)

// FrameBound is one endpoint of a window frame. Construct with the bound
// constructors below; the zero value is UNBOUNDED PRECEDING.
type FrameBound struct {
	kind   boundKind
	offset int
}

// UnboundedPreceding returns the UNBOUNDED PRECEDING bound.
func UnboundedPreceding() FrameBound {
	return FrameBound{kind: boundUnboundedPreceding}
}

// Preceding returns the n PRECEDING bound. The offset must be strictly
// positive; a violation is a caller bug and panics with an error wrapping
// ErrInvalidFrameBound, since it is statically checkable before any
// statement is sent anywhere.
func Preceding(n int) FrameBound {
	if n <= 0 {
		panic(fmt.Errorf("%w: PRECEDING offset must be positive, got %d", ErrInvalidFrameBound, n))
	}
	return FrameBound{kind: boundPreceding, offset: n}
}

// CurrentRow returns the CURRENT ROW bound.
func CurrentRow() FrameBound {
	return FrameBound{kind: boundCurrentRow}
}

// Following returns the n FOLLOWING bound; like Preceding, the offset must be
// strictly positive.
func Following(n int) FrameBound {
	if n <= 0 {
		panic(fmt.Errorf("%w: FOLLOWING offset must be positive, got %d", ErrInvalidFrameBound, n))
	}
	return FrameBound{kind: boundFollowing, offset: n}
}

// UnboundedFollowing returns the UNBOUNDED FOLLOWING bound.
func UnboundedFollowing() FrameBound {
	return FrameBound{kind: boundUnboundedFollowing}
}

func (b FrameBound) render() frag.Fragment {
	switch b.kind {
	case boundPreceding:
		return frag.Raw(strconv.Itoa(b.offset) + " PRECEDING")
	case boundCurrentRow:
		return frag.Raw("CURRENT ROW")
	case boundFollowing:
		return frag.Raw(strconv.Itoa(b.offset) + " FOLLOWING")
	case boundUnboundedFollowing:
		return frag.Raw("UNBOUNDED FOLLOWING")
	default:
		return frag.Raw("UNBOUNDED PRECEDING")
	}
}

type frameClause struct {
	typ     FrameType
	start   FrameBound
	end     *FrameBound
	between bool
}

// WindowSpec accumulates PARTITION BY and ORDER BY expressions plus an
// optional frame clause, for inline or named OVER (...) rendering. Like the
// statement builders it is an immutable value.
type WindowSpec struct {
	partition []frag.Fragment
	order     []frag.Fragment
	frame     *frameClause
}

// Window starts an empty window specification.
func Window() WindowSpec {
	return WindowSpec{}
}

func (w WindowSpec) clone() WindowSpec {
	c := w
	c.partition = cloneFrags(w.partition)
	c.order = cloneFrags(w.order)
	if w.frame != nil {
		f := *w.frame
		c.frame = &f
	}
	return c
}

// PartitionBy appends partition expressions.
func (w WindowSpec) PartitionBy(exprs ...frag.Fragment) WindowSpec {
	c := w.clone()
	c.partition = append(c.partition, exprs...)
	return c
}

// OrderBy appends ordering expressions.
func (w WindowSpec) OrderBy(exprs ...frag.Fragment) WindowSpec {
	c := w.clone()
	c.order = append(c.order, exprs...)
	return c
}

// Frame sets a BETWEEN frame clause: typ BETWEEN start AND end. The start
// bound must not follow the end bound; an inverted pair is a caller bug and
// panics with an error wrapping ErrInvalidFrameBound.
func (w WindowSpec) Frame(typ FrameType, start, end FrameBound) WindowSpec {
	if start.kind == boundUnboundedFollowing || end.kind == boundUnboundedPreceding {
		panic(fmt.Errorf("%w: frame starts after it ends", ErrInvalidFrameBound))
	}
	c := w.clone()
	c.frame = &frameClause{typ: typ, start: start, end: &end, between: true}
	return c
}

// FrameFrom sets a shorthand frame clause with a single start bound; the end
// is implicitly CURRENT ROW. The start must therefore not be a following
// bound.
func (w WindowSpec) FrameFrom(typ FrameType, start FrameBound) WindowSpec {
	if start.kind == boundFollowing || start.kind == boundUnboundedFollowing {
		panic(fmt.Errorf("%w: shorthand frame start cannot follow CURRENT ROW", ErrInvalidFrameBound))
	}
	c := w.clone()
	c.frame = &frameClause{typ: typ, start: start}
	return c
}

// render produces the window specification body, without the OVER keyword or
// surrounding parentheses.
func (w WindowSpec) render() frag.Fragment {
	var parts []frag.Fragment
	if len(w.partition) > 0 {
		parts = append(parts, frag.Concat(frag.Raw("PARTITION BY "), frag.Join(w.partition, frag.Raw(", "))))
	}
	if len(w.order) > 0 {
		parts = append(parts, frag.Concat(frag.Raw("ORDER BY "), frag.Join(w.order, frag.Raw(", "))))
	}
	if w.frame != nil {
		parts = append(parts, w.frame.render())
	}
	return frag.Join(parts, frag.Raw(" "))
}

func (f *frameClause) render() frag.Fragment {
	if !f.between {
		return frag.Concat(frag.Raw(f.typ.String()+" "), f.start.render())
	}
	return frag.Concat(
		frag.Raw(f.typ.String()+" BETWEEN "),
		f.start.render(),
		frag.Raw(" AND "),
		f.end.render(),
	)
}

// Over renders an inline OVER (spec) fragment for use in a column list.
func (w WindowSpec) Over() frag.Fragment {
	return frag.Concat(frag.Raw("OVER "), frag.Paren(w.render()))
}

// OverName renders OVER "name" against a window declared with
// SelectStatement.Window.
func OverName(name string) frag.Fragment {
	return frag.Concat(frag.Raw("OVER "), frag.Ident(name))
}
