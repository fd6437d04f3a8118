package frag

import (
	"fmt"
	"strconv"
	"strings"
)

// Render produces the final SQL text and the ordered parameter list.
// Placeholders are numbered $1..$n in segment order. Soft breaks render as
// newlines. Rendering is deterministic: the same fragment always produces
// byte-identical output.
func (f Fragment) Render() (string, []any) {
	return f.render("\n")
}

// RenderCompact renders like Render but emits soft breaks as single spaces,
// producing a one-line statement.
func (f Fragment) RenderCompact() (string, []any) {
	return f.render(" ")
}

func (f Fragment) render(softBreak string) (string, []any) {
	var sb strings.Builder
	var args []any
	for _, s := range f.segs {
		switch s.kind {
		case rawSeg:
			sb.WriteString(s.text)
		case bindSeg:
			args = append(args, s.arg)
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(len(args)))
		case breakSeg:
			sb.WriteString(softBreak)
		}
	}
	return sb.String(), args
}

// String returns the rendered SQL text without its parameters.
func (f Fragment) String() string {
	sql, _ := f.Render()
	return sql
}

// Inline renders a fragment for debugging with simple bound values written as
// SQL literals instead of placeholders. Strings are single-quoted with
// embedded quotes doubled; other values use their Go formatting. The result
// is for humans and logs, never for execution.
func Inline(f Fragment) string {
	var sb strings.Builder
	for _, s := range f.segs {
		switch s.kind {
		case rawSeg:
			sb.WriteString(s.text)
		case bindSeg:
			sb.WriteString(inlineLiteral(s.arg))
		case breakSeg:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func inlineLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", val)
	}
}
