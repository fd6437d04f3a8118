package ddl

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
)

//go:embed templates/*.tpl.sql
var templatesFS embed.FS

// templates holds the parsed plpgsql templates.
var templates *template.Template

func init() {
	var err error
	templates, err = template.ParseFS(templatesFS, "templates/*.tpl.sql")
	if err != nil {
		panic(fmt.Sprintf("failed to parse plpgsql templates: %v", err))
	}
}

// Function is a trigger function: a named plpgsql routine returning
// TRIGGER. Its CREATE statement uses CREATE OR REPLACE so re-applying
// generated DDL is idempotent.
type Function struct {
	name    string
	purpose string
	body    string
}

// NewFunction builds a trigger function with an explicit name.
func NewFunction(name string, body Body) Function {
	return Function{name: name, purpose: body.Purpose, body: body.SQL}
}

// FunctionFor builds a trigger function whose name is derived from the
// table, timing, events and the body's purpose token. Pairing it with
// a trigger built from the same inputs yields matching names.
func FunctionFor(table stanza.Table, timing Timing, body Body, events ...Event) Function {
	return Function{
		name:    DeriveName(table, timing, events, body.Purpose),
		purpose: body.Purpose,
		body:    body.SQL,
	}
}

// Name returns the function name.
func (f Function) Name() string {
	return f.name
}

// Render returns the CREATE OR REPLACE FUNCTION statement as a
// fragment.
func (f Function) Render() frag.Fragment {
	var buf bytes.Buffer
	data := struct {
		Name string
		Body string
	}{Name: quoteName(f.name), Body: strings.TrimSpace(f.body)}
	if err := templates.ExecuteTemplate(&buf, "trigger_function.tpl.sql", data); err != nil {
		panic(fmt.Sprintf("executing trigger_function template for %s: %v", f.name, err))
	}
	return frag.Raw(strings.TrimSpace(buf.String()))
}

// SQL returns the CREATE statement text. Trigger function DDL carries
// no bound arguments.
func (f Function) SQL() (string, []any) {
	sql, _ := f.Render().RenderCompact()
	return sql, nil
}

// Drop returns a DROP FUNCTION statement for the function.
func (f Function) Drop() DropStatement {
	return DropStatement{
		kind: "FUNCTION",
		name: quoteName(f.name) + "()",
	}
}

// DropStatement is a DROP TRIGGER or DROP FUNCTION statement.
type DropStatement struct {
	kind     string
	name     string
	on       string
	ifExists bool
}

// IfExists makes the drop tolerate a missing object.
func (d DropStatement) IfExists() DropStatement {
	d.ifExists = true
	return d
}

// Render returns the DROP statement as a fragment.
func (d DropStatement) Render() frag.Fragment {
	var b strings.Builder
	b.WriteString("DROP ")
	b.WriteString(d.kind)
	if d.ifExists {
		b.WriteString(" IF EXISTS")
	}
	b.WriteString(" ")
	b.WriteString(d.name)
	if d.on != "" {
		b.WriteString(" ON ")
		b.WriteString(d.on)
	}
	return frag.Raw(b.String())
}

// SQL returns the DROP statement text with no bound arguments.
func (d DropStatement) SQL() (string, []any) {
	sql, _ := d.Render().RenderCompact()
	return sql, nil
}
