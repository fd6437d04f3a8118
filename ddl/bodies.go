package ddl

import (
	"bytes"
	"fmt"

	"github.com/pthm/stanza"
)

// Body is a plpgsql trigger function body plus the purpose token used
// in derived names.
type Body struct {
	Purpose string
	SQL     string
}

// RawBody wraps hand-written plpgsql as a function body.
func RawBody(purpose, sql string) Body {
	return Body{Purpose: sanitizeIdentifier(purpose), SQL: sql}
}

// SetTimestampBody stamps the named column with now() on the incoming
// row. Typically paired with BEFORE UPDATE.
func SetTimestampBody(column string) Body {
	return Body{
		Purpose: "set_" + sanitizeIdentifier(column),
		SQL: renderBody("set_timestamp.tpl.sql", struct{ Column string }{
			Column: maybeQuote(column),
		}),
	}
}

// IncrementVersionBody bumps the named counter column by one on the
// incoming row. Typically paired with BEFORE UPDATE.
func IncrementVersionBody(column string) Body {
	return Body{
		Purpose: "bump_" + sanitizeIdentifier(column),
		SQL: renderBody("increment_version.tpl.sql", struct{ Column string }{
			Column: maybeQuote(column),
		}),
	}
}

// AuditInsertBody records the triggering operation and row image into
// an audit table. The audit table needs table_name, operation,
// row_data and changed_at columns.
func AuditInsertBody(audit stanza.Table) Body {
	return Body{
		Purpose: "audit",
		SQL: renderBody("audit_insert.tpl.sql", struct{ AuditTable string }{
			AuditTable: audit.Ref().String(),
		}),
	}
}

// SoftDeleteBody converts a DELETE into an UPDATE that stamps the
// named column, suppressing the physical delete by returning NULL.
// Pair with BEFORE DELETE.
func SoftDeleteBody(table stanza.Table, column string) Body {
	key := "id"
	if len(table.PrimaryKey) > 0 {
		key = table.PrimaryKey[0]
	}
	return Body{
		Purpose: "soft_delete",
		SQL: renderBody("soft_delete.tpl.sql", struct {
			Table  string
			Column string
			Key    string
		}{
			Table:  table.Ref().String(),
			Column: maybeQuote(column),
			Key:    maybeQuote(key),
		}),
	}
}

// RowSecurityBody rejects rows whose column does not match the current
// value of a session setting, e.g. a tenant id in app.tenant_id.
func RowSecurityBody(column, setting string) Body {
	return Body{
		Purpose: "row_security",
		SQL: renderBody("row_security.tpl.sql", struct {
			Column  string
			Setting string
		}{
			Column:  maybeQuote(column),
			Setting: setting,
		}),
	}
}

// PreventDeleteBody unconditionally rejects deletes on the table.
func PreventDeleteBody() Body {
	return Body{
		Purpose: "prevent_delete",
		SQL:     renderBody("prevent_delete.tpl.sql", nil),
	}
}

// renderBody executes a body template, panicking on template errors
// since they indicate a bug in this package rather than caller input.
func renderBody(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic(fmt.Sprintf("executing %s: %v", name, err))
	}
	return buf.String()
}
