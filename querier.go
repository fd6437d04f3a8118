package stanza

import (
	"context"
	"database/sql"
)

// Statement is any statement builder that can render itself to SQL text plus
// an ordered parameter list. Implemented by stmt.SelectStatement,
// stmt.InsertStatement, and the ddl builders.
//
// An empty statement renders as ("", nil); the adapters below treat that as
// a no-op rather than sending an empty string to the server.
type Statement interface {
	SQL() (string, []any)
}

// Querier executes queries against PostgreSQL.
// Implemented by *sql.DB, *sql.Tx, and *sql.Conn.
//
// The minimal interface lets statements run inside transactions without this
// package owning connections: render-and-execute composes with whatever
// transaction scope the caller already holds.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Execer extends Querier with ExecContext for statements that return no rows,
// such as inserts without RETURNING and trigger DDL.
type Execer interface {
	Querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Query renders st and runs it through q. An empty statement returns
// (nil, nil) without touching the database.
func Query(ctx context.Context, q Querier, st Statement) (*sql.Rows, error) {
	query, args := st.SQL()
	if query == "" {
		return nil, nil
	}
	return q.QueryContext(ctx, query, args...)
}

// QueryRow renders st and runs it through q, returning the single result row.
// An empty statement returns nil.
func QueryRow(ctx context.Context, q Querier, st Statement) *sql.Row {
	query, args := st.SQL()
	if query == "" {
		return nil
	}
	return q.QueryRowContext(ctx, query, args...)
}

// Exec renders st and executes it through e. An empty statement returns
// (nil, nil) without touching the database.
func Exec(ctx context.Context, e Execer, st Statement) (sql.Result, error) {
	query, args := st.SQL()
	if query == "" {
		return nil, nil
	}
	return e.ExecContext(ctx, query, args...)
}
