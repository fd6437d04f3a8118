// Package pgxexec runs rendered statements through a pgx connection.
//
// It mirrors the database/sql adapters in the root package for callers
// on the jackc/pgx native interface. Anything with pgx's query methods
// satisfies Querier: *pgxpool.Pool, *pgx.Conn, and pgx.Tx, so
// statements compose with whatever transaction scope the caller holds.
package pgxexec

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pthm/stanza"
)

// Querier executes queries against PostgreSQL through pgx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Query renders st and runs it through q. An empty statement returns
// (nil, nil) without touching the database.
func Query(ctx context.Context, q Querier, st stanza.Statement) (pgx.Rows, error) {
	sql, args := st.SQL()
	if sql == "" {
		return nil, nil
	}
	return q.Query(ctx, sql, args...)
}

// QueryRow renders st and runs it through q, returning the single
// result row. An empty statement returns nil.
func QueryRow(ctx context.Context, q Querier, st stanza.Statement) pgx.Row {
	sql, args := st.SQL()
	if sql == "" {
		return nil
	}
	return q.QueryRow(ctx, sql, args...)
}

// Exec renders st and executes it through q. An empty statement
// returns a zero CommandTag without touching the database.
func Exec(ctx context.Context, q Querier, st stanza.Statement) (pgconn.CommandTag, error) {
	sql, args := st.SQL()
	if sql == "" {
		return pgconn.CommandTag{}, nil
	}
	return q.Exec(ctx, sql, args...)
}
