// Package stanza turns declaratively composed statement descriptions into
// exact PostgreSQL text plus an ordered list of bound parameters.
//
// # Module Structure
//
// The module is split into small packages layered bottom-up:
//
//   - frag: composable SQL fragments (text + ordered bound parameters)
//   - stmt: SELECT clause stores, merge combinators, insert/upsert, windows
//   - ddl: CREATE/DROP TRIGGER and trigger function builders
//   - pgxexec: execution adapter for jackc/pgx/v5
//
// This root package holds what every layer shares: table metadata, the
// diagnostics model, and execution adapters for database/sql.
//
// # Composition Model
//
// Statements are immutable values. Combinators return new statements and
// never mutate their receiver, so partial statements can be shared, merged,
// and rendered concurrently:
//
//	users := stanza.Table{Name: "users", Columns: []string{"id", "email", "name"}}
//	q := stmt.Select(users).
//	    Where(frag.Eq(users.Col("email"), frag.Bind("a@b.co"))).
//	    Limit(1)
//	sql, args := q.SQL()
//
// Rendering is deterministic: the same statement always produces
// byte-identical SQL and the same parameter order.
//
// # Execution
//
// stanza renders statements; it does not own connections. The adapters here
// work with anything implementing Querier or Execer (*sql.DB, *sql.Tx,
// *sql.Conn):
//
//	rows, err := stanza.Query(ctx, db, q)
//
// For pgx-native applications use the pgxexec package instead.
//
// # Diagnostics
//
// Some statement shapes are valid SQL but cannot do what the caller intended,
// such as an update filter attached to a conflict clause that degraded to
// DO NOTHING. Renderers report these as Diagnostic values alongside a still
// valid result; they are never errors and never abort batch building.
package stanza
