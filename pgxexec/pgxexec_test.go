package pgxexec

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type recordingQuerier struct {
	queries []string
	args    [][]any
}

func (r *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.queries = append(r.queries, sql)
	r.args = append(r.args, args)
	return nil, nil
}

func (r *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.queries = append(r.queries, sql)
	r.args = append(r.args, args)
	return nil
}

func (r *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.queries = append(r.queries, sql)
	r.args = append(r.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

type literalStatement struct {
	sql  string
	args []any
}

func (s literalStatement) SQL() (string, []any) { return s.sql, s.args }

func TestExec_PassesRenderedStatement(t *testing.T) {
	rec := &recordingQuerier{}
	st := literalStatement{sql: "INSERT INTO t (a) VALUES ($1)", args: []any{1}}

	tag, err := Exec(context.Background(), rec, st)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), tag.RowsAffected())
	assert.Equal(t, []string{"INSERT INTO t (a) VALUES ($1)"}, rec.queries)
	assert.Equal(t, [][]any{{1}}, rec.args)
}

func TestExec_EmptyStatementIsNoOp(t *testing.T) {
	rec := &recordingQuerier{}

	tag, err := Exec(context.Background(), rec, literalStatement{})
	assert.NoError(t, err)
	assert.Equal(t, pgconn.CommandTag{}, tag)
	assert.Empty(t, rec.queries)
}

func TestQuery_EmptyStatementIsNoOp(t *testing.T) {
	rec := &recordingQuerier{}

	rows, err := Query(context.Background(), rec, literalStatement{})
	assert.NoError(t, err)
	assert.Nil(t, rows)

	row := QueryRow(context.Background(), rec, literalStatement{})
	assert.Nil(t, row)
	assert.Empty(t, rec.queries)
}
