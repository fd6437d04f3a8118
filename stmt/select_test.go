package stmt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
)

var tasks = stanza.Table{
	Name:       "tasks",
	Columns:    []string{"id", "title", "status"},
	PrimaryKey: []string{"id"},
}

var users = stanza.Table{
	Name:       "users",
	Columns:    []string{"id", "name"},
	PrimaryKey: []string{"id"},
}

func TestSelect_DefaultColumns(t *testing.T) {
	sql, args := Select(tasks).SQL()
	assert.Equal(t, `SELECT "tasks"."id", "tasks"."title", "tasks"."status"
FROM "tasks"`, sql)
	assert.Empty(t, args)
}

func TestSelect_NoDeclaredColumnsFallsBackToStar(t *testing.T) {
	sql, _ := Select(stanza.Table{Name: "raw"}).SQL()
	assert.Equal(t, `SELECT *
FROM "raw"`, sql)
}

func TestSelect_ExplicitColumns(t *testing.T) {
	sql, _ := Select(tasks).Columns(tasks.Col("id"), frag.As(frag.Raw("count(*)"), "n")).SQL()
	assert.Equal(t, `SELECT "tasks"."id", count(*) AS "n"
FROM "tasks"`, sql)
}

func TestSelect_WherePredicatesAndCombined(t *testing.T) {
	s := Select(tasks).
		Where(frag.Eq(tasks.Col("status"), frag.Bind("open"))).
		Where(frag.Gt(tasks.Col("id"), frag.Bind(100)))

	sql, args := s.SQL()
	assert.Contains(t, sql, `WHERE ("tasks"."status" = $1) AND ("tasks"."id" > $2)`)
	assert.Equal(t, []any{"open", 100}, args)
}

func TestSelect_GroupHavingOrder(t *testing.T) {
	s := Select(tasks).
		Columns(tasks.Col("status"), frag.Raw("count(*)")).
		GroupBy(tasks.Col("status")).
		Having(frag.Gt(frag.Raw("count(*)"), frag.Bind(5))).
		OrderBy(tasks.Col("status"))

	sql, args := s.SQL()
	assert.Equal(t, `SELECT "tasks"."status", count(*)
FROM "tasks"
GROUP BY "tasks"."status"
HAVING count(*) > $1
ORDER BY "tasks"."status"`, sql)
	assert.Equal(t, []any{5}, args)
}

func TestSelect_Distinct(t *testing.T) {
	sql, _ := Select(tasks).Columns(tasks.Col("status")).Distinct().SQL()
	assert.Contains(t, sql, `SELECT DISTINCT "tasks"."status"`)

	sql, _ = Select(tasks).Columns(tasks.Col("status")).DistinctOn(tasks.Col("status")).SQL()
	assert.Contains(t, sql, `SELECT DISTINCT ON ("tasks"."status") "tasks"."status"`)
}

func TestSelect_LimitOffset(t *testing.T) {
	sql, _ := Select(tasks).Limit(10).SQL()
	assert.Contains(t, sql, "LIMIT 10")
	assert.NotContains(t, sql, "OFFSET")

	sql, _ = Select(tasks).Limit(10).Offset(20).SQL()
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")

	// offset set before the limit survives it
	sql, _ = Select(tasks).Offset(20).Limit(10).SQL()
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
}

func TestSelect_OffsetWithoutLimit(t *testing.T) {
	sql, _ := Select(tasks).Offset(20).SQL()
	assert.Contains(t, sql, "LIMIT ALL OFFSET 20")
}

func TestSelect_Window(t *testing.T) {
	spec := Window().PartitionBy(tasks.Col("status")).OrderBy(tasks.Col("id"))
	s := Select(tasks).
		Columns(frag.Concat(frag.Raw("row_number() "), OverName("w"))).
		Window("w", spec)

	sql, _ := s.SQL()
	assert.Contains(t, sql, `row_number() OVER "w"`)
	assert.Contains(t, sql, `WINDOW "w" AS (PARTITION BY "tasks"."status" ORDER BY "tasks"."id")`)
}

func TestSelect_Join(t *testing.T) {
	on := frag.Eq(tasks.Col("id"), users.Col("id"))
	s := Select(tasks).Join(Select(users), on)

	sql, _ := s.SQL()
	assert.Equal(t, `SELECT "tasks"."id", "tasks"."title", "tasks"."status", "users"."id", "users"."name"
FROM "tasks"
INNER JOIN "users" ON "tasks"."id" = "users"."id"`, sql)

	joined := s.JoinedTables()
	assert.Len(t, joined, 1)
	assert.Equal(t, "users", joined[0].Name)
}

func TestSelect_JoinKeywords(t *testing.T) {
	on := frag.Eq(tasks.Col("id"), users.Col("id"))

	sql, _ := Select(tasks).LeftJoin(Select(users), on).SQL()
	assert.Contains(t, sql, "LEFT OUTER JOIN")

	sql, _ = Select(tasks).RightJoin(Select(users), on).SQL()
	assert.Contains(t, sql, "RIGHT OUTER JOIN")

	sql, _ = Select(tasks).FullJoin(Select(users), on).SQL()
	assert.Contains(t, sql, "FULL OUTER JOIN")
}

func TestSelect_OrWhere(t *testing.T) {
	a := Select(tasks).Where(frag.Eq(tasks.Col("status"), frag.Bind("open")))
	b := Select(tasks).Where(frag.Eq(tasks.Col("status"), frag.Bind("stale")))

	sql, args := a.OrWhere(b).SQL()
	assert.Contains(t, sql, `WHERE ("tasks"."status" = $1) OR ("tasks"."status" = $2)`)
	assert.Equal(t, []any{"open", "stale"}, args)
}

func TestSelect_OrWhereVacuousSideDropsWhere(t *testing.T) {
	a := Select(tasks).Where(frag.Eq(tasks.Col("status"), frag.Bind("open")))
	b := Select(tasks)

	sql, args := a.OrWhere(b).SQL()
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestNone_RendersNothing(t *testing.T) {
	s := None(tasks).Where(frag.Eq(tasks.Col("status"), frag.Bind("open"))).Limit(5)

	f, diags := s.Render()
	assert.True(t, f.IsEmpty())
	assert.Empty(t, diags)

	sql, args := s.SQL()
	assert.Empty(t, sql)
	assert.Empty(t, args)
}

func TestSelect_CombinatorsDoNotMutateReceiver(t *testing.T) {
	base := Select(tasks).Where(frag.Eq(tasks.Col("status"), frag.Bind("open")))
	before, _ := base.SQL()

	_ = base.Where(frag.Gt(tasks.Col("id"), frag.Bind(1))).Limit(3).Distinct()

	after, _ := base.SQL()
	assert.Equal(t, before, after)
}
