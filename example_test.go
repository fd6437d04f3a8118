package stanza_test

import (
	"fmt"

	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
	"github.com/pthm/stanza/stmt"
)

func ExampleSelect() {
	tasks := stanza.Table{
		Name:    "tasks",
		Columns: []string{"id", "title", "status"},
	}

	open := stmt.Select(tasks).
		Where(frag.Eq(tasks.Col("status"), frag.Bind("open")))
	recent := stmt.Select(tasks).
		OrderBy(frag.Concat(tasks.Col("id"), frag.Raw(" DESC"))).
		Limit(10)

	sql, args := open.And(recent).SQL()
	fmt.Println(sql)
	fmt.Println(args)
	// Output:
	// SELECT "tasks"."id", "tasks"."title", "tasks"."status"
	// FROM "tasks"
	// WHERE "tasks"."status" = $1
	// ORDER BY "tasks"."id" DESC
	// LIMIT 10
	// [open]
}

func ExampleInsert() {
	tasks := stanza.Table{Name: "tasks", Columns: []string{"title", "status"}}

	upsert := stmt.Insert(tasks, "title", "status").
		Row("write docs", "open").
		OnConflict("title").
		DoUpdate(func(ex stmt.ExcludedRow) []frag.Fragment {
			return []frag.Fragment{stmt.Set("status", ex.Col("status"))}
		})

	sql, args := upsert.SQL()
	fmt.Println(sql)
	fmt.Println(args)
	// Output:
	// INSERT INTO "tasks" ("title", "status")
	// VALUES ($1, $2)
	// ON CONFLICT ("title") DO UPDATE SET "status" = "excluded"."status"
	// [write docs open]
}
