package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/stanza"
	"github.com/pthm/stanza/frag"
)

var tasks = stanza.Table{
	Name:       "tasks",
	Columns:    []string{"id", "title", "status", "updated_at"},
	PrimaryKey: []string{"id"},
}

func TestDeriveName(t *testing.T) {
	name := DeriveName(tasks, Before, []Event{OnUpdate()}, "set_updated_at")
	assert.Equal(t, "tasks_before_update_set_updated_at", name)

	name = DeriveName(tasks, After, []Event{OnInsert(), OnUpdate()}, "audit")
	assert.Equal(t, "tasks_after_insert_update_audit", name)

	// same inputs, same name
	again := DeriveName(tasks, After, []Event{OnInsert(), OnUpdate()}, "audit")
	assert.Equal(t, name, again)

	// hostile characters are flattened
	odd := stanza.Table{Name: "Weird Table"}
	assert.Equal(t, "weird_table_before_delete_x", DeriveName(odd, Before, []Event{OnDelete()}, "x"))
}

func TestTrigger_Render(t *testing.T) {
	fn := FunctionFor(tasks, Before, SetTimestampBody("updated_at"), OnUpdate())
	trg := NewTrigger(tasks, Before, OnUpdate()).ExecutesFunction(fn)

	sql, args := trg.SQL()
	assert.Empty(t, args)
	assert.Equal(t,
		`CREATE TRIGGER "tasks_before_update_set_updated_at" `+
			`BEFORE UPDATE ON "tasks" `+
			`FOR EACH ROW `+
			`EXECUTE FUNCTION "tasks_before_update_set_updated_at"()`,
		sql)
}

func TestTrigger_MultiEvent(t *testing.T) {
	trg := NewTrigger(tasks, After, OnInsert(), OnUpdate(), OnDelete()).
		Executes("audit_everything")

	sql, _ := trg.SQL()
	assert.Contains(t, sql, "AFTER INSERT OR UPDATE OR DELETE ON \"tasks\"")
	assert.Equal(t, "tasks_after_insert_update_delete_audit_everything", trg.Name())
}

func TestTrigger_UpdateOfColumns(t *testing.T) {
	trg := NewTrigger(tasks, Before, OnUpdate("status", "title")).
		Executes("guard")

	sql, _ := trg.SQL()
	assert.Contains(t, sql, "BEFORE UPDATE OF status, title ON")
}

func TestTrigger_When(t *testing.T) {
	pred := frag.Ne(NewRow.Col("status"), OldRow.Col("status"))
	trg := NewTrigger(tasks, After, OnUpdate().When(pred)).
		Executes("notify_status")

	sql, _ := trg.SQL()
	assert.Contains(t, sql, "WHEN (NEW.status <> OLD.status)")
}

func TestTrigger_SharedWhenAcrossEvents(t *testing.T) {
	pred := frag.IsNotNull(NewRow.Col("status"))
	trg := NewTrigger(tasks, After, OnInsert().When(pred), OnUpdate().When(pred)).
		Executes("check_status")

	sql, _ := trg.SQL()
	assert.Contains(t, sql, "WHEN (NEW.status IS NOT NULL)")
}

func TestTrigger_ConflictingWhenPanics(t *testing.T) {
	trg := NewTrigger(tasks, After,
		OnInsert().When(frag.IsNotNull(NewRow.Col("status"))),
		OnUpdate().When(frag.IsNull(NewRow.Col("status"))),
	).Executes("broken")

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, IsConflictingWhenErr(err))
	}()
	trg.Render()
}

func TestTrigger_MissingFunctionPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, IsMissingFunctionErr(err))
	}()
	NewTrigger(tasks, Before, OnUpdate()).Render()
}

func TestTrigger_NoEventsPanics(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	NewTrigger(tasks, Before).Executes("fn").Render()
}

func TestTrigger_ForEachStatement(t *testing.T) {
	trg := NewTrigger(tasks, After, OnTruncate()).
		ForEachStatement().
		Executes("log_truncate")

	sql, _ := trg.SQL()
	assert.Contains(t, sql, "AFTER TRUNCATE ON")
	assert.Contains(t, sql, "FOR EACH STATEMENT")
}

func TestTrigger_Named(t *testing.T) {
	trg := NewTrigger(tasks, Before, OnUpdate()).
		Named("my_trigger").
		Executes("fn")

	assert.Equal(t, "my_trigger", trg.Name())
	sql, _ := trg.SQL()
	assert.Contains(t, sql, `CREATE TRIGGER "my_trigger"`)
}

func TestTrigger_Drop(t *testing.T) {
	trg := NewTrigger(tasks, Before, OnUpdate()).Named("my_trigger").Executes("fn")

	sql, args := trg.Drop().SQL()
	assert.Empty(t, args)
	assert.Equal(t, `DROP TRIGGER "my_trigger" ON "tasks"`, sql)

	sql, _ = trg.Drop().IfExists().SQL()
	assert.Equal(t, `DROP TRIGGER IF EXISTS "my_trigger" ON "tasks"`, sql)
}

func TestPseudoRow_Col(t *testing.T) {
	assert.Equal(t, "NEW.status", NewRow.Col("status").String())
	assert.Equal(t, "OLD.status", OldRow.Col("status").String())
	assert.Equal(t, `NEW."Mixed Case"`, NewRow.Col("Mixed Case").String())
}
