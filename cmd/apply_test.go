package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemer/internal/migration"
	"schemer/internal/schema"
)

type tableMigration string

func (m tableMigration) Up(b *schema.Builder) {
	b.CreateTable(string(m)).Column("Id").Int32().NotNull()
}

func (m tableMigration) Down(b *schema.Builder) {
	b.DropTable(string(m))
}

// useRegistry points the commands at a registry holding one table
// migration per name.
func useRegistry(t *testing.T, names ...string) {
	t.Helper()
	r := migration.NewRegistry()
	for _, name := range names {
		table := tableMigration("T" + name)
		r.Register(migration.Definition{Name: name, New: func() migration.Migration { return table }})
	}

	prev := registry
	registry = r
	t.Cleanup(func() { registry = prev })
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetArgs(args)

	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
		fromMigration, toMigration, outputFile, dryRun = "", "", "", false
	})

	err := RootCmd.Execute()
	return out.String(), err
}

func TestApply_DryRunPrintsScript(t *testing.T) {
	loadConfig(t, "migrations: {}\n")
	useRegistry(t, "1_A", "2_B", "3_C")

	script, err := runRoot(t, "apply", "--dry-run", "--to", "2_B")
	require.NoError(t, err)

	assert.Contains(t, script, "SET XACT_ABORT ON;")
	assert.Contains(t, script, "WHERE [MigrationName] = N'1_A')")
	assert.Contains(t, script, "CREATE TABLE [dbo].[T1_A]")
	assert.Contains(t, script, "WHERE [MigrationName] = N'2_B')")
	assert.NotContains(t, script, "3_C")
	assert.Contains(t, script, "COMMIT TRANSACTION;")
}

func TestApply_DryRunNeedsNoConnection(t *testing.T) {
	loadConfig(t, `
databases:
  - name: local
    dsn: sqlserver://sa:pw@unreachable:1433
    active: false
`)
	useRegistry(t, "1_A")

	script, err := runRoot(t, "apply", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, script, "N'1_A'")
}

func TestApply_NothingToDo(t *testing.T) {
	loadConfig(t, "migrations: {}\n")
	useRegistry(t, "1_A", "2_B")

	script, err := runRoot(t, "apply", "--dry-run", "--from", "2_B")
	require.NoError(t, err)
	assert.Empty(t, script)
}

func TestApply_InvalidRegistry(t *testing.T) {
	loadConfig(t, "migrations: {}\n")
	useRegistry(t, "1_A", "1_a")

	_, err := runRoot(t, "apply", "--dry-run")
	assert.ErrorIs(t, err, migration.ErrDuplicateName)
}
