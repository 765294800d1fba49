package engine_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemer/internal/engine"
	"schemer/internal/migration"
	"schemer/internal/schema"
)

// -- testing double for migrations ----------

type funcMigration struct {
	up   func(b *schema.Builder)
	down func(b *schema.Builder)
}

func (m funcMigration) Up(b *schema.Builder) {
	if m.up != nil {
		m.up(b)
	}
}

func (m funcMigration) Down(b *schema.Builder) {
	if m.down != nil {
		m.down(b)
	}
}

// tableMigration creates table on Up and drops it on Down.
func tableMigration(name, table string) migration.Definition {
	return migration.Definition{
		Name: name,
		New: func() migration.Migration {
			return funcMigration{
				up: func(b *schema.Builder) {
					b.CreateTable(table).Column("Id").Int32().NotNull()
				},
				down: func(b *schema.Builder) {
					b.DropTable(table)
				},
			}
		},
	}
}

// lettered returns n migrations named "1_A", "2_B", ... in shuffled
// registration order.
func lettered(n int) []migration.Definition {
	defs := make([]migration.Definition, 0, n)
	for i := n; i >= 1; i-- {
		letter := string(rune('A' + (i-1)%26))
		defs = append(defs, tableMigration(fmt.Sprintf("%d_%s", i, letter), "T"+letter))
	}
	return defs
}

func selectedNames(sel *engine.Selection) []string {
	out := make([]string, len(sel.Migrations))
	for i, m := range sel.Migrations {
		out[i] = m.Name
	}
	return out
}

//
// -- Tests for Selector.Select() ------------
//

func TestSelect_NoBoundsSelectsAllAscending(t *testing.T) {
	sel, err := engine.NewSelector().Select(lettered(5), "", "")
	require.NoError(t, err)

	assert.Equal(t, migration.Up, sel.Direction)
	assert.Equal(t, []string{"1_A", "2_B", "3_C", "4_D", "5_E"}, selectedNames(sel))
}

func TestSelect_SameBoundsSelectNothing(t *testing.T) {
	defs := lettered(5)
	for _, d := range defs {
		t.Run(d.Name, func(t *testing.T) {
			sel, err := engine.NewSelector().Select(defs, d.Name, d.Name)
			require.NoError(t, err)
			assert.Equal(t, migration.Up, sel.Direction)
			assert.Empty(t, sel.Migrations)
		})
	}
}

func TestSelect_Ranges(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantDir  migration.Direction
		want     []string
	}{
		{"up from start to k", "", "3_C", migration.Up, []string{"1_A", "2_B", "3_C"}},
		{"up from j to end", "2_B", "", migration.Up, []string{"3_C", "4_D", "5_E"}},
		{"up from j to k", "1_A", "4_D", migration.Up, []string{"2_B", "3_C", "4_D"}},
		{"up adjacent", "2_B", "3_C", migration.Up, []string{"3_C"}},
		{"up from last", "5_E", "", migration.Up, []string{}},
		{"down from k to j", "4_D", "1_A", migration.Down, []string{"4_D", "3_C", "2_B"}},
		{"down adjacent", "3_C", "2_B", migration.Down, []string{"3_C"}},
		{"down everything but first", "5_E", "1_A", migration.Down, []string{"5_E", "4_D", "3_C", "2_B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := engine.NewSelector().Select(lettered(5), tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDir, sel.Direction)
			assert.Equal(t, tt.want, selectedNames(sel))
		})
	}
}

func TestSelect_DownMaterializesDown(t *testing.T) {
	sel, err := engine.NewSelector().Select(lettered(3), "3_C", "1_A")
	require.NoError(t, err)

	require.Len(t, sel.Migrations, 2)
	for _, m := range sel.Migrations {
		require.Len(t, m.Statements, 1)
		_, ok := m.Statements[0].(*schema.DropTable)
		assert.True(t, ok, m.Name)
	}
}

func TestSelect_Errors(t *testing.T) {
	_, err := engine.NewSelector().Select(nil, "", "")
	assert.ErrorIs(t, err, engine.ErrNoMigrations)

	_, err = engine.NewSelector().Select(lettered(3), "9_Z", "")
	assert.ErrorIs(t, err, engine.ErrMigrationNotFound)

	_, err = engine.NewSelector().Select(lettered(3), "", "nope")
	assert.ErrorIs(t, err, engine.ErrMigrationNotFound)
}

func TestSelect_Ordering(t *testing.T) {
	defs := lettered(11)

	natural, err := engine.NewSelector().Select(defs, "9_I", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"10_J", "11_K"}, selectedNames(natural))

	lexical, err := engine.NewSelector(engine.WithOrdering(migration.Lexical)).Select(defs, "", "2_B")
	require.NoError(t, err)
	assert.Equal(t, []string{"10_J", "11_K", "1_A", "2_B"}, selectedNames(lexical))
}

func TestSelect_BuilderErrorAborts(t *testing.T) {
	defs := []migration.Definition{{
		Name: "1_Broken",
		New: func() migration.Migration {
			return funcMigration{up: func(b *schema.Builder) {
				b.CreateTable("Book").
					Column("Id").Int32().NotNull().
					Column("Id").Int32().NotNull()
			}}
		},
	}}

	_, err := engine.NewSelector().Select(defs, "", "")
	require.ErrorIs(t, err, schema.ErrColumnExists)
	assert.Contains(t, err.Error(), "1_Broken")
}

func TestSelect_FreshInstancePerMaterialization(t *testing.T) {
	calls := 0
	defs := []migration.Definition{{
		Name: "1_A",
		New: func() migration.Migration {
			calls++
			return funcMigration{}
		},
	}}

	_, err := engine.NewSelector().Select(defs, "", "")
	require.NoError(t, err)
	_, err = engine.NewSelector().Select(defs, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSelect_NilMigration(t *testing.T) {
	defs := []migration.Definition{{
		Name: "1_A",
		New:  func() migration.Migration { return nil },
	}}

	_, err := engine.NewSelector().Select(defs, "", "")
	assert.ErrorIs(t, err, engine.ErrNilMigration)
}

func TestSelect_Progress(t *testing.T) {
	var seen []string
	sel, err := engine.NewSelector(engine.WithProgress(func(name string) {
		seen = append(seen, name)
	})).Select(lettered(3), "", "")
	require.NoError(t, err)
	assert.Equal(t, selectedNames(sel), seen)
}

func TestSelect_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []migration.Definition
		err  error
	}{
		{"name too long", append(lettered(1), tableMigration(strings.Repeat("x", migration.MaxNameLength+1), "TX")), migration.ErrNameTooLong},
		{"blank name", append(lettered(1), tableMigration(" ", "TX")), migration.ErrBlankName},
		{"duplicate", []migration.Definition{tableMigration("1_A", "TA"), tableMigration("1_A", "TB")}, migration.ErrDuplicateName},
		{"duplicate ignoring case", []migration.Definition{tableMigration("1_A", "TA"), tableMigration("1_a", "TB")}, migration.ErrDuplicateName},
		{"missing constructor", append(lettered(1), migration.Definition{Name: "2_B"}), migration.ErrMissingFactory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := engine.NewSelector().Select(tt.defs, "", "")
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, sel)

			_, _, err = engine.NewSelector().Plan(tt.defs, "", "")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSelect_MarkersIgnoreCase(t *testing.T) {
	sel, err := engine.NewSelector().Select(lettered(5), "2_b", "4_d")
	require.NoError(t, err)
	assert.Equal(t, []string{"3_C", "4_D"}, selectedNames(sel))

	sel, err = engine.NewSelector().Select(lettered(5), "4_D", "2_b")
	require.NoError(t, err)
	assert.Equal(t, migration.Down, sel.Direction)
	assert.Equal(t, []string{"4_D", "3_C"}, selectedNames(sel))
}
