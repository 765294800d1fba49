package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemer/internal/migration"
)

func names(defs []migration.Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Name
	}
	return out
}

func defsNamed(ns ...string) []migration.Definition {
	defs := make([]migration.Definition, len(ns))
	for i, n := range ns {
		defs[i] = migration.Definition{Name: n, New: newNoop}
	}
	return defs
}

func TestNatural(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2_Y", "10_Z", -1},
		{"10_Z", "2_Y", 1},
		{"1_A", "1_A", 0},
		{"1_A", "1_B", -1},
		{"V2", "V10", -1},
		{"1_A", "1_A_Extra", -1},
		{"01_A", "1_A", -1},
		{"20240101_Init", "20240102_Init", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Natural(tt.a, tt.b))
		})
	}
}

func TestSort(t *testing.T) {
	natural := defsNamed("10_J", "2_B", "1_A", "9_I")
	migration.Sort(natural, migration.Natural)
	assert.Equal(t, []string{"1_A", "2_B", "9_I", "10_J"}, names(natural))

	lexical := defsNamed("10_J", "2_B", "1_A", "9_I")
	migration.Sort(lexical, migration.Lexical)
	assert.Equal(t, []string{"10_J", "1_A", "2_B", "9_I"}, names(lexical))
}

func TestParseOrdering(t *testing.T) {
	for _, v := range []string{"", "natural", " Natural "} {
		order, err := migration.ParseOrdering(v)
		require.NoError(t, err)
		assert.Equal(t, -1, order("2_A", "10_A"), v)
	}

	order, err := migration.ParseOrdering("lexical")
	require.NoError(t, err)
	assert.Equal(t, 1, order("2_A", "10_A"))

	_, err = migration.ParseOrdering("semver")
	assert.Error(t, err)
}
