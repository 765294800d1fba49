package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schemer/internal/history"
	"schemer/internal/migration"
	"schemer/internal/schema"
)

type noop struct{}

func (noop) Up(*schema.Builder)   {}
func (noop) Down(*schema.Builder) {}

func defs(names ...string) []migration.Definition {
	out := make([]migration.Definition, len(names))
	for i, n := range names {
		out[i] = migration.Definition{Name: n, New: func() migration.Migration { return noop{} }}
	}
	return out
}

func TestCompare(t *testing.T) {
	applied := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	report := history.Compare(
		defs("10_J", "2_B", "1_A"),
		[]history.Entry{
			{Name: "1_A", AppliedOn: applied},
			{Name: "3_Removed", AppliedOn: applied},
		},
		nil,
	)

	assert.Equal(t, []history.State{
		{Name: "1_A", Status: history.Applied, AppliedOn: applied},
		{Name: "2_B", Status: history.Pending},
		{Name: "3_Removed", Status: history.Missing, AppliedOn: applied},
		{Name: "10_J", Status: history.Pending},
	}, report.States)
	assert.Equal(t, uint(1), report.AppliedCount)
	assert.Equal(t, uint(2), report.PendingCount)
	assert.Equal(t, uint(1), report.MissingCount)
}

func TestCompare_Empty(t *testing.T) {
	report := history.Compare(nil, nil, migration.Lexical)
	assert.Empty(t, report.States)
	assert.Zero(t, report.AppliedCount+report.PendingCount+report.MissingCount)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", history.Pending.String())
	assert.Equal(t, "applied", history.Applied.String())
	assert.Equal(t, "missing", history.Missing.String())
}
