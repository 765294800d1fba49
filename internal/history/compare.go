package history

import (
	"sort"
	"time"

	"schemer/internal/migration"
)

type Status uint

const (
	Pending Status = iota
	Applied
	// Missing is recorded in the database but not registered in this build.
	Missing
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case Missing:
		return "missing"
	default:
		return "pending"
	}
}

type State struct {
	Name      string
	Status    Status
	AppliedOn time.Time
}

// Report is the outcome of Compare.
type Report struct {
	States       []State
	AppliedCount uint
	PendingCount uint
	MissingCount uint
}

// Compare lines up registered definitions with history entries. States are
// sorted with order; missing entries are sorted in among them by name.
func Compare(defs []migration.Definition, entries []Entry, order migration.Ordering) Report {
	if order == nil {
		order = migration.Natural
	}

	recorded := make(map[string]Entry, len(entries))
	for _, e := range entries {
		recorded[e.Name] = e
	}

	var report Report
	known := make(map[string]bool, len(defs))
	for _, d := range defs {
		known[d.Name] = true
		state := State{Name: d.Name, Status: Pending}
		if e, ok := recorded[d.Name]; ok {
			state.Status = Applied
			state.AppliedOn = e.AppliedOn
			report.AppliedCount++
		} else {
			report.PendingCount++
		}
		report.States = append(report.States, state)
	}

	for _, e := range entries {
		if known[e.Name] {
			continue
		}
		report.States = append(report.States, State{Name: e.Name, Status: Missing, AppliedOn: e.AppliedOn})
		report.MissingCount++
	}

	sortStates(report.States, order)
	return report
}

func sortStates(states []State, order migration.Ordering) {
	sort.SliceStable(states, func(i, j int) bool {
		return order(states[i].Name, states[j].Name) < 0
	})
}
