package engine

import (
	"errors"
	"fmt"
	"strings"

	"schemer/internal/migration"
	"schemer/internal/schema"
)

var (
	ErrNoMigrations      = errors.New("no migrations")
	ErrMigrationNotFound = errors.New("migration not found")
	ErrNilMigration      = errors.New("migration constructor returned nil")
)

// Selection is the ordered set of migrations to apply or revert, each
// already materialized. Order is processing order: ascending for Up,
// descending for Down.
type Selection struct {
	Direction  migration.Direction
	Migrations []migration.Compiled
}

type Selector struct {
	order      migration.Ordering
	onProgress func(name string)
}

type SelectorOption func(*Selector)

// WithOrdering replaces the default natural name ordering.
func WithOrdering(order migration.Ordering) SelectorOption {
	return func(s *Selector) {
		if order != nil {
			s.order = order
		}
	}
}

// WithProgress registers a callback invoked after each migration is
// materialized.
func WithProgress(fn func(name string)) SelectorOption {
	return func(s *Selector) {
		s.onProgress = fn
	}
}

func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{order: migration.Natural}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan resolves the (from, to) markers against defs sorted by name and
// returns the direction together with the definitions to process, in
// processing order. An empty marker means "no bound"; markers match names
// case-insensitively, like the registry and the history table. defs are
// checked with migration.Validate first.
//
// from names the last migration already applied and is never part of an Up
// selection. Up is chosen when either marker is empty or from does not come
// after to; otherwise the migrations after to up to and including from are
// reverted, newest first.
func (s *Selector) Plan(defs []migration.Definition, from, to string) (migration.Direction, []migration.Definition, error) {
	if len(defs) == 0 {
		return migration.Up, nil, ErrNoMigrations
	}
	if err := migration.Validate(defs); err != nil {
		return migration.Up, nil, err
	}

	sorted := make([]migration.Definition, len(defs))
	copy(sorted, defs)
	migration.Sort(sorted, s.order)

	fromIdx, err := indexOf(sorted, from)
	if err != nil {
		return migration.Up, nil, err
	}
	toIdx, err := indexOf(sorted, to)
	if err != nil {
		return migration.Up, nil, err
	}

	if fromIdx < 0 || toIdx < 0 || fromIdx <= toIdx {
		start := 0
		if fromIdx >= 0 {
			start = fromIdx + 1
		}
		end := len(sorted)
		if toIdx >= 0 {
			end = toIdx + 1
		}
		if end < start {
			end = start
		}
		return migration.Up, sorted[start:end], nil
	}

	picked := make([]migration.Definition, 0, fromIdx-toIdx)
	for i := fromIdx; i > toIdx; i-- {
		picked = append(picked, sorted[i])
	}
	return migration.Down, picked, nil
}

// Select plans the markers and then runs Up or Down on a fresh instance of
// every picked migration.
func (s *Selector) Select(defs []migration.Definition, from, to string) (*Selection, error) {
	dir, picked, err := s.Plan(defs, from, to)
	if err != nil {
		return nil, err
	}

	sel := &Selection{
		Direction:  dir,
		Migrations: make([]migration.Compiled, 0, len(picked)),
	}
	for _, def := range picked {
		compiled, err := Materialize(def, dir)
		if err != nil {
			return nil, err
		}
		sel.Migrations = append(sel.Migrations, compiled)
		if s.onProgress != nil {
			s.onProgress(def.Name)
		}
	}
	return sel, nil
}

// Materialize instantiates def and collects the statements of one Up or
// Down call. Builder errors abort before any SQL is generated.
func Materialize(def migration.Definition, dir migration.Direction) (migration.Compiled, error) {
	m := def.New()
	if m == nil {
		return migration.Compiled{}, fmt.Errorf("%q: %w", def.Name, ErrNilMigration)
	}

	b := schema.NewBuilder()
	if dir == migration.Down {
		m.Down(b)
	} else {
		m.Up(b)
	}
	if err := b.Err(); err != nil {
		return migration.Compiled{}, fmt.Errorf("migration %q (%s): %w", def.Name, dir, err)
	}

	return migration.Compiled{
		Name:       def.Name,
		Schema:     def.Schema,
		Statements: b.Statements(),
	}, nil
}

func indexOf(defs []migration.Definition, name string) (int, error) {
	if name == "" {
		return -1, nil
	}
	for i, d := range defs {
		if strings.EqualFold(d.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q: %w", name, ErrMigrationNotFound)
}
