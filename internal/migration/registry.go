package migration

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds the migrations known to the host, usually filled from
// package init functions.
type Registry struct {
	mu   sync.RWMutex
	defs []Definition
}

// Default is the registry used by Register.
var Default = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds def to the default registry.
func Register(def Definition) {
	Default.Register(def)
}

// Register adds def. Names are validated when they are read by Definitions.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = append(r.defs, def)
}

// Definitions returns the registered definitions in registration order. It
// fails on the first invalid or duplicated name.
func (r *Registry) Definitions() ([]Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := Validate(r.defs); err != nil {
		return nil, err
	}
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out, nil
}

// Validate checks every name with ValidateName, rejects names that differ
// only in case and definitions without a constructor.
func Validate(defs []Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if err := ValidateName(def.Name); err != nil {
			return err
		}
		key := strings.ToLower(def.Name)
		if seen[key] {
			return fmt.Errorf("%q: %w", def.Name, ErrDuplicateName)
		}
		seen[key] = true
		if def.New == nil {
			return fmt.Errorf("%q: %w", def.Name, ErrMissingFactory)
		}
	}
	return nil
}
