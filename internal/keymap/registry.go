package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/oskey/internal/behavior"
)

// Registry holds behavior instances by name.
//
// Registration happens at startup; lookups happen on the dispatch goroutine.
type Registry struct {
	behaviors map[string]behavior.Behavior
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		behaviors: make(map[string]behavior.Behavior),
	}
}

// Register adds a behavior under name.
func (r *Registry) Register(name string, b behavior.Behavior) error {
	if _, exists := r.behaviors[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBehavior, name)
	}
	r.behaviors[name] = b
	return nil
}

// Get returns the behavior registered under name, or nil.
func (r *Registry) Get(name string) behavior.Behavior {
	return r.behaviors[name]
}

// Has returns true if a behavior is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.behaviors[name]
	return ok
}

// List returns all registered names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered behaviors.
func (r *Registry) Count() int {
	return len(r.behaviors)
}
