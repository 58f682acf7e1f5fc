package stage

import (
	"fmt"
	"sort"
	"sync"
)

// Registry provides named stage lookup for config-driven chain construction.
type Registry struct {
	mu     sync.RWMutex
	stages map[string]Stage
}

// NewRegistry creates a registry preloaded with the input, transform and
// output pass-through stages and the numeric filters.
func NewRegistry() *Registry {
	r := &Registry{stages: make(map[string]Stage)}
	for _, s := range append(Standard(), Filters()...) {
		r.Register(s)
	}
	return r
}

// Register adds a stage under its own name, replacing any previous entry.
func (r *Registry) Register(s Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[s.Name()] = s
}

// Get retrieves a stage by name.
func (r *Registry) Get(name string) (Stage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stages[name]
	return s, ok
}

// List returns sorted names of all registered stages.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.stages))
	for name := range r.stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build resolves names into a new chain, failing on the first unknown name.
func (r *Registry) Build(names ...string) (*Chain, error) {
	c := NewChain()
	for _, name := range names {
		s, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("stage: %q is not registered (known: %v)", name, r.List())
		}
		c.Add(s)
	}
	return c, nil
}
