package mapping

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores mappings by name so descriptors loaded from YAML/JSON can
// refer to function mappings they cannot express inline.
type Registry struct {
	mu       sync.RWMutex
	mappings map[string]Mapping
}

// NewRegistry returns a registry with the built-in mappings registered.
func NewRegistry() *Registry {
	reg := &Registry{mappings: make(map[string]Mapping)}
	for _, m := range []Mapping{ColorHex(), TextAlign(), OnOffDisplay(), FontWeight()} {
		reg.MustRegister(m.Name(), m)
	}
	return reg
}

// Register adds m under name. Duplicate names return an error.
func (r *Registry) Register(name string, m Mapping) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("mapping: name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mappings == nil {
		r.mappings = make(map[string]Mapping)
	}
	if _, exists := r.mappings[name]; exists {
		return fmt.Errorf("mapping: %q already registered", name)
	}
	r.mappings[name] = Named(name, m)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, m Mapping) {
	if err := r.Register(name, m); err != nil {
		panic(err)
	}
}

// Get retrieves a mapping by name.
func (r *Registry) Get(name string) (Mapping, error) {
	if r == nil {
		return Mapping{}, fmt.Errorf("mapping: %q not found", name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappings[strings.TrimSpace(name)]
	if !ok {
		return Mapping{}, fmt.Errorf("mapping: %q not found", name)
	}
	return m, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.mappings))
	for name := range r.mappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}
