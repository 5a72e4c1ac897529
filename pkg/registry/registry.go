// Package registry holds the flow definitions an assistant can invoke.
//
// A Registry is an explicit object: it is populated while the process starts,
// sealed, and then only read. Nothing is registered through package globals.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

var (
	// ErrNotFound is returned by Lookup for names that were never registered.
	ErrNotFound = errors.New("flow not found")
	// ErrDuplicateFlow is returned when a name is registered twice.
	ErrDuplicateFlow = errors.New("flow already registered")
	// ErrSealed is returned when registering after Seal.
	ErrSealed = errors.New("registry is sealed")
)

// Registry manages the available flows.
type Registry struct {
	mu     sync.RWMutex
	flows  map[string]*domain.Flow
	sealed bool
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		flows: make(map[string]*domain.Flow),
	}
}

// Register adds a flow to the registry.
// Names are unique: registering an existing name fails and leaves the first
// definition in place.
func (r *Registry) Register(flow *domain.Flow) error {
	if err := flow.Validate(); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register %q: %w", flow.Name, ErrSealed)
	}
	if _, exists := r.flows[flow.Name]; exists {
		return fmt.Errorf("register %q: %w", flow.Name, ErrDuplicateFlow)
	}
	r.flows[flow.Name] = flow
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(flows ...*domain.Flow) {
	for _, f := range flows {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// Seal makes the registry read-only. It is safe to call more than once.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*domain.Flow, error) {
	r.mu.RLock()
	flow, ok := r.flows[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return flow, nil
}

// List returns all flows sorted by name.
func (r *Registry) List() []*domain.Flow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Flow, 0, len(r.flows))
	for _, f := range r.flows {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered flow names in sorted order.
func (r *Registry) Names() []string {
	flows := r.List()
	names := make([]string, len(flows))
	for i, f := range flows {
		names[i] = f.Name
	}
	return names
}

// Len reports how many flows are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}
