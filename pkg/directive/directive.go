// Package directive defines the row-transformation plugin contract shared
// by all directives: the ordered Row model, the parsed Arguments handoff,
// the Directive lifecycle, and a name-keyed registry of factories.
package directive

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Directive is one row-transformation step in a recipe pipeline.
//
// Lifecycle: Initialize is called exactly once per invocation with the
// parsed arguments, Execute is called once per row batch (possibly many
// times), and Destroy is called when the invocation is torn down. A
// directive must not be reused after Destroy.
type Directive interface {
	// Initialize validates arguments and builds per-invocation state.
	// Argument or construction failures are reported as *ParseError.
	Initialize(ctx context.Context, args Arguments) error

	// Execute transforms the batch in input order and returns it with the
	// same cardinality. Rows are mutated in place.
	Execute(ctx context.Context, rows []*Row) ([]*Row, error)

	// Destroy releases per-invocation resources, if any.
	Destroy()
}

// Factory constructs a fresh, uninitialized directive instance.
type Factory func() Directive

// Registry maps directive names to factories. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name, replacing any previous registration.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Create instantiates the named directive. Returns ErrUnknownDirective
// (wrapped) when no factory is registered under name.
func (r *Registry) Create(name string) (Directive, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDirective, name)
	}
	return f(), nil
}

// Names returns the registered directive names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
