package pipeline

import (
	"context"
	"sort"

	"github.com/promptner/promptner/internal/config"
)

// Factory builds a pipeline component from its configuration section.
// name is the component's name in the pipeline descriptor, used in errors.
type Factory func(ctx context.Context, name string, cfg config.ComponentConfig) (Component, error)

// Registry maps factory identifiers to constructors. The configuration
// names a factory per component; assembly resolves it here and fails for
// anything unregistered; there is no silent fallback.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given identifier.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered factory identifiers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with the built-in factories.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("llm_ner", newNERComponent)
	return r
}
