package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/aspectgo/internal/aspect"
)

// Factory builds the hooks of one advice from its plan parameters.
type Factory func(ctx context.Context, params Params) (aspect.Hooks, error)

// Module is the interface every advice package implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the advice factories of a single application instance.
type Registry struct {
	advice map[string]Factory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{advice: make(map[string]Factory)}
}

// RegisterAdvice registers the factory for an advice name. Registering the
// same name twice is a programming error.
func (r *Registry) RegisterAdvice(name string, factory Factory) {
	if _, exists := r.advice[name]; exists {
		panic(fmt.Sprintf("advice with name '%s' already registered", name))
	}
	if factory == nil {
		panic(fmt.Sprintf("advice '%s' registered with a nil factory", name))
	}
	slog.Debug("Registering advice.", "name", name)
	r.advice[name] = factory
}

// Advice returns the factory registered under name.
func (r *Registry) Advice(name string) (Factory, bool) {
	f, ok := r.advice[name]
	return f, ok
}

// Names returns every registered advice name, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.advice))
	for name := range r.advice {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
