package providers

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages provider constructors and hands out configured instances.
// It is safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates a registry preloaded with the built-in backends.
func NewRegistry() *Registry {
	r := &Registry{
		constructors: make(map[string]Constructor),
	}
	r.Register("openai", func(apiKey, model, baseURL string) (Provider, error) {
		return NewOpenAI(apiKey, model, baseURL)
	})
	r.Register("anthropic", func(apiKey, model, baseURL string) (Provider, error) {
		return NewAnthropic(apiKey, model, baseURL)
	})
	r.Register("mock", func(_, model, _ string) (Provider, error) {
		return NewMockProvider(model), nil
	})
	return r
}

// Register adds or replaces a constructor under the given name.
func (r *Registry) Register(name string, constructor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[name] = constructor
}

// Get constructs a provider by name.
func (r *Registry) Get(name, apiKey, model, baseURL string) (Provider, error) {
	r.mu.RLock()
	constructor, ok := r.constructors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (known: %v)", name, r.Names())
	}
	return constructor(apiKey, model, baseURL)
}

// Names lists the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
