package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry manages renderers by name.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates a new, empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer to the registry.
func (r *Registry) Register(rd Renderer) error {
	if rd == nil {
		return fmt.Errorf("cannot register nil renderer")
	}
	name := strings.ToLower(rd.Name())
	if name == "" {
		return fmt.Errorf("renderer name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("renderer already registered: %s", name)
	}

	r.renderers[name] = rd
	return nil
}

// Get returns a renderer by name. Names are case-insensitive.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rd, ok := r.renderers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("renderer not found: %s", name)
	}
	return rd, nil
}

// List returns all registered renderer names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// ForExtension returns the renderer writing files with the given extension,
// e.g. ".md". Matching is case-insensitive.
func (r *Registry) ForExtension(ext string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext = strings.ToLower(ext)
	for _, name := range r.sortedNames() {
		if rd := r.renderers[name]; rd.Extension() == ext {
			return rd, true
		}
	}
	return nil, false
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[strings.ToLower(name)]
	return ok
}

// Count returns the number of registered renderers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.renderers)
}

// Unregister removes a renderer from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := r.renderers[key]; !ok {
		return fmt.Errorf("renderer not found: %s", name)
	}
	delete(r.renderers, key)
	return nil
}

// DefaultRegistry is the global renderer registry, holding every built-in format.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, rd := range []Renderer{
		&HTMLRenderer{},
		&MarkdownRenderer{},
		&PDFRenderer{},
		&JSONRenderer{},
		&YAMLRenderer{},
		&TextRenderer{},
	} {
		if err := r.Register(rd); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a renderer to the default registry.
func Register(rd Renderer) error {
	return DefaultRegistry.Register(rd)
}

// Get returns a renderer from the default registry.
func Get(name string) (Renderer, error) {
	return DefaultRegistry.Get(name)
}

// List returns all renderer names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// ForExtension returns the default registry's renderer for ext.
func ForExtension(ext string) (Renderer, bool) {
	return DefaultRegistry.ForExtension(ext)
}
