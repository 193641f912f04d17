package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

// Registry stores page renderers by template name and resolves which one
// serves a given page.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry creates an empty registry. Pages without a dedicated renderer
// use the one registered under fallback.
func NewRegistry(fallback string) *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		fallback:  strings.TrimSpace(fallback),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// Resolve picks the renderer for page: an explicit Template wins, then a
// renderer named after the slug, then the fallback.
func (r *Registry) Resolve(page content.Page) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slug := page.Slug
	if slug == "" {
		slug = content.HomeSlug
	}
	for _, name := range []string{page.Template, slug, r.fallback} {
		if name == "" {
			continue
		}
		if renderer, ok := r.renderers[name]; ok {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("render: no renderer for page %q", slug)
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
