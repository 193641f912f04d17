package components

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Renderer writes the HTML of one component into buf. view is the
// component-specific input: a content.Container, a content.Block, or one of
// the element views (Field, Title, Paragraph, Button).
type Renderer func(buf *bytes.Buffer, view any, data ComponentData) error

// Script is JavaScript a component needs on the page, either a file under
// the asset prefix or inline source.
type Script struct {
	Src    string
	Inline string
	Defer  bool
	Module bool
}

func (s Script) key() string {
	if s.Src != "" {
		return "src:" + s.Src
	}
	return "inline:" + s.Inline
}

// Descriptor is a registered component: how to render it and which
// stylesheets and scripts a page needs once it appears.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

func (d Descriptor) clone() Descriptor {
	d.Stylesheets = slices.Clone(d.Stylesheets)
	d.Scripts = slices.Clone(d.Scripts)
	return d
}

// Registry maps container appearances, block types, special-content slugs,
// and element names to descriptors. Lookups ignore case because the CMS
// spells discriminators inconsistently.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Descriptor)}
}

// Clone copies the registry so a caller can override components without
// touching the shared defaults.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &Registry{entries: make(map[string]Descriptor, len(r.entries))}
	for key, descriptor := range r.entries {
		out.entries[key] = descriptor.clone()
	}
	return out
}

// Register adds or replaces a component.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	key := registryKey(name)
	switch {
	case key == "":
		return errors.New("components: component name is required")
	case descriptor.Renderer == nil:
		return fmt.Errorf("components: renderer for %q is nil", name)
	}
	descriptor.Name = strings.TrimSpace(name)

	r.mu.Lock()
	r.entries[key] = descriptor.clone()
	r.mu.Unlock()
	return nil
}

// MustRegister is Register for package-level defaults.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor returns a copy of the named component.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	descriptor, ok := r.entries[registryKey(name)]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}
	return descriptor.clone(), true
}

// Names lists registered components alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for _, descriptor := range r.entries {
		names = append(names, descriptor.Name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Assets collects what a page needs for the components it rendered. Each
// stylesheet and script appears once, in the order first used; unknown
// names are skipped.
func (r *Registry) Assets(used []string) ([]string, []Script) {
	if len(used) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var set assetSet
	for _, name := range used {
		if descriptor, ok := r.entries[registryKey(name)]; ok {
			set.add(descriptor)
		}
	}
	return set.stylesheets, set.scripts
}

type assetSet struct {
	seen        map[string]bool
	stylesheets []string
	scripts     []Script
}

func (s *assetSet) add(d Descriptor) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, href := range d.Stylesheets {
		if href == "" || s.seen["css:"+href] {
			continue
		}
		s.seen["css:"+href] = true
		s.stylesheets = append(s.stylesheets, href)
	}
	for _, script := range d.Scripts {
		if s.seen[script.key()] {
			continue
		}
		s.seen[script.key()] = true
		s.scripts = append(s.scripts, script)
	}
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
