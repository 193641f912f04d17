package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/render"
	"github.com/goliatone/go-cmsfront/pkg/render/template"
)

// ContainerComponent picks the component that lays out a container. Unknown
// appearances use the default container.
func ContainerComponent(c content.Container) string {
	switch c.Appearance {
	case content.AppearanceCarousel:
		return NameCarousel
	case content.AppearanceFAQContainer:
		return NameFAQContainer
	case content.AppearancePetitions:
		return NamePetitions
	case content.AppearanceQuotesCarousel:
		return NameQuotesCarousel
	default:
		return NameContainer
	}
}

// BlockComponent picks the component that renders a block. An empty name
// means the block renders nothing.
func BlockComponent(b content.Block) string {
	switch b.Type {
	case content.BlockSpecialContent:
		switch b.Slug {
		case content.SlugContactForm:
			return NameContactForm
		case content.SlugRecentNews:
			return NameRecentNews
		case content.SlugNewsPostOverview:
			return NameNewsPostOverview
		}
		return ""
	case content.BlockText:
		return NameTextBlock
	case content.BlockFAQItem:
		return NameFAQItem
	case content.BlockPetition:
		return NamePetition
	case content.BlockQuote:
		return NameQuote
	default:
		return ""
	}
}

// Option configures a Composer.
type Option func(*Composer)

// WithRegistry replaces the default component registry.
func WithRegistry(registry *Registry) Option {
	return func(c *Composer) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithThemePartials overrides component templates by partial key.
func WithThemePartials(partials map[string]string) Option {
	return func(c *Composer) {
		c.partials = partials
	}
}

// WithNews sets the source of the news list blocks.
func WithNews(news NewsSource) Option {
	return func(c *Composer) {
		c.news = news
	}
}

// WithContactEndpoint sets the JSON endpoint used by the contact script.
func WithContactEndpoint(endpoint string) Option {
	return func(c *Composer) {
		c.contactEndpoint = strings.TrimSpace(endpoint)
	}
}

// Composer renders page content top-down: containers by appearance, blocks
// by type or special-content slug, then leaf elements.
type Composer struct {
	registry        *Registry
	template        template.TemplateRenderer
	partials        map[string]string
	news            NewsSource
	contactEndpoint string
}

// NewComposer builds a composer that renders through engine.
func NewComposer(engine template.TemplateRenderer, opts ...Option) (*Composer, error) {
	if engine == nil {
		return nil, fmt.Errorf("components: template renderer is required")
	}
	c := &Composer{
		registry: NewDefaultRegistry(),
		template: engine,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Registry exposes the registry used by the composer.
func (c *Composer) Registry() *Registry {
	return c.registry
}

// Result is the rendered content of a page.
type Result struct {
	HTML string
	// Components lists the components used, in first-use order, so the
	// layout can include their assets.
	Components []string
}

// Assets resolves the stylesheets and scripts of the used components.
func (c *Composer) Assets(result Result) ([]string, []Script) {
	return c.registry.Assets(result.Components)
}

// Page renders every container of the page.
func (c *Composer) Page(page content.Page, opts render.RenderOptions) (Result, error) {
	s := c.session(page, opts)
	var b strings.Builder
	for i, container := range page.Content {
		html, err := s.render(ContainerComponent(container), container)
		if err != nil {
			return Result{}, fmt.Errorf("components: page %q container %d: %w", page.Slug, i, err)
		}
		b.WriteString(html)
	}
	return Result{HTML: b.String(), Components: s.used}, nil
}

// Container renders a single container.
func (c *Composer) Container(container content.Container, opts render.RenderOptions) (Result, error) {
	s := c.session(content.Page{}, opts)
	html, err := s.render(ContainerComponent(container), container)
	if err != nil {
		return Result{}, err
	}
	return Result{HTML: html, Components: s.used}, nil
}

// Block renders a single block.
func (c *Composer) Block(block content.Block, opts render.RenderOptions) (Result, error) {
	s := c.session(content.Page{}, opts)
	html, err := s.render(BlockComponent(block), block)
	if err != nil {
		return Result{}, err
	}
	return Result{HTML: html, Components: s.used}, nil
}

// Render renders a registered component by name with an arbitrary view.
func (c *Composer) Render(name string, view any, opts render.RenderOptions) (string, error) {
	return c.session(content.Page{}, opts).render(name, view)
}

type session struct {
	composer *Composer
	data     ComponentData
	used     []string
	seen     map[string]struct{}
}

func (c *Composer) session(page content.Page, opts render.RenderOptions) *session {
	s := &session{
		composer: c,
		seen:     make(map[string]struct{}),
	}
	s.data = ComponentData{
		Template:        c.template,
		ThemePartials:   c.partials,
		Options:         opts,
		Page:            page,
		News:            c.news,
		ContactEndpoint: c.contactEndpoint,
		RenderBlock: func(block content.Block) (string, error) {
			return s.render(BlockComponent(block), block)
		},
		RenderComponent: s.render,
	}
	return s
}

func (s *session) render(name string, view any) (string, error) {
	if name == "" {
		return "", nil
	}
	descriptor, ok := s.composer.registry.Descriptor(name)
	if !ok {
		return "", nil
	}
	if _, exists := s.seen[descriptor.Name]; !exists {
		s.seen[descriptor.Name] = struct{}{}
		s.used = append(s.used, descriptor.Name)
	}

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, view, s.data); err != nil {
		return "", fmt.Errorf("components: render %q: %w", name, err)
	}
	return buf.String(), nil
}
