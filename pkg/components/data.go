package components

import (
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/render"
	"github.com/goliatone/go-cmsfront/pkg/render/template"
)

// NewsSource lists news posts newest first. *content.Repository satisfies it.
type NewsSource interface {
	News(locale string, limit int) []content.NewsPost
}

// ComponentData carries the shared state passed to every component renderer
// while a page is composed.
type ComponentData struct {
	Template template.TemplateRenderer
	// ThemePartials maps partial keys (for example "components.input") to
	// replacement template names supplied by the active theme.
	ThemePartials map[string]string
	Options       render.RenderOptions
	Page          content.Page
	News          NewsSource
	// ContactEndpoint is where the progressive-enhancement script posts the
	// JSON payload.
	ContactEndpoint string

	// RenderBlock runs a block through the block dispatcher.
	RenderBlock func(block content.Block) (string, error)
	// RenderComponent renders a registered component by name.
	RenderComponent func(name string, view any) (string, error)
}
