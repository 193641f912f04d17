package site

import (
	"github.com/goliatone/go-cmsfront/pkg/components"
	"github.com/goliatone/go-cmsfront/pkg/render/template/gotemplate"
)

// NewEngine builds a template engine that loads the layout, page, and
// component templates. Templates in a WithBaseDir directory take precedence
// over the embedded ones.
func NewEngine(opts ...gotemplate.Option) (*gotemplate.Engine, error) {
	base := []gotemplate.Option{
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithFS(components.TemplatesFS()),
	}
	return gotemplate.New(append(base, opts...)...)
}
