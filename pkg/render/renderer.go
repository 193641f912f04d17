package render

import (
	"context"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

// Renderer turns a CMS page into a response body (HTML for the built-in page
// templates).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page content.Page, options RenderOptions) ([]byte, error)
}
