package cmsfront

import (
	"io/fs"

	"github.com/goliatone/go-cmsfront/pkg/components"
	"github.com/goliatone/go-cmsfront/pkg/site"
)

// EmbeddedTemplates exposes the built-in layout and page templates so callers
// can copy or extend them without importing the site package directly.
func EmbeddedTemplates() fs.FS {
	return site.TemplatesFS()
}

// ComponentTemplates exposes the built-in component templates.
func ComponentTemplates() fs.FS {
	return components.TemplatesFS()
}
