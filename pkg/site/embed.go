package site

import (
	"embed"
	"io/fs"
)

//go:embed templates/site/*.tpl templates/site/pages/*.tpl
var embeddedTemplates embed.FS

//go:embed themes/*.yaml
var embeddedThemes embed.FS

// TemplatesFS exposes the layout and page templates. Template names keep
// their "templates/site/" prefix.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
