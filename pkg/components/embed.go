package components

import (
	"embed"
	"io/fs"
)

//go:embed templates/components/elements/*.tpl templates/components/containers/*.tpl templates/components/blocks/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName     = "cmsfront.css"
	CarouselScriptName = "carousel.js"
	ContactScriptName  = "contact.js"
)

// TemplatesFS exposes the embedded component templates. Template names keep
// their "templates/components/" prefix.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet and scripts.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
