package cmsfront

import (
	"io/fs"

	"github.com/goliatone/go-cmsfront/pkg/components"
)

// AssetsFS exposes the stylesheet, the carousel and contact scripts, and the
// social icons so Go applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(cmsfront.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return components.AssetsFS()
}
