// Package template defines the template engine seam used by page and
// component renderers. The pongo2-backed implementation lives in the
// gotemplate subpackage.
package template
