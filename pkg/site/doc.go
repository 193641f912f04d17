// Package site renders complete HTML documents: the page templates (home,
// FAQ, generic page, news post, not found) wrapped in the shared layout with
// header, footer, SEO metadata, and theme variables.
//
// Page content itself is composed by the components package; this package
// only decides which page template applies and what surrounds it.
package site
