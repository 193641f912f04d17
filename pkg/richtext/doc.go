// Package richtext turns CMS rich-text trees and markdown fields into
// sanitized HTML fragments ready to embed in templates.
package richtext
