package render

import "github.com/goliatone/go-cmsfront/pkg/i18n"

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the content tree.
type RenderOptions struct {
	// Locale is the active site locale ("en", "fi", ...).
	Locale string
	// Path is the request path the page is served under.
	Path string
	// Translator resolves UI labels. Missing keys are routed through OnMissing.
	Translator i18n.Translator
	OnMissing  i18n.MissingTranslationHandler
	// Values pre-populates form controls keyed by field name, typically after
	// a browser form post is re-rendered.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors holds messages that could not be tied to a single field.
	FormErrors []string
	// Status is the localized outcome label of the last form submission.
	Status string
	// Hidden lists extra hidden inputs carried back by a browser post.
	Hidden map[string]string
}

// T translates key for the options' locale.
func (o RenderOptions) T(key string, args ...any) string {
	return i18n.T(o.Translator, o.Locale, key, o.OnMissing, args...)
}
