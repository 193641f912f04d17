package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Negotiator picks the best supported locale for an Accept-Language header.
type Negotiator struct {
	supported []string
	matcher   language.Matcher
}

// NewNegotiator builds a negotiator; the first supported locale is the
// default answer when nothing matches.
func NewNegotiator(supported ...string) *Negotiator {
	tags := make([]language.Tag, 0, len(supported))
	kept := make([]string, 0, len(supported))
	for _, locale := range supported {
		tag, err := language.Parse(strings.TrimSpace(locale))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, strings.TrimSpace(locale))
	}
	if len(kept) == 0 {
		tags = []language.Tag{language.English}
		kept = []string{DefaultLocale}
	}
	return &Negotiator{supported: kept, matcher: language.NewMatcher(tags)}
}

// Negotiate returns one of the supported locales.
func (n *Negotiator) Negotiate(acceptLanguage string) string {
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return n.supported[0]
	}
	_, index, confidence := n.matcher.Match(desired...)
	if confidence == language.No || index < 0 || index >= len(n.supported) {
		return n.supported[0]
	}
	return n.supported[index]
}

// Supported returns the locales in preference order.
func (n *Negotiator) Supported() []string {
	return append([]string(nil), n.supported...)
}
