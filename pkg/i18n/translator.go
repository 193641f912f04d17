// Package i18n provides message catalogs, locale negotiation, and template
// helpers for localized rendering.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingTranslator is reported when a lookup happens without a
	// configured translator.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
	// ErrMissingTranslation is reported when a key has no message in the
	// requested locale or the fallback locale.
	ErrMissingTranslation = errors.New("i18n: translation missing")
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what string is shown when a lookup fails.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// MissingTranslationDefault returns a "default" hint from args when present,
// otherwise the key itself.
func MissingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		hints, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := hints["default"]; ok {
			if str := strings.TrimSpace(fmt.Sprint(fallback)); str != "" {
				return str
			}
		}
	}
	return key
}

// T translates key or falls back through onMissing. A nil handler uses
// MissingTranslationDefault.
func T(t Translator, locale, key string, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = MissingTranslationDefault
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}
