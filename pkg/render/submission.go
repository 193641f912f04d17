package render

import (
	"fmt"
	"sort"
	"strings"
)

// Hidden input names understood by the browser form handlers.
const (
	HiddenPage   = "_page"
	HiddenLocale = "_locale"
)

// HiddenField represents a hidden form input emitted alongside the visible
// controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// PageField records the slug of the page that hosts a form so a browser post
// can re-render the same page with the outcome.
func PageField(slug string) HiddenField {
	return Hidden(HiddenPage, slug)
}

// LocaleField records the active locale.
func LocaleField(locale string) HiddenField {
	return Hidden(HiddenLocale, locale)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		if key := strings.TrimSpace(name); key != "" {
			result = append(result, HiddenField{Name: key, Value: value})
		}
	}
	if len(result) == 0 {
		return nil
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
