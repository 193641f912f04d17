package gotemplate

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cmsfront/pkg/richtext"
)

func registerDefaultFilters() {
	filters := map[string]pongo2.FilterFunction{
		"trim":     filterTrim,
		"richtext": filterRichText,
		"markdown": filterMarkdown,
		"datefmt":  filterDateFormat,
	}
	for name, fn := range filters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterRichText renders a rich-text tree. View data reaches templates as
// decoded JSON, so the tree is re-read from its JSON form.
func filterRichText(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}

	var doc *richtext.Document
	switch v := in.Interface().(type) {
	case *richtext.Document:
		doc = v
	case richtext.Document:
		doc = &v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:richtext", OrigError: err}
		}
		doc = &richtext.Document{}
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, &pongo2.Error{Sender: "filter:richtext", OrigError: err}
		}
	}
	return pongo2.AsSafeValue(richtext.HTML(doc)), nil
}

func filterMarkdown(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := richtext.Markdown(in.String())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:markdown", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

// filterDateFormat formats an RFC3339 timestamp (or time.Time) with a Go
// layout, defaulting to "2.1.2006".
func filterDateFormat(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	layout := "2.1.2006"
	if param != nil && param.String() != "" {
		layout = param.String()
	}

	var ts time.Time
	switch v := in.Interface().(type) {
	case time.Time:
		ts = v
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return pongo2.AsValue(v), nil
		}
		ts = parsed
	default:
		return pongo2.AsValue(in.String()), nil
	}
	if ts.IsZero() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(ts.Format(layout)), nil
}
