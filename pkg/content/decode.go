package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bundle is the on-disk/over-the-wire envelope holding one site per locale.
type Bundle struct {
	Sites []Site `json:"sites" yaml:"sites"`
}

// Decode parses a loaded document into locale bundles. YAML is selected by the
// source extension; everything else is decoded as JSON. A payload holding a
// single site object (with a locale) is accepted as a one-element bundle.
func Decode(doc Document) ([]Site, error) {
	raw := doc.Raw()
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("content: document is empty")
	}

	unmarshal := json.Unmarshal
	if isYAML(doc.Location()) {
		unmarshal = yaml.Unmarshal
	}

	var bundle Bundle
	if err := unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("content: decode %s: %w", doc.Location(), err)
	}
	if len(bundle.Sites) > 0 {
		return bundle.Sites, nil
	}

	var single Site
	if err := unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("content: decode %s: %w", doc.Location(), err)
	}
	if strings.TrimSpace(single.Locale) == "" {
		return nil, fmt.Errorf("content: %s holds no sites", doc.Location())
	}
	return []Site{single}, nil
}

func isYAML(location string) bool {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
