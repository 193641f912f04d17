package components

import "strings"

// Field is the view of an input, textarea, select, or checkbox. Mandatory
// fields get a " *" label suffix and the required attribute.
type Field struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	Label     string   `json:"label"`
	Value     string   `json:"value"`
	Checked   bool     `json:"checked,omitempty"`
	Mandatory bool     `json:"mandatory,omitempty"`
	Options   []SelectOption `json:"options,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// SelectOption is a select choice.
type SelectOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Title is a heading. Type is one of h1..h6 or navTitle.
type Title struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Tag returns the HTML element used for the title type.
func (t Title) Tag() string {
	switch t.Type {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return t.Type
	case "navTitle":
		return "span"
	default:
		return "h2"
	}
}

// Paragraph is a block of plain text. Type "small" renders the compact
// variant used for captions and status labels.
type Paragraph struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
	// Live marks the paragraph as an aria-live region updated by scripts.
	Live bool `json:"live,omitempty"`
}

// Button is a form button.
type Button struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
}

// cssToken keeps a colour name usable inside a CSS custom property name.
func cssToken(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
