package components

import (
	"bytes"
	"fmt"
	"strings"
)

const templatePrefix = "templates/components/"

// Component names. Containers and blocks are registered under their CMS
// discriminator so themes can override them by the same name.
const (
	NameInput     = "input"
	NameTextarea  = "textarea"
	NameSelect    = "select"
	NameCheckbox  = "checkbox"
	NameButton    = "button"
	NameTitle     = "title"
	NameParagraph = "paragraph"

	NameContainer      = "container"
	NameCarousel       = "carousel"
	NameFAQContainer   = "faqContainer"
	NamePetitions      = "petitions"
	NameQuotesCarousel = "quotesCarousel"

	NameTextBlock        = "textBlock"
	NameFAQItem          = "faqItem"
	NamePetition         = "petition"
	NameQuote            = "quote"
	NameContactForm      = "contactForm"
	NameRecentNews       = "recentNews"
	NameNewsPostOverview = "newsPostOverview"
)

// RecentNewsLimit is how many posts the recent news block lists.
const RecentNewsLimit = 3

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer("components.input", templatePrefix+"elements/input.tpl"),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer("components.textarea", templatePrefix+"elements/textarea.tpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer("components.select", templatePrefix+"elements/select.tpl"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer("components.checkbox", templatePrefix+"elements/checkbox.tpl"),
	})
	registry.MustRegister(NameButton, Descriptor{
		Renderer: templateComponentRenderer("components.button", templatePrefix+"elements/button.tpl"),
	})
	registry.MustRegister(NameTitle, Descriptor{
		Renderer: titleRenderer,
	})
	registry.MustRegister(NameParagraph, Descriptor{
		Renderer: templateComponentRenderer("components.paragraph", templatePrefix+"elements/paragraph.tpl"),
	})

	registry.MustRegister(NameContainer, Descriptor{
		Renderer:    sectionRenderer("default", "h4"),
		Stylesheets: []string{StylesheetName},
	})
	registry.MustRegister(NameFAQContainer, Descriptor{
		Renderer:    sectionRenderer("faq", "h2"),
		Stylesheets: []string{StylesheetName},
	})
	registry.MustRegister(NamePetitions, Descriptor{
		Renderer:    sectionRenderer("petitions", "h2"),
		Stylesheets: []string{StylesheetName},
	})
	registry.MustRegister(NameQuotesCarousel, Descriptor{
		Renderer:    quotesCarouselRenderer,
		Stylesheets: []string{StylesheetName},
		Scripts:     []Script{{Src: CarouselScriptName, Defer: true}},
	})
	registry.MustRegister(NameCarousel, Descriptor{
		Renderer:    carouselRenderer,
		Stylesheets: []string{StylesheetName},
		Scripts:     []Script{{Src: CarouselScriptName, Defer: true}},
	})

	registry.MustRegister(NameTextBlock, Descriptor{Renderer: textBlockRenderer})
	registry.MustRegister(NameFAQItem, Descriptor{Renderer: faqItemRenderer})
	registry.MustRegister(NamePetition, Descriptor{Renderer: petitionRenderer})
	registry.MustRegister(NameQuote, Descriptor{Renderer: quoteRenderer})
	registry.MustRegister(NameContactForm, Descriptor{
		Renderer: contactFormRenderer,
		Scripts:  []Script{{Src: ContactScriptName, Defer: true}},
	})
	registry.MustRegister(NameRecentNews, Descriptor{Renderer: newsListRenderer("recent", RecentNewsLimit)})
	registry.MustRegister(NameNewsPostOverview, Descriptor{Renderer: newsListRenderer("overview", 0)})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, view any, data ComponentData) error {
		return renderTemplate(buf, partialKey, templateName, view, data)
	}
}

func renderTemplate(buf *bytes.Buffer, partialKey, templateName string, view any, data ComponentData) error {
	if data.Template == nil {
		return fmt.Errorf("components: template renderer not configured for %q", templateName)
	}

	resolvedTemplate := templateName
	if data.ThemePartials != nil {
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolvedTemplate = candidate
		}
	}

	payload := map[string]any{
		"view":   view,
		"locale": data.Options.Locale,
	}
	rendered, err := data.Template.RenderTemplate(resolvedTemplate, payload)
	if err != nil {
		return fmt.Errorf("components: render template %q: %w", templateName, err)
	}
	buf.WriteString(rendered)
	return nil
}

// titleRenderer skips empty titles so containers without one do not emit an
// empty heading.
func titleRenderer(buf *bytes.Buffer, view any, data ComponentData) error {
	title, ok := view.(Title)
	if !ok {
		return fmt.Errorf("components: title expects Title, got %T", view)
	}
	if strings.TrimSpace(title.Text) == "" {
		return nil
	}
	payload := struct {
		Title
		Tag string `json:"tag"`
	}{Title: title, Tag: title.Tag()}
	return renderTemplate(buf, "components.title", templatePrefix+"elements/title.tpl", payload, data)
}
