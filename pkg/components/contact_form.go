package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-cmsfront/pkg/contact"
	"github.com/goliatone/go-cmsfront/pkg/render"
)

type hiddenInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type contactFormView struct {
	Action       string        `json:"action"`
	Endpoint     string        `json:"endpoint"`
	SuccessLabel string        `json:"successLabel"`
	FailureLabel string        `json:"failureLabel"`
	SendingLabel string        `json:"sendingLabel"`
	Hidden       []hiddenInput `json:"hidden"`
	Honeypot     string        `json:"honeypot"`
	FormErrors   []string      `json:"formErrors,omitempty"`
	Controls     []string      `json:"controls"`
	Button       string        `json:"button"`
	Status       string        `json:"status"`
}

type contactControl struct {
	component string
	name      string
	inputType string
	labelKey  string
}

var contactControls = []contactControl{
	{component: NameInput, name: contact.FieldName, inputType: "text", labelKey: "contact.name"},
	{component: NameInput, name: contact.FieldEmail, inputType: "email", labelKey: "contact.email"},
	{component: NameSelect, name: contact.FieldCategory, labelKey: "contact.category.label"},
	{component: NameInput, name: contact.FieldSubject, inputType: "text", labelKey: "contact.subject"},
	{component: NameTextarea, name: contact.FieldMessage, labelKey: "contact.message"},
	{component: NameCheckbox, name: contact.FieldAgreedTerms, labelKey: "contact.terms"},
}

// contactFormRenderer renders the contact form. Values, field errors, and the
// status label come from the render options so a browser post can re-render
// the form with its outcome.
func contactFormRenderer(buf *bytes.Buffer, _ any, data ComponentData) error {
	opts := data.Options

	controls := make([]string, 0, len(contactControls))
	for _, control := range contactControls {
		html, err := data.RenderComponent(control.component, contactField(control, opts))
		if err != nil {
			return err
		}
		controls = append(controls, html)
	}

	honeypot, err := data.RenderComponent(NameInput, Field{
		ID:    contact.HoneypotInput,
		Name:  contact.HoneypotInput,
		Type:  "text",
		Label: opts.T("contact.botField"),
		Value: formValue(opts.Values, contact.FieldBotField),
	})
	if err != nil {
		return err
	}
	button, err := data.RenderComponent(NameButton, Button{Type: "submit", Label: opts.T("contact.send")})
	if err != nil {
		return err
	}
	status, err := data.RenderComponent(NameParagraph, Paragraph{Type: "small", Text: opts.Status, Live: true})
	if err != nil {
		return err
	}

	hidden := render.MergeHiddenFields(opts.Hidden,
		render.PageField(data.Page.Slug),
		render.LocaleField(opts.Locale),
	)
	inputs := make([]hiddenInput, 0, len(hidden))
	for _, field := range render.SortedHiddenFields(hidden) {
		inputs = append(inputs, hiddenInput{Name: field.Name, Value: field.Value})
	}

	formErrors := make([]string, 0, len(opts.FormErrors))
	for _, key := range opts.FormErrors {
		formErrors = append(formErrors, opts.T(key))
	}

	endpoint := data.ContactEndpoint
	if endpoint == "" {
		endpoint = contact.DefaultEndpoint
	}

	return renderTemplate(buf, "components.contactForm", templatePrefix+"blocks/contact_form.tpl", contactFormView{
		Action:       ContactActionPath(opts.Locale),
		Endpoint:     endpoint,
		SuccessLabel: opts.T(contact.LabelSuccess),
		FailureLabel: opts.T(contact.LabelFailure),
		SendingLabel: opts.T("contact.sending"),
		Hidden:       inputs,
		Honeypot:     honeypot,
		FormErrors:   formErrors,
		Controls:     controls,
		Button:       button,
		Status:       status,
	}, data)
}

// ContactActionPath is where the contact form posts without JavaScript.
func ContactActionPath(locale string) string {
	return "/" + strings.Trim(strings.TrimSpace(locale), "/") + "/contact"
}

func contactField(control contactControl, opts render.RenderOptions) Field {
	field := Field{
		ID:        control.name,
		Name:      control.name,
		Type:      control.inputType,
		Label:     opts.T(control.labelKey),
		Value:     formValue(opts.Values, control.name),
		Mandatory: true,
	}
	for _, key := range opts.Errors[control.name] {
		field.Errors = append(field.Errors, opts.T(key))
	}

	switch control.component {
	case NameSelect:
		selected := contact.Category(field.Value)
		if !selected.Valid() {
			selected = contact.DefaultCategory
		}
		field.Value = string(selected)
		for _, category := range contact.Categories {
			field.Options = append(field.Options, SelectOption{
				Value:    string(category),
				Label:    opts.T(category.LabelKey()),
				Selected: category == selected,
			})
		}
	case NameCheckbox:
		field.Checked = formChecked(opts.Values, control.name)
		field.Value = "true"
	}
	return field
}

func formValue(values map[string]any, name string) string {
	if values == nil {
		return ""
	}
	value, ok := values[name]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func formChecked(values map[string]any, name string) bool {
	switch v := values[name].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}
