package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-cmsfront/pkg/contact"
)

// Translate maps a label key to display text.
type Translate func(key string) string

func (t Translate) text(key string) string {
	if t == nil {
		return key
	}
	return t(key)
}

func required(t Translate) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(t.text("contact.error.required"))
		}
		return nil
	}
}

// AskSubmission walks through the contact form fields in the order the web
// form shows them. defaults pre-fills the answers; the honeypot is never
// asked.
func AskSubmission(ctx context.Context, driver Driver, t Translate, defaults contact.Submission) (contact.Submission, error) {
	s := defaults.Normalize()
	var err error

	if s.Name, err = driver.Input(ctx, InputConfig{
		Message:   t.text("contact.name"),
		Default:   s.Name,
		Validator: required(t),
	}); err != nil {
		return contact.Submission{}, err
	}
	if s.Email, err = driver.Input(ctx, InputConfig{
		Message:   t.text("contact.email"),
		Default:   s.Email,
		Validator: required(t),
	}); err != nil {
		return contact.Submission{}, err
	}

	labels := make([]string, len(contact.Categories))
	selected := 0
	for i, category := range contact.Categories {
		labels[i] = t.text(category.LabelKey())
		if category == s.Category {
			selected = i
		}
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:      t.text("contact.category.label"),
		Options:      labels,
		DefaultIndex: selected,
	})
	if err != nil {
		return contact.Submission{}, err
	}
	if idx >= 0 && idx < len(contact.Categories) {
		s.Category = contact.Categories[idx]
	}

	if s.Subject, err = driver.Input(ctx, InputConfig{
		Message:   t.text("contact.subject"),
		Default:   s.Subject,
		Validator: required(t),
	}); err != nil {
		return contact.Submission{}, err
	}
	if s.Message, err = driver.TextArea(ctx, TextAreaConfig{
		Message: t.text("contact.message"),
		Default: s.Message,
	}); err != nil {
		return contact.Submission{}, err
	}
	if s.AgreedTerms, err = driver.Confirm(ctx, ConfirmConfig{
		Message: t.text("contact.terms"),
		Default: s.AgreedTerms,
	}); err != nil {
		return contact.Submission{}, err
	}

	s.BotField = ""
	return s.Normalize(), nil
}

// Run asks for a submission, validates it, and sends it once through sender.
// Validation problems are printed and returned without sending.
func Run(ctx context.Context, driver Driver, sender contact.Submitter, t Translate, defaults contact.Submission) (contact.Outcome, error) {
	submission, err := AskSubmission(ctx, driver, t, defaults)
	if err != nil {
		return 0, err
	}

	if err := contact.NewValidator().Validate(submission); err != nil {
		var invalid *contact.ValidationError
		if errors.As(err, &invalid) {
			fields := make([]string, 0, len(invalid.Fields))
			for field := range invalid.Fields {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				for _, key := range invalid.Fields[field] {
					if infoErr := driver.Info(ctx, fmt.Sprintf("%s: %s", field, t.text(key))); infoErr != nil {
						return 0, infoErr
					}
				}
			}
		}
		return 0, err
	}

	form := contact.NewForm()
	form.Values = submission
	if err := driver.Info(ctx, t.text("contact.sending")); err != nil {
		return 0, err
	}
	outcome, err := form.Submit(ctx, sender, t.text)
	if infoErr := driver.Info(ctx, form.StatusLabel); infoErr != nil && err == nil {
		err = infoErr
	}
	return outcome, err
}
