package contact

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries per-field translation keys for a rejected
// submission.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("contact: invalid submission: %s", strings.Join(names, ", "))
}

// Validator checks submissions with struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator configures a validator that reports JSON field names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	return &Validator{validate: v}
}

// Validate returns a *ValidationError when s is not acceptable.
func (v *Validator) Validate(s Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("contact: validate: %w", err)
	}
	out := &ValidationError{Fields: make(map[string][]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = append(out.Fields[fe.Field()], messageKey(fe))
	}
	return out
}

// messageKey maps a failed rule onto a translation key.
func messageKey(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == FieldAgreedTerms {
			return "contact.error.terms"
		}
		return "contact.error.required"
	case "email":
		return "contact.error.email"
	case "max":
		return "contact.error.tooLong"
	case "category":
		return "contact.error.category"
	default:
		return "contact.error.invalid"
	}
}
