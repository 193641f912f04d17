package contact

import "strings"

// Category classifies a contact message.
type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryTickets   Category = "tickets"
	CategoryPetitions Category = "petitions"
	CategoryInfo      Category = "info"
	CategoryVolunteer Category = "volunteer"
	CategoryPress     Category = "press"
)

// DefaultCategory preselects the category control.
const DefaultCategory = CategoryGeneral

// Categories lists the selectable categories in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryTickets,
	CategoryPetitions,
	CategoryInfo,
	CategoryVolunteer,
	CategoryPress,
}

// LabelKey is the translation key of the category label.
func (c Category) LabelKey() string {
	return "contact.category." + string(c)
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Field names as they appear in the JSON payload.
const (
	FieldBotField    = "botField"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldCategory    = "category"
	FieldSubject     = "subject"
	FieldMessage     = "message"
	FieldAgreedTerms = "agreedTerms"
)

// Fields lists the payload keys in order.
var Fields = []string{
	FieldBotField,
	FieldName,
	FieldEmail,
	FieldCategory,
	FieldSubject,
	FieldMessage,
	FieldAgreedTerms,
}

// FormFields lists the keys a person fills in; the honeypot is excluded.
var FormFields = Fields[1:]

// HoneypotInput is the HTML input name of the bot field.
const HoneypotInput = "bot-field"

// Submission is the contact payload. Every key is always serialized.
type Submission struct {
	BotField    string   `json:"botField" form:"bot-field"`
	Name        string   `json:"name" form:"name" validate:"required,max=200"`
	Email       string   `json:"email" form:"email" validate:"required,email,max=320"`
	Category    Category `json:"category" form:"category" validate:"required,category"`
	Subject     string   `json:"subject" form:"subject" validate:"required,max=300"`
	Message     string   `json:"message" form:"message" validate:"required,max=10000"`
	AgreedTerms bool     `json:"agreedTerms" form:"agreedTerms" validate:"required"`
}

// Normalize trims text fields and fills in the default category.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
	s.Category = Category(strings.TrimSpace(string(s.Category)))
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	return s
}

// IsBot reports whether the honeypot field was filled in.
func (s Submission) IsBot() bool {
	return strings.TrimSpace(s.BotField) != ""
}

// Values exposes the submission keyed by field name for form re-rendering.
func (s Submission) Values() map[string]any {
	return map[string]any{
		FieldBotField:    s.BotField,
		FieldName:        s.Name,
		FieldEmail:       s.Email,
		FieldCategory:    string(s.Category),
		FieldSubject:     s.Subject,
		FieldMessage:     s.Message,
		FieldAgreedTerms: s.AgreedTerms,
	}
}
