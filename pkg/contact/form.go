package contact

import (
	"context"
	"errors"
)

// Outcome is the result of a submission attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Label keys shown after a submission.
const (
	LabelSuccess = "contact.success"
	LabelFailure = "contact.failure"
)

// ErrInFlight is returned by Begin while a submission is pending.
var ErrInFlight = errors.New("contact: submission already in flight")

// Submitter delivers a submission. Client is the HTTP implementation.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// Form holds the state of one contact form: the field values, the status
// label of the last attempt, and whether a submission is in flight.
type Form struct {
	Values      Submission
	StatusLabel string
	Submitting  bool
}

// NewForm returns an empty form with the default category selected.
func NewForm() *Form {
	return &Form{Values: Submission{Category: DefaultCategory}}
}

// Begin marks the form as submitting and returns the payload to send.
func (f *Form) Begin() (Submission, error) {
	if f.Submitting {
		return Submission{}, ErrInFlight
	}
	f.Submitting = true
	return f.Values, nil
}

// Complete applies an outcome. Success clears message, subject and the terms
// checkbox and shows the success label; failure keeps every value and shows
// the failure label. translate maps a label key to display text and may be
// nil.
func (f *Form) Complete(outcome Outcome, translate func(key string) string) {
	defer func() { f.Submitting = false }()

	key := LabelFailure
	if outcome == OutcomeSuccess {
		key = LabelSuccess
		f.Values.Message = ""
		f.Values.Subject = ""
		f.Values.AgreedTerms = false
	}
	if translate != nil {
		f.StatusLabel = translate(key)
		return
	}
	f.StatusLabel = key
}

// Submit runs one Begin/deliver/Complete cycle.
func (f *Form) Submit(ctx context.Context, sender Submitter, translate func(key string) string) (Outcome, error) {
	payload, err := f.Begin()
	if err != nil {
		return 0, err
	}
	if err := sender.Submit(ctx, payload); err != nil {
		f.Complete(OutcomeFailure, translate)
		return OutcomeFailure, err
	}
	f.Complete(OutcomeSuccess, translate)
	return OutcomeSuccess, nil
}
