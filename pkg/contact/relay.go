package contact

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed openapi.yaml
var relayOpenAPI []byte

// RelayPath is the relay route, shared with the browser form default.
const RelayPath = DefaultEndpoint

// ErrInvalidPayload is returned when the body does not match the payload
// schema.
var ErrInvalidPayload = errors.New("contact: invalid payload")

// Meta describes the request that carried a submission.
type Meta struct {
	RequestID  string
	RemoteAddr string
}

// Result is the relay's verdict on an accepted request.
type Result struct {
	ID      string
	Dropped bool
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithInbox sets where accepted messages go.
func WithInbox(inbox Inbox) RelayOption {
	return func(r *Relay) { r.inbox = inbox }
}

// WithLogger sets the relay logger.
func WithLogger(logger *zap.Logger) RelayOption {
	return func(r *Relay) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides time and id generation.
func WithClock(now func() time.Time, newID func() string) RelayOption {
	return func(r *Relay) {
		if now != nil {
			r.now = now
		}
		if newID != nil {
			r.newID = newID
		}
	}
}

// Relay receives contact payloads, checks them against the published schema
// and the validation rules, drops honeypot hits, and stores the rest.
type Relay struct {
	schema    *openapi3.Schema
	validator *Validator
	inbox     Inbox
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewRelay loads the embedded payload schema and applies options. Without an
// inbox, messages are only logged.
func NewRelay(ctx context.Context, opts ...RelayOption) (*Relay, error) {
	schema, err := loadRelaySchema(ctx)
	if err != nil {
		return nil, err
	}
	r := &Relay{
		schema:    schema,
		validator: NewValidator(),
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

func loadRelaySchema(ctx context.Context) (*openapi3.Schema, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(relayOpenAPI)
	if err != nil {
		return nil, fmt.Errorf("contact relay: load schema: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contact relay: validate schema: %w", err)
	}
	if doc.Paths == nil {
		return nil, errors.New("contact relay: schema has no paths")
	}
	item := doc.Paths.Map()[RelayPath]
	if item == nil || item.Post == nil || item.Post.RequestBody == nil || item.Post.RequestBody.Value == nil {
		return nil, fmt.Errorf("contact relay: schema has no POST %s", RelayPath)
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("contact relay: schema has no JSON request body")
	}
	return media.Schema.Value, nil
}

// Handle processes one raw JSON body.
func (r *Relay) Handle(ctx context.Context, body []byte, meta Meta) (Result, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := r.schema.VisitJSON(decoded); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var submission Submission
	if err := json.Unmarshal(body, &submission); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return r.Accept(ctx, submission, meta)
}

// Accept processes an already decoded submission, as posted by a browser
// form.
func (r *Relay) Accept(ctx context.Context, submission Submission, meta Meta) (Result, error) {
	logger := r.logger.With(zap.String("request_id", meta.RequestID))

	if submission.IsBot() {
		logger.Info("contact submission dropped by honeypot", zap.String("remote_addr", meta.RemoteAddr))
		return Result{Dropped: true}, nil
	}

	submission = submission.Normalize()
	if err := r.validator.Validate(submission); err != nil {
		return Result{}, err
	}

	msg := Message{
		ID:         r.newID(),
		Submission: submission,
		ReceivedAt: r.now(),
		RequestID:  meta.RequestID,
		RemoteAddr: meta.RemoteAddr,
	}
	if r.inbox != nil {
		if err := r.inbox.Store(ctx, msg); err != nil {
			logger.Error("store contact submission", zap.Error(err))
			return Result{}, err
		}
	}

	logger.Info("contact submission received",
		zap.String("id", msg.ID),
		zap.String("category", string(submission.Category)),
		zap.String("subject", submission.Subject),
	)
	return Result{ID: msg.ID}, nil
}
