package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Topics carrying domain events downstream (CRM sync, analytics).
const (
	TopicUserSignedUp        = "user.signed_up"
	TopicOnboardingCompleted = "onboarding.completed"
)

// Backend defines the broker-agnostic publish operations used by the app.
type Backend interface {
	Publish(ctx context.Context, topic string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Publisher emits domain events best-effort: a broker failure is logged
// and never surfaces to the request that triggered it. A nil Publisher
// is valid and drops everything, so handlers need no broker to run.
type Publisher struct {
	logger  *slog.Logger
	backend Backend
}

// NewPublisher constructs a Publisher for the provided backend.
func NewPublisher(logger *slog.Logger, backend Backend) *Publisher {
	return &Publisher{logger: logger, backend: backend}
}

// Emit marshals payload to JSON and publishes it on the named topic.
func (p *Publisher) Emit(ctx context.Context, topic string, payload any) {
	if p == nil || p.backend == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal event", slog.String("topic", topic), slog.Any("error", err))
		return
	}

	attrs := map[string]string{
		"emitted_at": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := p.backend.Publish(ctx, topic, data, attrs); err != nil {
		p.logger.Error("publish event", slog.String("topic", topic), slog.Any("error", err))
	}
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	if p == nil || p.backend == nil {
		return nil
	}
	return p.backend.Close()
}

// UserSignedUp is the payload for TopicUserSignedUp.
type UserSignedUp struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// OnboardingCompleted is the payload for TopicOnboardingCompleted.
type OnboardingCompleted struct {
	ProfileID   string `json:"profile_id"`
	Theme       string `json:"theme"`
	Persona     string `json:"persona"`
	PricingPlan string `json:"pricing_plan"`
}
