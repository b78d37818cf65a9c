// Package events publishes domain events emitted after successful
// mutations. Delivery is fire-and-forget: a publish failure is logged
// and never fails the request that produced it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quillshop/apiserver/config"
	"github.com/sirupsen/logrus"
)

// Event names published by the services.
const (
	UserRegistered   = "user.registered"
	UserUpdated      = "user.updated"
	PostCreated      = "post.created"
	PostUpdated      = "post.updated"
	PostDeleted      = "post.deleted"
	CommentCreated   = "comment.created"
	InventoryCreated = "inventory.created"
	InventoryUpdated = "inventory.updated"
	InventoryDeleted = "inventory.deleted"
)

// Event is the envelope published to the broker.
type Event struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Handler processes an event. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, event Event) error

// Backend defines broker-agnostic operations shared by the
// RabbitMQ and Pub/Sub implementations.
type Backend interface {
	Publish(ctx context.Context, topic string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// Bus wraps a backend with event envelope handling.
type Bus struct {
	backend Backend
	log     *logrus.Entry
}

// NewBus constructs a Bus for the backend selected by config. A nil
// Bus is valid and discards events, so callers never nil-check.
func NewBus(ctx context.Context, cfg config.EventsConfig, log *logrus.Logger) (*Bus, error) {
	var backend Backend
	var err error

	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "rabbitmq":
		backend, err = NewRabbitMQBackend(cfg.RabbitMQ)
	case "pubsub":
		backend, err = NewPubSubBackend(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	return &Bus{
		backend: backend,
		log:     log.WithField("component", "events"),
	}, nil
}

// Emit publishes a named event with a JSON payload. Errors are logged
// and swallowed so request handling stays synchronous and unaffected.
func (b *Bus) Emit(ctx context.Context, name string, payload any) {
	if b == nil {
		return
	}

	event := Event{
		ID:         uuid.NewString(),
		Name:       name,
		OccurredAt: time.Now(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			b.log.WithError(err).WithField("event", name).Warn("failed to encode event payload")
			return
		}
		event.Payload = data
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.log.WithError(err).WithField("event", name).Warn("failed to encode event")
		return
	}

	attrs := map[string]string{"event": name}
	if _, err := b.backend.Publish(ctx, name, data, attrs); err != nil {
		b.log.WithError(err).WithField("event", name).Warn("failed to publish event")
	}
}

// Subscribe consumes events from the named topic, decoding envelopes
// before handing them to the handler.
func (b *Bus) Subscribe(ctx context.Context, name string, handler Handler) error {
	if b == nil {
		return nil
	}
	return b.backend.Subscribe(ctx, name, handler)
}

// Close closes the underlying backend.
func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	return b.backend.Close()
}
