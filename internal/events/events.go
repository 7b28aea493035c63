// Package events publishes booking lifecycle changes after they are committed.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bazaar/config"
	"bazaar/infras/kafka"
	"bazaar/infras/otel"
	"bazaar/shared/constant"
	"bazaar/shared/timezone"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeBookingCancelled     = "booking.cancelled"
	TypeRequestCreated       = "request.created"
	TypeRequestCancelled     = "request.cancelled"
	TypeOfferCreated         = "offer.created"
	TypeOfferAccepted        = "offer.accepted"
	TypeOfferCancelled       = "offer.cancelled"

	HeaderEventType = "event_type"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func New(eventType, key string, data any) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		OccurredAt: timezone.Now(),
		Data:       data,
	}
}

// Publisher is fire and forget: the state change already happened, so delivery
// problems are logged and never returned to the caller.
type Publisher interface {
	Publish(ctx context.Context, batch ...Event)
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topic,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, batch ...Event) {
	if len(batch) == 0 {
		return
	}

	messages := make([]kafka.Message, 0, len(batch))
	for _, event := range batch {
		messages = append(messages, kafka.Message{
			Key:     event.Key,
			Value:   event,
			Headers: map[string]string{HeaderEventType: event.Type},
		})
	}

	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
		defer scope.End()

		if err := p.client.SendMessages(c, p.topic, messages...); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("topic", p.topic).Str("type", batch[0].Type).Msg("failed to publish events")
		}
	}()
}
