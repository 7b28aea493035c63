package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bazaar/config"
	"bazaar/infras/kafka"
	kafkaMocks "bazaar/infras/kafka/mocks"
	"bazaar/infras/otel/mocks"
	"bazaar/internal/events"
)

func TestPublisher_Publish(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Topic = "booking-events"

	t.Run("sends one message per event keyed by id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := kafkaMocks.NewMockClient(ctrl)
		publisher := events.NewPublisher(client, cfg, mocks.NewOtel())

		sent := make(chan []kafka.Message, 1)

		client.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				sent <- messages

				return nil
			})

		publisher.Publish(context.Background(),
			events.New(events.TypeOfferAccepted, "offer-10", map[string]string{"offer_id": "offer-10"}),
			events.New(events.TypeBookingCreated, "booking-1", map[string]string{"booking_id": "booking-1"}),
		)

		select {
		case messages := <-sent:
			require.Len(t, messages, 2)
			assert.Equal(t, "offer-10", messages[0].Key)
			assert.Equal(t, events.TypeOfferAccepted, messages[0].Headers[events.HeaderEventType])
			assert.Equal(t, "booking-1", messages[1].Key)
		case <-time.After(time.Second):
			t.Fatal("events were not published")
		}
	})

	t.Run("send failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := kafkaMocks.NewMockClient(ctrl)
		publisher := events.NewPublisher(client, cfg, mocks.NewOtel())

		done := make(chan struct{})

		client.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ ...kafka.Message) error {
				defer close(done)

				return errors.New("broker unavailable")
			})

		assert.NotPanics(t, func() {
			publisher.Publish(context.Background(), events.New(events.TypeBookingCancelled, "booking-1", nil))
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("events were not published")
		}
	})

	t.Run("nothing to publish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := kafkaMocks.NewMockClient(ctrl)
		publisher := events.NewPublisher(client, cfg, mocks.NewOtel())

		publisher.Publish(context.Background())
	})
}
