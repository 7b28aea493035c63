package kafka_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/config"
	"bazaar/infras/kafka"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{
		Key:     "b-1",
		Value:   payload{BookingID: "b-1", Status: "confirmed"},
		Headers: map[string]string{"event": "booking.created"},
	}

	raw, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("b-1"), raw.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","status":"confirmed"}`, string(raw.Value))

	require.Len(t, raw.Headers, 1)
	assert.Equal(t, "event", raw.Headers[0].Key)
	assert.Equal(t, []byte("booking.created"), raw.Headers[0].Value)
}

func TestDisabledClientIsNoop(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "booking-events", kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, client.Close())
}
