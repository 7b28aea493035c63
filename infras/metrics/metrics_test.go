package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		ObserveHTTP("GET", "/v1/bookings/user", 200, 15*time.Millisecond)
		IncValidationFailure()
		IncOffer("created")
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(bookingsCreated.WithLabelValues(PathOffer))
	IncBookingCreated(PathOffer)
	assert.InDelta(t, before+1, testutil.ToFloat64(bookingsCreated.WithLabelValues(PathOffer)), 0.0001)

	before = testutil.ToFloat64(availabilityConflicts)
	IncConflict()
	assert.InDelta(t, before+1, testutil.ToFloat64(availabilityConflicts), 0.0001)

	before = testutil.ToFloat64(statusTransitions.WithLabelValues("pending", "confirmed"))
	IncTransition("pending", "confirmed")
	assert.InDelta(t, before+1, testutil.ToFloat64(statusTransitions.WithLabelValues("pending", "confirmed")), 0.0001)
}
