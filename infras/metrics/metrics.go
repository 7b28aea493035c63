package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bazaar"

const (
	PathDirect = "direct"
	PathOffer  = "offer"

	OfferCreated   = "created"
	OfferAccepted  = "accepted"
	OfferCancelled = "cancelled"
)

var (
	once sync.Once

	httpRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings created by creation path.",
		},
		[]string{"path"},
	)

	availabilityConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_conflicts_total",
			Help:      "Booking attempts rejected because the listing was already taken.",
		},
	)

	validationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_validation_failures_total",
			Help:      "Booking payloads rejected by category rules.",
		},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_transitions_total",
			Help:      "Booking status changes by prior and new status.",
		},
		[]string{"from", "to"},
	)

	offers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_total",
			Help:      "Vendor offers by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			bookingsCreated,
			availabilityConflicts,
			validationFailures,
			statusTransitions,
			offers,
		)
	})
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func IncBookingCreated(path string) {
	bookingsCreated.WithLabelValues(path).Inc()
}

func IncConflict() {
	availabilityConflicts.Inc()
}

func IncValidationFailure() {
	validationFailures.Inc()
}

func IncTransition(from, to string) {
	statusTransitions.WithLabelValues(from, to).Inc()
}

// IncOffer counts offers by outcome: created, accepted or cancelled.
func IncOffer(outcome string) {
	offers.WithLabelValues(outcome).Inc()
}
