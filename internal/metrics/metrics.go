package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letsapp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "letsapp_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letsapp_bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"source", "status"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letsapp_booking_transitions_total",
			Help: "Total number of booking status transitions",
		},
		[]string{"to"},
	)

	SlotQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letsapp_slot_queries_total",
			Help: "Total number of available-slot queries",
		},
		[]string{"result"},
	)

	StatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letsapp_status_updates_total",
			Help: "Total number of business status updates",
		},
		[]string{"status"},
	)

	OTPIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "letsapp_otp_issued_total",
			Help: "Total number of one-time codes issued",
		},
	)

	OTPVerifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letsapp_otp_verified_total",
			Help: "Total number of one-time code verification attempts",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(source, status string) {
	BookingsCreatedTotal.WithLabelValues(source, status).Inc()
}

func RecordBookingTransition(to string) {
	BookingTransitionsTotal.WithLabelValues(to).Inc()
}

func RecordSlotQuery(result string) {
	SlotQueriesTotal.WithLabelValues(result).Inc()
}

func RecordStatusUpdate(status string) {
	StatusUpdatesTotal.WithLabelValues(status).Inc()
}

func RecordOTPIssued() {
	OTPIssuedTotal.Inc()
}

func RecordOTPVerified(result string) {
	OTPVerifiedTotal.WithLabelValues(result).Inc()
}
