package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuneslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tuneslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuneslot_bookings_total",
			Help: "Total number of lesson bookings",
		},
		[]string{"status"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tuneslot_booking_conflicts_total",
			Help: "Total number of booking attempts rejected as conflicts",
		},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tuneslot_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	RemindersSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tuneslot_reminders_sent_total",
			Help: "Total number of reminder notifications sent by the sweeper",
		},
	)

	BookingsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tuneslot_bookings_completed_total",
			Help: "Total number of bookings auto-completed by the sweeper",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuneslot_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tuneslot_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	OrdersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tuneslot_store_orders_total",
			Help: "Total number of store orders placed",
		},
	)

	NewsletterSubscribersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tuneslot_newsletter_subscriptions_total",
			Help: "Total number of newsletter subscriptions",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordOrder() {
	OrdersTotal.Inc()
}
