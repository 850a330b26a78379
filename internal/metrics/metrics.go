package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ClassesScheduledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflow_classes_scheduled_total",
			Help: "Total number of classes scheduled",
		},
	)

	ScheduleConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflow_schedule_conflicts_total",
			Help: "Total number of scheduling attempts rejected due to a conflict",
		},
		[]string{"kind"},
	)

	EnrollmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflow_enrollments_total",
			Help: "Total number of enrollment attempts",
		},
		[]string{"outcome"},
	)

	EnrollmentCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflow_enrollment_cancellations_total",
			Help: "Total number of enrollment cancellations",
		},
	)

	AvailabilityWindowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflow_availability_windows_total",
			Help: "Total number of trainer availability windows added",
		},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflow_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymflow_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordClassScheduled() {
	ClassesScheduledTotal.Inc()
}

func RecordScheduleConflict(kind string) {
	ScheduleConflictsTotal.WithLabelValues(kind).Inc()
}

func RecordEnrollment(outcome string) {
	EnrollmentsTotal.WithLabelValues(outcome).Inc()
}

func RecordEnrollmentCancellation() {
	EnrollmentCancellationsTotal.Inc()
}

func RecordAvailabilityWindow() {
	AvailabilityWindowsTotal.Inc()
}

func RecordNotification(notifType, status string) {
	NotificationsSentTotal.WithLabelValues(notifType, status).Inc()
}
