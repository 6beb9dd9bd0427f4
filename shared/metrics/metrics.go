package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the dispatch backend.
type Metrics struct {
	AssignmentsCreated     prometheus.Counter
	AssignmentsUpdated     prometheus.Counter
	AssignmentsRemoved     prometheus.Counter
	Conflicts              *prometheus.CounterVec
	NotificationsPublished prometheus.Counter
	NotificationsDelivered prometheus.Counter
	NotificationsFailed    prometheus.Counter
	RequestDuration        prometheus.Histogram
}

// New registers and returns the metric set.
func New(namespace string) *Metrics {
	return &Metrics{
		AssignmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_created_total",
			Help:      "The total number of assignments created",
		}),
		AssignmentsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_updated_total",
			Help:      "The total number of reassignments committed",
		}),
		AssignmentsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_removed_total",
			Help:      "The total number of assignments removed",
		}),
		Conflicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_conflicts_total",
			Help:      "Rejected assignment attempts by resource kind",
		}, []string{"resource"}),
		NotificationsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_published_total",
			Help:      "Notification nudges published to the queue",
		}),
		NotificationsDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_delivered_total",
			Help:      "Notifications delivered by the worker",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Notification deliveries that failed permanently",
		}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
