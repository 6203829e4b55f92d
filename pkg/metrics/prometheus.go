package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	MissionsScheduled prometheus.Counter
	MissionsCancelled prometheus.Counter
	MissionsCompleted prometheus.Counter
	ConflictsDetected *prometheus.CounterVec
	CheckDuration     prometheus.Histogram
	EmailsSent        prometheus.Counter
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		MissionsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_scheduled_total",
			Help:      "The total number of missions scheduled",
		}),
		MissionsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_cancelled_total",
			Help:      "The total number of missions cancelled",
		}),
		MissionsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_completed_total",
			Help:      "The total number of missions completed",
		}),
		ConflictsDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduling_conflicts_total",
			Help:      "The total number of scheduling conflicts detected",
		}, []string{"resource"}),
		CheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_check_duration_seconds",
			Help:      "Time taken to run availability checks",
			Buckets:   prometheus.DefBuckets,
		}),
		EmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "The total number of notification emails sent",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
