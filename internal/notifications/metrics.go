package notifications

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incidenttracker",
		Subsystem: "notifications",
		Name:      "sent_total",
		Help:      "Notification delivery outcomes by channel.",
	}, []string{"channel", "result"})

	notificationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "incidenttracker",
		Subsystem: "notifications",
		Name:      "send_duration_seconds",
		Help:      "Time spent delivering a single notification.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"channel"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "incidenttracker",
		Subsystem: "notifications",
		Name:      "queue_depth",
		Help:      "Approximate number of queued notifications awaiting delivery.",
	})
)

func recordNotificationSent(channel Channel, result string) {
	notificationsSent.WithLabelValues(string(channel), result).Inc()
}

func recordNotificationDuration(channel Channel, d time.Duration) {
	notificationDuration.WithLabelValues(string(channel)).Observe(d.Seconds())
}

func recordQueueDepthChange(delta float64) {
	queueDepth.Add(delta)
}
