package incidents

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	incidentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incidenttracker",
		Subsystem: "incidents",
		Name:      "created_total",
		Help:      "Total number of incidents created.",
	}, []string{"category", "severity"})

	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incidenttracker",
		Subsystem: "incidents",
		Name:      "status_transitions_total",
		Help:      "Total number of incident status transitions.",
	}, []string{"from", "to"})

	analysesPerformed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "incidenttracker",
		Subsystem: "incidents",
		Name:      "analyses_total",
		Help:      "Total number of AI analyses performed.",
	})
)
