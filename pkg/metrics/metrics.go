package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	internhub = "internhub"

	// Lifecycle metrics
	listingTransitionsTotal    = "listing_transitions_total"
	employmentTransitionsTotal = "employment_transitions_total"
	requestDecisionsTotal      = "request_decisions_total"
	ListingStatusCount         = "listing_status_count"

	// Labels
	fromStateLabel = "from"
	toStateLabel   = "to"
	statusLabel    = "status"
	kindLabel      = "kind"
	decisionLabel  = "decision"
)

var transitionLabels = []string{
	fromStateLabel,
	toStateLabel,
}

var requestDecisionLabels = []string{
	kindLabel,
	decisionLabel,
}

var listingStatusCountLabels = []string{
	statusLabel,
}

/**
* Metrics definition
**/
var listingTransitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: internhub,
		Name:      listingTransitionsTotal,
		Help:      "number of total job listing state transitions",
	},
	transitionLabels,
)

var employmentTransitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: internhub,
		Name:      employmentTransitionsTotal,
		Help:      "number of total employment record state transitions",
	},
	transitionLabels,
)

var requestDecisionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: internhub,
		Name:      requestDecisionsTotal,
		Help:      "number of total employment request decisions",
	},
	requestDecisionLabels,
)

var listingStatusCountMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: internhub,
		Name:      ListingStatusCount,
		Help:      "metrics to record the number of job listings in each status",
	},
	listingStatusCountLabels,
)

func IncreaseListingTransitionsTotalMetric(from, to string) {
	labels := prometheus.Labels{
		fromStateLabel: from,
		toStateLabel:   to,
	}
	listingTransitionsTotalMetric.With(labels).Inc()
}

func IncreaseEmploymentTransitionsTotalMetric(from, to string) {
	labels := prometheus.Labels{
		fromStateLabel: from,
		toStateLabel:   to,
	}
	employmentTransitionsTotalMetric.With(labels).Inc()
}

func IncreaseRequestDecisionsTotalMetric(kind, decision string) {
	labels := prometheus.Labels{
		kindLabel:     kind,
		decisionLabel: decision,
	}
	requestDecisionsTotalMetric.With(labels).Inc()
}

func UpdateListingStatusCountMetric(status string, count int) {
	labels := prometheus.Labels{
		statusLabel: status,
	}
	listingStatusCountMetric.With(labels).Set(float64(count))
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(listingTransitionsTotalMetric)
	prometheus.MustRegister(employmentTransitionsTotalMetric)
	prometheus.MustRegister(requestDecisionsTotalMetric)
	prometheus.MustRegister(listingStatusCountMetric)
}
