package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal counts classifications by source (llm or fallback).
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playercare_classifications_total",
		Help: "Issue classifications by source",
	}, []string{"source"})

	// ResolutionsTotal counts automated resolutions by category and outcome.
	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playercare_resolutions_total",
		Help: "Automated resolutions by category and outcome",
	}, []string{"category", "outcome"})

	// EscalationsTotal counts sentiment-driven human escalations.
	EscalationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playercare_escalations_total",
		Help: "Cases routed to a human because of player sentiment",
	})

	// GenerationFailures counts failed text-generation calls.
	GenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playercare_generation_failures_total",
		Help: "Failed calls to the text generation service",
	})

	// GenerationLatency observes successful generation call durations.
	GenerationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "playercare_generation_latency_seconds",
		Help:    "Latency of successful text generation calls",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)
