package reco

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ScoringFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_scoring_failures_total",
			Help: "Count of per-model scoring failures by event type.",
		},
		[]string{"event_type"},
	)

	FallbackOnlyTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_fallback_only_total",
			Help: "Count of sessions answered from the fallback list alone.",
		},
	)

	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_cache_hits_total",
			Help: "Count of pipeline results served from the response cache.",
		},
	)

	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_cache_misses_total",
			Help: "Count of response cache lookups that missed.",
		},
	)

	CandidatePoolSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reco_candidate_pool_size",
			Help:    "Distribution of candidate pool sizes per session.",
			Buckets: prometheus.LinearBuckets(0, 25, 9),
		},
	)
)

func init() {
	prometheus.MustRegister(
		ScoringFailuresTotal,
		FallbackOnlyTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		CandidatePoolSize,
	)
}
