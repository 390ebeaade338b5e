package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Artifact cache metrics, labelled by artifact kind (summary, sentiment, qa, caption, enhancement)
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_artifact_cache_hits_total",
		Help: "Number of artifact cache hits",
	}, []string{"kind"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_artifact_cache_misses_total",
		Help: "Number of artifact cache misses",
	}, []string{"kind"})

	// AI capability metrics
	AIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_ai_requests_total",
		Help: "Number of AI generation requests by model",
	}, []string{"model"})

	AIErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_ai_errors_total",
		Help: "Number of AI errors by reason (network, api, parse, schema)",
	}, []string{"reason"})

	AILatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsdesk_ai_latency_seconds",
		Help:    "AI generation request latency",
		Buckets: prometheus.DefBuckets,
	})

	// Quota ledger metrics
	QuotaReservations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_quota_reservations_total",
		Help: "Quota reservation outcomes (allowed, denied, fail_open)",
	}, []string{"service", "result"})

	// Moderation metrics
	StrikesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_strikes_total",
		Help: "Strikes applied by violation type",
	}, []string{"violation"})

	// Background enhancement metrics
	EnhancementJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_enhancement_articles_total",
		Help: "Background enhancement article outcomes (completed, failed, skipped)",
	}, []string{"result"})
)
