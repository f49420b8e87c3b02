package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	// HTTPRequestsTotal tracks HTTP requests by route and status class
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds by route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"route"},
	)
)

// Provider Metrics
var (
	// ProviderRequestsTotal tracks outbound provider calls by provider and status
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total outbound provider requests by provider and status",
		},
		[]string{"provider", "status"},
	)

	// ProviderRequestDuration tracks provider call latency in seconds
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Provider request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"provider"},
	)

	// TTSFallbacksTotal counts synthesis requests served by the fallback provider
	TTSFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tts_fallbacks_total",
			Help: "Total TTS requests that fell back to the secondary provider",
		},
	)

	// TTSAudioBytes tracks synthesized audio sizes in bytes
	TTSAudioBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tts_audio_bytes",
			Help:    "Size of synthesized audio payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)
)

// Cache Metrics
var (
	// CacheHitsTotal tracks cache hits by cache name
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits by cache",
		},
		[]string{"cache"},
	)

	// CacheMissesTotal tracks cache misses by cache name
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses by cache",
		},
		[]string{"cache"},
	)

	// LookupCacheSize tracks current in-memory lookup cache entries
	LookupCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lookup_cache_size",
			Help: "Current number of entries in the in-memory lookup cache",
		},
	)

	// LookupCacheEvictions counts evicted in-memory lookup cache entries
	LookupCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_cache_evictions_total",
			Help: "Total number of expired lookup cache entries evicted",
		},
	)
)

// Redis Metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks query latency in seconds by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// Domain Metrics
var (
	// ReviewsTotal counts submitted reviews by outcome
	ReviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_total",
			Help: "Total submitted word reviews by outcome",
		},
		[]string{"outcome"},
	)

	// StoriesGeneratedTotal counts generated stories
	StoriesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stories_generated_total",
			Help: "Total stories generated",
		},
	)

	// OCRBoxesDropped counts bounding boxes dropped by the noise filter
	OCRBoxesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ocr_boxes_dropped_total",
			Help: "Total OCR bounding boxes dropped below the noise threshold",
		},
	)
)
