package metrics

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmorate_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Graph mutations
	GraphMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_graph_mutations_total",
			Help: "Like, friend and review mutations by operation",
		},
		[]string{"event_type", "operation"},
	)

	FeedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_feed_events_total",
			Help: "Feed events written",
		},
		[]string{"event_type"},
	)

	FeedWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmorate_feed_write_failures_total",
			Help: "Mutations whose feed event could not be written",
		},
	)

	// Recommendations
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // "peer", "no_peer"
	)

	// Popular films cache
	PopularCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmorate_popular_cache_hits_total",
			Help: "Popular film lists served from cache",
		},
	)

	PopularCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmorate_popular_cache_misses_total",
			Help: "Popular film lists computed from the store",
		},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_cache_errors_total",
			Help: "Cache operations that failed or were rejected by the breaker",
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "filmorate_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Recommendation outcomes.
const (
	OutcomePeer   = "peer"
	OutcomeNoPeer = "no_peer"
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// TrackActiveRequest increments on start and decrements on finish.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordMutation(eventType, operation string) {
	GraphMutations.WithLabelValues(eventType, operation).Inc()
}

func RecordFeedEvent(eventType string) {
	FeedEvents.WithLabelValues(eventType).Inc()
}

func RecordFeedWriteFailure() {
	FeedWriteFailures.Inc()
}

func RecordRecommendation(outcome string) {
	Recommendations.WithLabelValues(outcome).Inc()
}

func RecordPopularCache(hit bool) {
	if hit {
		PopularCacheHits.Inc()
	} else {
		PopularCacheMisses.Inc()
	}
}

func RecordCacheError(operation string) {
	CacheErrors.WithLabelValues(operation).Inc()
}

// RegisterDBPool exports connection pool counters read from stat at scrape time.
// Call it once per process.
func RegisterDBPool(stat func() *pgxpool.Stat) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "filmorate_db_pool_acquired_conns",
		Help: "Connections currently checked out of the pool",
	}, func() float64 { return float64(stat().AcquiredConns()) })

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "filmorate_db_pool_idle_conns",
		Help: "Idle connections in the pool",
	}, func() float64 { return float64(stat().IdleConns()) })

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "filmorate_db_pool_total_conns",
		Help: "Open connections in the pool",
	}, func() float64 { return float64(stat().TotalConns()) })
}
