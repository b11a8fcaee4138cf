package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracionar_sync_runs_total",
		Help: "Sync runs by mode and outcome.",
	}, []string{"mode", "outcome"})

	SyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracionar_sync_duration_seconds",
		Help:    "Duration of sync runs.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"mode"})

	SyncRecordsTouched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracionar_sync_records_touched_total",
		Help: "Records merged by sync runs.",
	}, []string{"mode"})

	SyncBranchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracionar_sync_branch_failures_total",
		Help: "Entity branches skipped during sync.",
	}, []string{"level"})

	MetaRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracionar_meta_requests_total",
		Help: "Graph API requests by edge and result.",
	}, []string{"edge", "result"})

	MetaLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracionar_meta_request_duration_seconds",
		Help:    "Graph API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"edge"})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tracionar_circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open).",
	}, []string{"name"})

	InsightCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracionar_insight_cache_total",
		Help: "Insight cache lookups by result.",
	}, []string{"result"})

	InsightCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tracionar_insight_cache_entries",
		Help: "Entries currently held by the insight cache.",
	})

	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracionar_http_request_duration_seconds",
		Help:    "HTTP request latency by method and status class.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)

func ObserveSync(mode, outcome string, records int, d time.Duration) {
	SyncRuns.WithLabelValues(mode, outcome).Inc()
	SyncDuration.WithLabelValues(mode).Observe(d.Seconds())
	SyncRecordsTouched.WithLabelValues(mode).Add(float64(records))
}

func ObserveMetaRequest(edge, result string, d time.Duration) {
	MetaRequests.WithLabelValues(edge, result).Inc()
	MetaLatency.WithLabelValues(edge).Observe(d.Seconds())
}

// ObserveHTTPRequest agrupa os status por classe (2xx, 4xx...) para manter a cardinalidade baixa
func ObserveHTTPRequest(method string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(status/100)+"xx").Observe(d.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
