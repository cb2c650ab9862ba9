package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec

	// Scheduling metrics
	NoOpenDayFound        prometheus.Counter
	RecurringMaterialized prometheus.Counter
	RecurringRuns         prometheus.Counter

	// Outbox metrics
	EventsPublished *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Cache metrics
	CacheLookups *prometheus.CounterVec
}

// New creates all metrics and registers them with reg. A nil reg uses the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_transactions_created_total",
				Help: "Total number of transactions recorded by type",
			},
			[]string{"type"},
		),

		NoOpenDayFound: factory.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_due_date_no_open_day_total",
			Help: "Total due date lookups that found no open day within the shift limit",
		}),
		RecurringMaterialized: factory.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_recurring_materialized_total",
			Help: "Total transactions created from recurring rules",
		}),
		RecurringRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_recurring_runs_total",
			Help: "Total recurring materialization runs",
		}),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_outbox_events_published_total",
				Help: "Total outbox events relayed by outcome",
			},
			[]string{"event_type", "status"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budgetledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_cache_lookups_total",
				Help: "Total account cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordTransactionCreated counts a stored transaction.
func (m *Metrics) RecordTransactionCreated(txType string) {
	m.TransactionsCreated.WithLabelValues(txType).Inc()
}

// RecordNoOpenDayFound counts a due date lookup that gave up.
func (m *Metrics) RecordNoOpenDayFound() {
	m.NoOpenDayFound.Inc()
}

// RecordRecurringMaterialized counts one materialization run and what it created.
func (m *Metrics) RecordRecurringMaterialized(count int) {
	m.RecurringRuns.Inc()
	m.RecurringMaterialized.Add(float64(count))
}

// RecordEventPublished counts a relayed outbox event.
func (m *Metrics) RecordEventPublished(eventType string, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, seconds float64) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordRateLimitHit counts a rejected request.
func (m *Metrics) RecordRateLimitHit() {
	m.RateLimitHits.Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
