package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	Transactions      *prometheus.CounterVec
	TransactionErrors *prometheus.CounterVec
	RecordsMalformed  prometheus.Counter
	IngestDuration    prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Transaction metrics
		Transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentsengine_transactions_total",
				Help: "Total number of processed transactions by type and result",
			},
			[]string{"type", "result"},
		),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentsengine_transaction_errors_total",
				Help: "Total number of rejected transactions by error kind",
			},
			[]string{"kind"},
		),
		RecordsMalformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymentsengine_records_malformed_total",
			Help: "Total number of input records that could not be parsed",
		}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "paymentsengine_ingest_duration_seconds",
			Help:    "Duration of a full ingest run",
			Buckets: prometheus.DefBuckets,
		}),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymentsengine_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsLocked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "paymentsengine_accounts_locked",
			Help: "Number of locked accounts after the last ingest",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentsengine_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymentsengine_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
