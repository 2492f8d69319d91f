package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Instrument metrics
	InstrumentsCreated prometheus.Counter
	InstrumentsClosed  prometheus.Counter
	InstrumentsDeleted prometheus.Counter
	ScheduleSize       prometheus.Histogram

	// Installment metrics
	InstallmentsCompleted prometheus.Counter
	InstallmentsReverted  prometheus.Counter
	InstallmentAmount     prometheus.Histogram

	// Ledger metrics
	TransactionsCreated  *prometheus.CounterVec
	TransactionsDeleted  prometheus.Counter
	TransactionsRestored prometheus.Counter
	TransactionAmount    prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		InstrumentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_instruments_created_total",
			Help: "Total number of instruments created",
		}),
		InstrumentsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_instruments_closed_total",
			Help: "Total number of instruments closed",
		}),
		InstrumentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_instruments_deleted_total",
			Help: "Total number of instruments deleted",
		}),
		ScheduleSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finledger_schedule_size",
			Help:    "Number of installments generated per instrument",
			Buckets: []float64{1, 3, 6, 12, 24, 36, 60, 120},
		}),

		InstallmentsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_installments_completed_total",
			Help: "Total number of installments marked completed",
		}),
		InstallmentsReverted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_installments_reverted_total",
			Help: "Total number of installments reverted to pending",
		}),
		InstallmentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finledger_installment_amount",
			Help:    "Installment amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),

		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_ledger_transactions_created_total",
				Help: "Total number of ledger transactions created by type",
			},
			[]string{"type"},
		),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_ledger_transactions_deleted_total",
			Help: "Total number of ledger transactions soft-deleted",
		}),
		TransactionsRestored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_ledger_transactions_restored_total",
			Help: "Total number of ledger transactions restored",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finledger_ledger_transaction_amount",
			Help:    "Ledger transaction amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_db_query_duration_seconds",
				Help:    "Duration of database queries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "finledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation"},
		),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_cache_hits_total",
			Help: "Total number of aggregate cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_cache_misses_total",
			Help: "Total number of aggregate cache misses",
		}),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_outbox_events_published_total",
			Help: "Total number of outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_outbox_publish_errors_total",
			Help: "Total number of outbox publish errors",
		}),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"client"},
		),
	}
}
