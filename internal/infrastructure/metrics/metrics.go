package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Batch metrics
	BatchesCommitted prometheus.Counter
	BatchesRejected  *prometheus.CounterVec
	BatchSize        prometheus.Histogram
	BatchCost        prometheus.Histogram
	ParseErrors      prometheus.Counter

	// Entry metrics
	EntriesCreated *prometheus.CounterVec
	EntriesEdited  prometheus.Counter
	EntriesDeleted prometheus.Counter

	// Balance metrics
	BalanceAmount  *prometheus.GaugeVec
	BalanceTopups  prometheus.Counter
	BalanceRefused prometheus.Counter

	// History metrics
	UndoOperations prometheus.Counter
	RedoOperations prometheus.Counter

	// Filter metrics
	DeductionsApplied prometheus.Counter
	DeductionAmount   prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		BatchesCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_batches_committed_total",
			Help: "Total number of entry batches committed",
		}),
		BatchesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gull_batches_rejected_total",
				Help: "Total number of rejected batches by reason",
			},
			[]string{"reason"},
		),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gull_batch_size_entries",
			Help:    "Number of entries per committed batch",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),
		BatchCost: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gull_batch_cost",
			Help:    "Total stake charged per batch",
			Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 100000},
		}),
		ParseErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_parse_errors_total",
			Help: "Total number of rejected input tokens",
		}),

		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gull_entries_created_total",
				Help: "Total number of entries created by category",
			},
			[]string{"category"},
		),
		EntriesEdited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_entries_edited_total",
			Help: "Total number of entries edited",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_entries_deleted_total",
			Help: "Total number of entries deleted",
		}),

		BalanceAmount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gull_balance_amount",
				Help: "Current balance amount",
			},
			[]string{"user_id"},
		),
		BalanceTopups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_balance_topups_total",
			Help: "Total number of balance top-ups",
		}),
		BalanceRefused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_balance_refused_total",
			Help: "Total number of submissions refused for insufficient balance",
		}),

		UndoOperations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_undo_operations_total",
			Help: "Total number of undo operations",
		}),
		RedoOperations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_redo_operations_total",
			Help: "Total number of redo operations",
		}),

		DeductionsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gull_deductions_applied_total",
			Help: "Total number of filter deduction runs applied",
		}),
		DeductionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gull_deduction_amount",
			Help:    "Amount credited back per deduction run",
			Buckets: []float64{10, 100, 500, 1000, 5000, 10000},
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gull_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gull_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gull_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		EventsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gull_events_failed_total",
				Help: "Total outbox publish failures by type",
			},
			[]string{"event_type"},
		),
	}
}
