package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	ExpensesCreated       prometheus.Counter
	RecurringMaterialized prometheus.Counter
	RecurringRuns         prometheus.Counter

	// Balance metrics
	BalanceComputations prometheus.Counter
	BalanceCacheHits    prometheus.Counter
	TransfersMatched    prometheus.Histogram

	// Settlement metrics
	SettlementsCreated prometheus.Counter
	SettleNoop         prometheus.Counter

	// Payment metrics
	TransactionsCreated prometheus.Counter
	PaymentsRecorded    prometheus.Counter
	PaymentFailures     *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ExpensesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_expenses_created_total",
			Help: "Total number of expenses created",
		}),
		RecurringMaterialized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_recurring_materialized_total",
			Help: "Total number of expenses materialized from recurring templates",
		}),
		RecurringRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_recurring_runs_total",
			Help: "Total number of recurring processor invocations",
		}),

		BalanceComputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_balance_computations_total",
			Help: "Total number of group balance computations",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_balance_cache_hits_total",
			Help: "Total number of balance computations served from cache",
		}),
		TransfersMatched: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "divvy_transfers_matched",
			Help:    "Number of transfers emitted per matching run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),

		SettlementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_settlements_created_total",
			Help: "Total number of settlement snapshots persisted",
		}),
		SettleNoop: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_settle_noop_total",
			Help: "Total number of settle calls with nothing to settle",
		}),

		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_transactions_created_total",
			Help: "Total number of payment transactions created",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_payments_recorded_total",
			Help: "Total number of payments applied to transactions",
		}),
		PaymentFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divvy_payment_failures_total",
				Help: "Total number of rejected payments by reason",
			},
			[]string{"reason"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_events_published_total",
			Help: "Total number of outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divvy_publish_errors_total",
			Help: "Total number of outbox publish errors",
		}),
	}
}
