package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger Prometheus metrics.
type Metrics struct {
	AccountsCreated prometheus.Counter
	AccountBalance  *prometheus.GaugeVec

	EntriesRecorded *prometheus.CounterVec
	EntryErrors     *prometheus.CounterVec
	EntryDuration   prometheus.Histogram
}

// New creates and registers the ledger metrics on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountBalance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockledger_account_balance",
				Help: "Current account balance",
			},
			[]string{"account_id"},
		),
		EntriesRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_entries_recorded_total",
				Help: "Total number of entries recorded by direction",
			},
			[]string{"direction"},
		),
		EntryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_entry_errors_total",
				Help: "Total number of rejected entries by reason",
			},
			[]string{"reason"},
		),
		EntryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockledger_entry_duration_seconds",
			Help:    "Duration of entry recording including retries",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
