// Package observability holds the Prometheus metrics for the loyalty ledger.
// Exposed on /metrics when enabled in the daemon config.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ledger Metrics ─────────────────────────────────────────────────────────

// TransactionsRecorded counts successfully recorded fuel purchases.
var TransactionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pumppoints",
	Subsystem: "ledger",
	Name:      "transactions_recorded_total",
	Help:      "Total fuel-purchase transactions recorded.",
})

// PointsEarned counts loyalty points credited to customers.
var PointsEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pumppoints",
	Subsystem: "ledger",
	Name:      "points_earned_total",
	Help:      "Total loyalty points credited across all customers.",
})

// PointsSpent counts loyalty points debited through redemptions.
var PointsSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pumppoints",
	Subsystem: "ledger",
	Name:      "points_spent_total",
	Help:      "Total loyalty points debited through redemptions.",
})

// Redemptions counts redemption attempts by outcome.
var Redemptions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pumppoints",
	Subsystem: "ledger",
	Name:      "redemptions_total",
	Help:      "Total reward redemption attempts by outcome.",
}, []string{"outcome"})

// LedgerBusy counts operations rejected due to lock contention.
var LedgerBusy = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pumppoints",
	Subsystem: "ledger",
	Name:      "busy_total",
	Help:      "Total ledger operations rejected because the store was busy.",
})

// OpDuration tracks how long each ledger operation takes.
var OpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "pumppoints",
	Subsystem: "ledger",
	Name:      "op_duration_seconds",
	Help:      "Duration of ledger operations.",
	Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
}, []string{"op"})

// IDRetries counts extra attempts needed to find a free random identifier.
var IDRetries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pumppoints",
	Subsystem: "ledger",
	Name:      "id_retries_total",
	Help:      "Total identifier collisions that forced a regeneration.",
})
