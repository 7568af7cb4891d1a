// Package metrics defines and registers all custom Prometheus metrics for the
// Sweet Shop API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// PurchasesTotal counts purchase attempts.
// Label:
//   - result: "ok", "insufficient_stock", or "not_found"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, labelled by result.",
	},
	[]string{"result"},
)

// UnitsSoldTotal counts the units successfully removed from stock.
var UnitsSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_sold_total",
		Help:      "Total number of units sold across all sweets.",
	},
)

// RestocksTotal counts successful restock operations.
var RestocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of successful restock operations.",
	},
)

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "ok", "rejected" (4xx class), or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, labelled by action and result.",
	},
	[]string{"action", "result"},
)
