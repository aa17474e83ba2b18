package syncer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names used in metrics and errors.
const (
	OpPush   = "push"
	OpPull   = "pull"
	OpImport = "import"
	OpApply  = "apply"
)

// Metric results.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultEmpty    = "empty"
	ResultDeclined = "declined"
	ResultBusy     = "busy"
)

var syncOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tripmap_sync_operations_total",
	Help: "Sync operations by operation and result",
}, []string{"operation", "result"})

func observe(op, result string) {
	syncOperations.WithLabelValues(op, result).Inc()
}
