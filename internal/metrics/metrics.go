// Package metrics defines the custom Prometheus metrics for the portal
// core. All metrics register on the default registry via promauto at
// package init; expose them with promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clientdesk"

// SagaRunsTotal counts saga executions by name and outcome
// ("success", "compensated", "rejected").
var SagaRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saga_runs_total",
		Help:      "Total saga executions, by saga name and outcome.",
	},
	[]string{"saga", "outcome"},
)

// CompensationFailuresTotal counts undo steps that themselves failed and
// now need manual remediation.
var CompensationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compensation_failures_total",
		Help:      "Total failed compensation (undo) attempts, by saga and step.",
	},
	[]string{"saga", "step"},
)

// ConsistencyWarningsTotal counts detected divergences between the file
// metadata store and object storage.
var ConsistencyWarningsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consistency_warnings_total",
		Help:      "Total detected metadata/blob divergences, by kind.",
	},
	[]string{"kind"},
)

// AccessDeniedTotal counts guard denials by resource kind and the
// attempted action ("upload", "delete", "download", "preview", "list").
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total access control denials, by resource kind and attempted action.",
	},
	[]string{"resource", "action"},
)
