package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// entriesTotal counts appended audit entries.
var entriesTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "rbac_audit_entries_total",
		Help: "Number of audit entries written, differentiated by resource and severity.",
	},
	[]string{"resource", "severity"},
)
