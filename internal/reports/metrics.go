package reports

import (
	"cluster-stats/internal/shared/metrics"
)

var (
	metricReportsWrittenTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "reports_written_total",
		},
	)
)
