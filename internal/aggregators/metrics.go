package aggregators

import (
	"cluster-stats/internal/shared/metrics"
)

var (
	metricSessionsAggregatedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "sessions_aggregated_total",
		},
	)

	metricRecordsSkippedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "records_skipped_total",
		},
	)
)
