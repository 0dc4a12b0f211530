package fetchers

import (
	"cluster-stats/internal/shared/metrics"
)

var (
	metricPagesFetchedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetch,
			Name:      "pages_fetched_total",
		},
	)

	metricRecordsSkippedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetch,
			Name:      "records_skipped_total",
		},
	)

	metricTokenExchangesTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetch,
			Name:      "token_exchanges_total",
		},
	)

	metricRateLimitWaitsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetch,
			Name:      "rate_limit_waits_total",
		},
	)

	metricFetchesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetch,
			Name:      "fetches_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricPageRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetch,
			Name:      "page_request_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"status"},
	)
)
