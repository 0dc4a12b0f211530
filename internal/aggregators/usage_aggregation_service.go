package aggregators

import (
	"context"
	"fmt"
	"time"

	"cluster-stats/internal/models"
	"cluster-stats/internal/shared/loggers"
)

// Weighting selects how bucket counts accumulate: one occurrence per bucket
// touched (the default "usage pattern" semantics), or the sub-interval's whole
// seconds. Duration totals are unaffected by the mode.
type Weighting string

const (
	WeightingOccurrence Weighting = "occurrence"
	WeightingDuration   Weighting = "duration"
)

func NewWeightingFromString(s string) (Weighting, error) {
	switch Weighting(s) {
	case WeightingOccurrence:
		return WeightingOccurrence, nil
	case WeightingDuration:
		return WeightingDuration, nil
	default:
		return "", fmt.Errorf("invalid weighting: %q", s)
	}
}

//go:generate mockgen -source=usage_aggregation_service.go -destination=./mocks/usage_aggregation_service_mock.go -package=mocks
type AggregationService interface {
	// Aggregate consumes one batch of raw sessions and produces a fresh
	// UsageStats. Malformed records are skipped with a warning; an empty or
	// fully-skipped batch yields an empty result, never an error.
	Aggregate(ctx context.Context, sessions []*models.RawSession, fetchCutoff time.Time) (*models.UsageStats, error)
}

type usageAggregationService struct {
	decomposer IntervalDecomposer
	weighting  Weighting
	topHosts   int
}

func NewAggregationService(decomposer IntervalDecomposer, weighting Weighting, topHosts int) AggregationService {
	return &usageAggregationService{
		decomposer: decomposer,
		weighting:  weighting,
		topHosts:   topHosts,
	}
}

func (s *usageAggregationService) Aggregate(ctx context.Context, sessions []*models.RawSession, fetchCutoff time.Time) (*models.UsageStats, error) {
	if fetchCutoff.IsZero() {
		return nil, errInvalidCutoff()
	}

	logger := loggers.Ctx(ctx)
	stats := models.NewEmptyUsageStats()
	users := make(map[string]struct{})
	hosts := make(map[string]struct{})

	for i, raw := range sessions {
		interval, err := s.normalize(raw, fetchCutoff)
		if err != nil {
			logger.Warn().Msgf("skipping record at index %d: %v", i, err)
			metricRecordsSkippedTotal.Inc()
			stats.SkippedRecords++
			continue
		}

		s.accumulate(stats, interval)
		users[interval.UserID] = struct{}{}
		hosts[interval.Host] = struct{}{}
		metricSessionsAggregatedTotal.Inc()
	}

	stats.UniqueUsers = int64(len(users))
	stats.UniqueHosts = int64(len(hosts))

	s.truncateTopHosts(stats)

	if stats.IsEmpty() {
		logger.Info().
			Int64(loggers.FieldSkippedCount, stats.SkippedRecords).
			Msg("no usable sessions, returning empty result")
	}
	return stats, nil
}

// normalize closes an open session at the fetch cutoff and rejects records the
// engine cannot place on the timeline. Rejection means skip-and-warn, never a
// failed run.
func (s *usageAggregationService) normalize(raw *models.RawSession, fetchCutoff time.Time) (models.NormalizedInterval, error) {
	if err := raw.Validate(); err != nil {
		return models.NormalizedInterval{}, err
	}
	if raw.BeginAt.After(fetchCutoff) {
		return models.NormalizedInterval{}, fmt.Errorf("begin_at %s is after fetch cutoff %s",
			raw.BeginAt.Format(time.RFC3339), fetchCutoff.Format(time.RFC3339))
	}

	endAt := fetchCutoff
	if raw.EndAt != nil {
		endAt = *raw.EndAt
	}
	if endAt.Before(raw.BeginAt) {
		return models.NormalizedInterval{}, fmt.Errorf("end_at %s precedes begin_at %s",
			endAt.Format(time.RFC3339), raw.BeginAt.Format(time.RFC3339))
	}

	return models.NormalizedInterval{
		UserID:  raw.UserID,
		Host:    raw.Host,
		BeginAt: raw.BeginAt,
		EndAt:   endAt,
	}, nil
}

func (s *usageAggregationService) accumulate(stats *models.UsageStats, interval models.NormalizedInterval) {
	row := stats.HostHourMatrix[interval.Host]
	if row == nil {
		row = new([24]int64)
		stats.HostHourMatrix[interval.Host] = row
	}

	for _, sub := range s.decomposer.Decompose(interval) {
		weight := int64(1)
		if s.weighting == WeightingDuration {
			weight = int64(sub.Duration() / time.Second)
		}

		stats.Hourly[sub.Key.Hour] += weight
		stats.Daily[sub.Key.Day] += weight
		stats.DayHourMatrix[sub.Key.Day][sub.Key.Hour] += weight
		row[sub.Key.Hour] += weight
	}

	// Convert to seconds once per interval; truncating each sub-interval
	// would make the totals depend on where the hour boundaries fall.
	seconds := int64(interval.Duration() / time.Second)
	stats.HostDurationSeconds[interval.Host] += seconds
	stats.TotalDurationSeconds += seconds

	stats.HostSessionCounts[interval.Host]++
	stats.TotalSessions++

	// Trend series count whole sessions by their begin time
	_, week := interval.BeginAt.ISOWeek()
	stats.WeeklySessions[week]++
	stats.MonthlySessions[int(interval.BeginAt.Month())]++

	if stats.FirstBeginAt.IsZero() || interval.BeginAt.Before(stats.FirstBeginAt) {
		stats.FirstBeginAt = interval.BeginAt
	}
	if interval.BeginAt.After(stats.LastBeginAt) {
		stats.LastBeginAt = interval.BeginAt
	}
}

// truncateTopHosts keeps only the top-N hosts by occurrence count in the
// per-host structures, ties broken by host name ascending for determinism.
// UniqueHosts keeps counting every host seen.
func (s *usageAggregationService) truncateTopHosts(stats *models.UsageStats) {
	if len(stats.HostHourMatrix) <= s.topHosts {
		return
	}

	keep := make(map[string]struct{}, s.topHosts)
	for _, host := range stats.HostsByOccurrence()[:s.topHosts] {
		keep[host] = struct{}{}
	}

	for host := range stats.HostHourMatrix {
		if _, ok := keep[host]; ok {
			continue
		}
		delete(stats.HostHourMatrix, host)
		delete(stats.HostDurationSeconds, host)
		delete(stats.HostSessionCounts, host)
	}
}
