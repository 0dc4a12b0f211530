package aggregators

import (
	"time"

	"cluster-stats/internal/models"
)

//go:generate mockgen -source=interval_decomposer.go -destination=./mocks/interval_decomposer_mock.go -package=mocks
type IntervalDecomposer interface {
	// Decompose splits an interval into the maximal sub-intervals each fully
	// contained within one (day-of-week, hour-of-day) bucket. Sub-interval
	// durations sum exactly to the interval's duration: no gaps, no overlaps.
	Decompose(interval models.NormalizedInterval) []models.SubInterval
}

type hourBucketDecomposer struct{}

func NewHourBucketDecomposer() IntervalDecomposer {
	return &hourBucketDecomposer{}
}

func (d *hourBucketDecomposer) Decompose(interval models.NormalizedInterval) []models.SubInterval {
	subs := make([]models.SubInterval, 0, 2)

	cursor := interval.BeginAt
	for {
		boundary := nextHourBoundary(cursor)
		end := boundary
		if interval.EndAt.Before(boundary) {
			end = interval.EndAt
		}

		subs = append(subs, models.SubInterval{
			Key:     models.BucketKeyAt(cursor),
			BeginAt: cursor,
			EndAt:   end,
		})

		// An interval ending exactly on a boundary does not touch the next
		// bucket; a zero-duration interval touches exactly one.
		if !end.Before(interval.EndAt) {
			return subs
		}
		cursor = end
	}
}

// nextHourBoundary returns the first hour boundary strictly after t, in t's
// own location so day-of-week stays calendar-local.
func nextHourBoundary(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
}
