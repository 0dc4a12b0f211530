package models

import "time"

// BucketKey identifies one heatmap cell: day-of-week by hour-of-day,
// calendar-local. Day numbering is Monday=0 through Sunday=6.
type BucketKey struct {
	Day  int // 0..6, Monday=0
	Hour int // 0..23
}

// DayNames maps the Monday=0 day index to its display name.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayOfWeek converts a timestamp's weekday to the Monday=0 index.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// BucketKeyAt returns the bucket containing the given instant.
func BucketKeyAt(t time.Time) BucketKey {
	return BucketKey{Day: DayOfWeek(t), Hour: t.Hour()}
}
