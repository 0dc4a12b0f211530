package models

import (
	"sort"
	"time"
)

// UsageStats is the accumulator produced by one aggregation run. It is owned
// exclusively by the run that created it; consumers read it, never mutate it.
//
// Hourly, Daily and the two matrices count bucket touches: one session
// overlapping a bucket contributes one occurrence to that bucket regardless of
// overlap duration (or its whole seconds under duration weighting). Duration
// totals are always exact seconds and are invariant under interval splitting.
type UsageStats struct {
	Hourly        [24]int64    `json:"hourly"`
	Daily         [7]int64     `json:"daily"`
	DayHourMatrix [7][24]int64 `json:"dayHourMatrix"`

	// HostHourMatrix and the per-host totals are truncated to the top hosts
	// by occurrence count after accumulation.
	HostHourMatrix      map[string]*[24]int64 `json:"hostHourMatrix"`
	HostDurationSeconds map[string]int64      `json:"hostDurationSeconds"`
	HostSessionCounts   map[string]int64      `json:"hostSessionCounts"`

	// Trend series keyed by ISO week number and calendar month of each
	// session's begin time. One count per session, not per bucket.
	WeeklySessions  map[int]int64 `json:"weeklySessions"`
	MonthlySessions map[int]int64 `json:"monthlySessions"`

	TotalSessions        int64     `json:"totalSessions"`
	SkippedRecords       int64     `json:"skippedRecords"`
	UniqueUsers          int64     `json:"uniqueUsers"`
	UniqueHosts          int64     `json:"uniqueHosts"`
	TotalDurationSeconds int64     `json:"totalDurationSeconds"`
	FirstBeginAt         time.Time `json:"firstBeginAt"`
	LastBeginAt          time.Time `json:"lastBeginAt"`
}

func NewEmptyUsageStats() *UsageStats {
	return &UsageStats{
		HostHourMatrix:      make(map[string]*[24]int64),
		HostDurationSeconds: make(map[string]int64),
		HostSessionCounts:   make(map[string]int64),
		WeeklySessions:      make(map[int]int64),
		MonthlySessions:     make(map[int]int64),
	}
}

// IsEmpty reports whether the run produced no usable sessions. Consumers
// render "no data" instead of dividing by zero denominators.
func (s *UsageStats) IsEmpty() bool {
	return s.TotalSessions == 0
}

// AverageSessionSeconds returns the mean session duration, or 0 when the run
// is empty.
func (s *UsageStats) AverageSessionSeconds() float64 {
	if s.TotalSessions == 0 {
		return 0
	}
	return float64(s.TotalDurationSeconds) / float64(s.TotalSessions)
}

// HostAverageSeconds returns the mean session duration on one host, or 0 when
// the host is unknown.
func (s *UsageStats) HostAverageSeconds(host string) float64 {
	count := s.HostSessionCounts[host]
	if count == 0 {
		return 0
	}
	return float64(s.HostDurationSeconds[host]) / float64(count)
}

// HostsByOccurrence returns host names ordered by total occurrence count
// descending, ties broken by host name ascending for determinism.
func (s *UsageStats) HostsByOccurrence() []string {
	hosts := make([]string, 0, len(s.HostHourMatrix))
	for host := range s.HostHourMatrix {
		hosts = append(hosts, host)
	}
	sort.Slice(hosts, func(i, j int) bool {
		ti, tj := s.hostTotal(hosts[i]), s.hostTotal(hosts[j])
		if ti != tj {
			return ti > tj
		}
		return hosts[i] < hosts[j]
	})
	return hosts
}

func (s *UsageStats) hostTotal(host string) int64 {
	row := s.HostHourMatrix[host]
	if row == nil {
		return 0
	}
	var total int64
	for _, v := range row {
		total += v
	}
	return total
}
