package reports

import (
	"fmt"
	"strings"
	"time"

	"cluster-stats/internal/models"
)

const summaryTopHosts = 5

// RenderSummary produces the human-readable totals block for one run. It only
// reads the stats, never mutates them.
func RenderSummary(stats *models.UsageStats) string {
	var b strings.Builder
	b.WriteString("Cluster usage summary\n")
	b.WriteString("=====================\n")

	if stats.IsEmpty() {
		b.WriteString("No usable sessions in the requested range.\n")
		if stats.SkippedRecords > 0 {
			fmt.Fprintf(&b, "Skipped records: %d\n", stats.SkippedRecords)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Total sessions:      %d\n", stats.TotalSessions)
	fmt.Fprintf(&b, "Unique users:        %d\n", stats.UniqueUsers)
	fmt.Fprintf(&b, "Unique hosts:        %d\n", stats.UniqueHosts)
	fmt.Fprintf(&b, "Average session:     %s\n", formatSeconds(stats.AverageSessionSeconds()))
	fmt.Fprintf(&b, "Total usage:         %.1f hours\n", float64(stats.TotalDurationSeconds)/3600)
	fmt.Fprintf(&b, "Date range:          %s to %s\n",
		stats.FirstBeginAt.Format("2006-01-02 15:04"),
		stats.LastBeginAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Peak hour:           %02d:00\n", peakHour(stats))
	fmt.Fprintf(&b, "Peak day:            %s\n", models.DayNames[peakDay(stats)])
	if stats.SkippedRecords > 0 {
		fmt.Fprintf(&b, "Skipped records:     %d\n", stats.SkippedRecords)
	}

	hosts := stats.HostsByOccurrence()
	if len(hosts) > summaryTopHosts {
		hosts = hosts[:summaryTopHosts]
	}
	b.WriteString("Top hosts:\n")
	for _, host := range hosts {
		fmt.Fprintf(&b, "  %-12s %3d sessions, avg %s\n",
			host, stats.HostSessionCounts[host], formatSeconds(stats.HostAverageSeconds(host)))
	}

	return b.String()
}

func peakHour(stats *models.UsageStats) int {
	peak := 0
	for hour, count := range stats.Hourly {
		if count > stats.Hourly[peak] {
			peak = hour
		}
	}
	return peak
}

func peakDay(stats *models.UsageStats) int {
	peak := 0
	for day, count := range stats.Daily {
		if count > stats.Daily[peak] {
			peak = day
		}
	}
	return peak
}

func formatSeconds(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
