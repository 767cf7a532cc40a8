package submissions

import (
	"strings"
	"time"
)

// Stats are the dashboard's aggregate counters.
type Stats struct {
	Total int `json:"total"`
	Today int `json:"today"`
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"2006-01-02",
}

// ComputeStats counts all records and those submitted on now's calendar day.
func ComputeStats(records []Submission, now time.Time) Stats {
	stats := Stats{Total: len(records)}
	y, m, d := now.Date()
	for _, r := range records {
		ts, ok := ParseTimestamp(r.Timestamp, now.Location())
		if !ok {
			continue
		}
		ty, tm, td := ts.In(now.Location()).Date()
		if ty == y && tm == m && td == d {
			stats.Today++
		}
	}
	return stats
}

// ParseTimestamp reads the sheet's timestamp column. Zone-less values are
// interpreted in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
