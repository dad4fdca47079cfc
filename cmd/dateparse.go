package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

// parseSinceTime turns a --since value into a point in time. Accepted forms,
// tried in order so parsing stays deterministic:
//   - named days: "today", "yesterday" (midnight local time)
//   - ISO 8601: "2006-01-02", "2006-01-02T15:04:05" with timezone variants
//   - day counts: "7d", "30d" (time.ParseDuration has no day unit)
//   - Go durations: "24h", "2h30m"
//   - natural language via go-naturaldate: "last week", "3 days ago"
func parseSinceTime(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	now := time.Now()

	switch dateStr {
	case "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), nil
	}

	isoFormats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, format := range isoFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	if days, ok := strings.CutSuffix(dateStr, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n >= 0 {
			return now.AddDate(0, 0, -n), nil
		}
	}

	if d, err := time.ParseDuration(dateStr); err == nil {
		return now.Add(-d), nil
	}

	t, err := naturaldate.Parse(dateStr, now)
	if err != nil || t.Equal(now) {
		// naturaldate answers "now" for input it cannot interpret.
		return time.Time{}, fmt.Errorf("unable to parse date %q: supported formats are ISO 8601 (2006-01-02), day counts (7d), durations (24h), today/yesterday, or natural language (last week)", dateStr)
	}

	return t, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
