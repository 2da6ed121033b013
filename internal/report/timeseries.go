package report

import (
	"fmt"
	"strconv"
	"strings"

	"noteup/internal/core"
)

// Window selects the chart range: a trailing day count, or WindowAll for
// the earliest record's date through today.
type Window int

const WindowAll Window = 0

// ParseWindow parses a chart window parameter: "all" or a positive day
// count such as "7", "30", "180", "365".
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return WindowAll, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("invalid chart window %q", s)
	}
	return Window(days), nil
}

// Bucket holds the totals attributed to a single calendar day. Cumulative
// is the running balance from the window start through this day.
type Bucket struct {
	Date       core.Date `json:"date"`
	Income     int64     `json:"income"`
	Expense    int64     `json:"expense"`
	Cumulative int64     `json:"cumulative"`
}

// Project buckets records by calendar day over the window ending today.
// Every day in the window is present even with zero activity, in ascending
// date order. Records dated after today are excluded. An all-time window
// over zero records yields an empty series: no window start can be
// established.
func Project(records []core.Record, w Window) []Bucket {
	return projectAsOf(records, w, core.Today())
}

func projectAsOf(records []core.Record, w Window, today core.Date) []Bucket {
	start, ok := windowStart(records, w, today)
	if !ok {
		return nil
	}

	days := start.DaysUntil(today) + 1
	buckets := make([]Bucket, days)
	for i := range buckets {
		buckets[i].Date = start.Add(i)
	}

	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(today) {
			continue
		}
		b := &buckets[start.DaysUntil(r.Date)]
		switch r.Kind {
		case core.Income:
			b.Income += r.Amount
		case core.Expense:
			b.Expense += r.Amount
		}
	}

	var running int64
	for i := range buckets {
		running += buckets[i].Income - buckets[i].Expense
		buckets[i].Cumulative = running
	}
	return buckets
}

// windowStart resolves the first day of the window. For an all-time window
// the start is the earliest record date not in the future; with no such
// record there is no window.
func windowStart(records []core.Record, w Window, today core.Date) (core.Date, bool) {
	if w > 0 {
		return today.Add(-(int(w) - 1)), true
	}
	var earliest core.Date
	for _, r := range records {
		if r.Date.After(today) {
			continue
		}
		if earliest.IsZero() || r.Date.Before(earliest) {
			earliest = r.Date
		}
	}
	if earliest.IsZero() {
		return core.Date{}, false
	}
	return earliest, true
}
