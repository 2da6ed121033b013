package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the wire format for dates: ISO-8601 day granularity.
const DateFormat = "2006-01-02"

// Date is a calendar date with day granularity. The zero value is "no date".
// All calendar arithmetic is anchored in UTC so bucketing stays stable
// across runs regardless of the host timezone.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns a normalized Date; out-of-range components roll over the
// way time.Date rolls them.
func NewDate(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	return NewDate(time.Now().UTC().Date())
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// IsZero reports whether d is the "no date" value.
func (d Date) IsZero() bool { return d.year == 0 && d.month == 0 && d.day == 0 }

func (d Date) time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Add returns the date shifted by the given number of days.
func (d Date) Add(days int) Date { return NewDate(d.year, d.month, d.day+days) }

// Before reports whether d falls strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d falls strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// DaysUntil returns the number of whole days from d to x; negative when x is
// earlier than d.
func (d Date) DaysUntil(x Date) int {
	return int(x.time().Sub(d.time()) / (24 * time.Hour))
}

func (d Date) String() string { return d.time().Format(DateFormat) }

// ParseDate parses an ISO-8601 date ("2024-01-31"). Single-digit month or
// day is tolerated.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		// Permissive fallback for 2024-1-3 style input.
		t, err = time.Parse("2006-1-2", s)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", s, DateFormat, err)
	}
	return NewDate(t.Date()), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
