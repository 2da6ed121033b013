package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-01-01", NewDate(2024, time.January, 1), true},
		{"2024-1-3", NewDate(2024, time.January, 3), true},
		{"2024-12-31", NewDate(2024, time.December, 31), true},
		{"not-a-date", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseDate(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDate(%q) expected error", tc.in)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.January, 31)
	if got := d.Add(1); got != NewDate(2024, time.February, 1) {
		t.Errorf("Add(1) = %v", got)
	}
	if got := d.Add(-31); got != NewDate(2023, time.December, 31) {
		t.Errorf("Add(-31) = %v", got)
	}
	if got := NewDate(2024, time.January, 1).DaysUntil(NewDate(2024, time.January, 8)); got != 7 {
		t.Errorf("DaysUntil = %d, want 7", got)
	}
	if !NewDate(2024, time.January, 1).Before(NewDate(2024, time.January, 2)) {
		t.Error("Before failed")
	}
	if !NewDate(2024, time.January, 2).After(NewDate(2024, time.January, 1)) {
		t.Error("After failed")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-05"` {
		t.Fatalf("marshal = %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip: got %v want %v", back, d)
	}
}
