package valueobject

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		expected int
	}{
		{"leap February", 2024, time.February, 29},
		{"common February", 2023, time.February, 28},
		{"century non-leap", 1900, time.February, 28},
		{"400-year leap", 2000, time.February, 29},
		{"thirty-day month", 2024, time.April, 30},
		{"thirty-one-day month", 2024, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name          string
		year          int
		month         time.Month
		delta         int
		expectedYear  int
		expectedMonth time.Month
	}{
		{"zero delta", 2024, time.May, 0, 2024, time.May},
		{"within year", 2024, time.January, 3, 2024, time.April},
		{"year carry", 2024, time.November, 2, 2025, time.January},
		{"multi year carry", 2024, time.December, 25, 2027, time.January},
		{"negative delta", 2024, time.February, -3, 2023, time.November},
		{"exact year", 2024, time.March, 12, 2025, time.March},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := AddMonths(tt.year, tt.month, tt.delta)
			if y != tt.expectedYear || m != tt.expectedMonth {
				t.Errorf("expected %d-%02d, got %d-%02d", tt.expectedYear, tt.expectedMonth, y, m)
			}
		})
	}
}

func TestClampDay(t *testing.T) {
	if got := ClampDay(2024, time.February, 31); got != 29 {
		t.Errorf("expected 29, got %d", got)
	}
	if got := ClampDay(2023, time.February, 30); got != 28 {
		t.Errorf("expected 28, got %d", got)
	}
	if got := ClampDay(2024, time.March, 15); got != 15 {
		t.Errorf("expected 15, got %d", got)
	}
	if got := ClampDay(2024, time.March, 0); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestDateOf(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	instant := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)

	if got := DateOf(instant, warsaw).String(); got != "2024-03-10" {
		t.Errorf("expected 2024-03-10 in Warsaw, got %s", got)
	}
	if got := DateOf(instant, newYork).String(); got != "2024-03-09" {
		t.Errorf("expected 2024-03-09 in New York, got %s", got)
	}
	if got := DateOf(instant, nil).String(); got != "2024-03-09" {
		t.Errorf("expected 2024-03-09 in UTC, got %s", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a := MustParseDate("2024-01-31")
	b := MustParseDate("2024-02-01")

	if a.Number() != 20240131 {
		t.Errorf("expected 20240131, got %d", a.Number())
	}
	if !a.Before(b) || b.Before(a) {
		t.Error("expected 2024-01-31 before 2024-02-01")
	}
	if !b.After(a) {
		t.Error("expected 2024-02-01 after 2024-01-31")
	}
	if a.Compare(a) != 0 || a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Error("unexpected Compare results")
	}
	if !a.Between(a, b) || !b.Between(a, b) || MustParseDate("2024-02-02").Between(a, b) {
		t.Error("unexpected Between results")
	}
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		start    string
		days     int
		expected string
	}{
		{"2024-02-28", 1, "2024-02-29"},
		{"2024-02-29", 1, "2024-03-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-03-31", 7, "2024-04-07"},
		// DST change in Europe happens on 2024-03-31; calendar arithmetic must not drift.
		{"2024-03-30", 2, "2024-04-01"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got := MustParseDate(tt.start).AddDays(tt.days).String()
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDateDaysUntil(t *testing.T) {
	if got := MustParseDate("2024-01-01").DaysUntil(MustParseDate("2024-12-31")); got != 365 {
		t.Errorf("expected 365, got %d", got)
	}
	if got := MustParseDate("2024-05-10").DaysUntil(MustParseDate("2024-05-07")); got != -3 {
		t.Errorf("expected -3, got %d", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Error("expected error for nonexistent date")
	}
	if _, err := ParseDate("10.05.2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
	d, err := ParseDate("2024-05-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year != 2024 || d.Month != time.May || d.Day != 10 {
		t.Errorf("unexpected fields: %+v", d)
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Due  Date  `json:"due"`
		Next *Date `json:"next"`
	}

	encoded, err := json.Marshal(wrapper{Due: MustParseDate("2024-05-10")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `{"due":"2024-05-10","next":null}` {
		t.Errorf("unexpected encoding: %s", encoded)
	}

	var decoded wrapper
	if err := json.Unmarshal([]byte(`{"due":"2024-02-29","next":"2024-03-31"}`), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Due.String() != "2024-02-29" || decoded.Next == nil || decoded.Next.String() != "2024-03-31" {
		t.Errorf("unexpected decoding: %+v", decoded)
	}

	if err := json.Unmarshal([]byte(`{"due":"2024-13-01"}`), &decoded); err == nil {
		t.Error("expected error for invalid month")
	}
}

func TestLoadLocation(t *testing.T) {
	fallback := time.UTC
	if loc, ok := LoadLocation("", fallback); ok || loc != fallback {
		t.Error("expected fallback for empty name")
	}
	if loc, ok := LoadLocation("Mars/Olympus_Mons", fallback); ok || loc != fallback {
		t.Error("expected fallback for unknown zone")
	}
	if _, ok := LoadLocation("Europe/Warsaw", fallback); !ok {
		t.Skip("tzdata not available")
	}
}
