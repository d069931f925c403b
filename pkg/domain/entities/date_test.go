package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_AddDaysRollsOver(t *testing.T) {
	testCases := []struct {
		name     string
		start    Date
		days     int
		expected string
	}{
		{"year rollover", NewDate(2024, 12, 25), 10, "2025-01-04"},
		{"leap day", NewDate(2024, 2, 28), 1, "2024-02-29"},
		{"non leap year", NewDate(2023, 2, 28), 1, "2023-03-01"},
		{"month end", NewDate(2024, 1, 31), 1, "2024-02-01"},
		{"zero", NewDate(2024, 6, 1), 0, "2024-06-01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.start.AddDays(tc.days)
			if got.String() != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
			if tc.start.DaysUntil(got) != tc.days {
				t.Errorf("Expected %d days between dates, got %d", tc.days, tc.start.DaysUntil(got))
			}
		})
	}
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	d := DateOf(time.Date(2024, 3, 10, 23, 30, 0, 0, loc))
	if d.String() != "2024-03-10" {
		t.Errorf("Expected 2024-03-10, got %s", d)
	}
}

func TestDate_JSON(t *testing.T) {
	data, err := json.Marshal(NewDate(2024, 7, 4))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2024-07-04"` {
		t.Errorf("Expected \"2024-07-04\", got %s", data)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2025-01-04"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !d.Equal(NewDate(2025, 1, 4)) {
		t.Errorf("Expected 2025-01-04, got %s", d)
	}

	if err := json.Unmarshal([]byte(`"04/01/2025"`), &d); err == nil {
		t.Error("Expected error for malformed date, got none")
	}
}
