package datetime

import (
	"math"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  time.Time
		wantError bool
	}{
		{"Full date", "2023-01-15", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"Year-month shorthand", "2024-07", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), false},
		{"RFC 3339", "2022-03-04T10:00:00Z", time.Date(2022, 3, 4, 10, 0, 0, 0, time.UTC), false},
		{"Surrounding whitespace", "  2023-12-31 ", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"Empty", "", time.Time{}, true},
		{"Garbage", "not-a-date", time.Time{}, true},
		{"Bad month", "2023-13-01", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if !result.Equal(tt.expected) {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestYearAndMonth(t *testing.T) {
	tests := []struct {
		date          string
		expectedYear  int
		expectedMonth int
	}{
		{"2023-01-15", 2023, 0},
		{"2023-07-01", 2023, 6},
		{"1999-12-31", 1999, 11},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			year, month := YearAndMonth(MustParseTime(DateLayout, tt.date))
			if year != tt.expectedYear || month != tt.expectedMonth {
				t.Errorf("YearAndMonth(%s) = (%d, %d), expected (%d, %d)",
					tt.date, year, month, tt.expectedYear, tt.expectedMonth)
			}
		})
	}
}

func TestRemainingMonthsFraction(t *testing.T) {
	tests := []struct {
		month    int
		expected float64
	}{
		{0, 1.0},
		{6, 0.5},
		{11, 1.0 / 12.0},
	}

	for _, tt := range tests {
		result := RemainingMonthsFraction(tt.month)
		if math.Abs(result-tt.expected) > 1e-12 {
			t.Errorf("RemainingMonthsFraction(%d) = %v, expected %v", tt.month, result, tt.expected)
		}
	}
}

func TestMustParseTimePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustParseTime() expected panic on invalid input")
		}
	}()
	MustParseTime(DateLayout, "invalid")
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 4, 9, 17, 45, 3, 0, time.UTC)
	expected := time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)
	if got := Today(now); !got.Equal(expected) {
		t.Errorf("Today() = %v, expected %v", got, expected)
	}
}
