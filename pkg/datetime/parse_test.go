package datetime

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Valid date",
			input:    "2027-01-15",
			expected: "2027-01-15",
		},
		{
			name:     "Surrounding whitespace",
			input:    "  2030-12-31 ",
			expected: "2030-12-31",
		},
		{
			name:    "Empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Month layout rejected",
			input:   "2027-01",
			wantErr: true,
		},
		{
			name:    "Impossible day",
			input:   "2027-02-30",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error = %v", tt.input, err)
			}
			if Format(result) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, Format(result), tt.expected)
			}
			if result.Location() != time.UTC {
				t.Errorf("ParseDate(%q) location = %v, expected UTC", tt.input, result.Location())
			}
		})
	}
}

func TestMustParseDatePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseDate to panic with invalid date")
		}
	}()

	MustParseDate("invalid-date")
}

func TestNormalize(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	input := time.Date(2026, time.October, 17, 23, 45, 0, 0, loc)

	result := Normalize(input)
	if Format(result) != "2026-10-17" {
		t.Errorf("Normalize() = %s, expected 2026-10-17", Format(result))
	}
	if result.Hour() != 0 || result.Minute() != 0 || result.Location() != time.UTC {
		t.Errorf("Normalize() = %v, expected UTC midnight", result)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"Same day", "2027-01-01", "2027-01-01", 0},
		{"One day", "2027-01-01", "2027-01-02", 1},
		{"Across leap day", "2028-02-28", "2028-03-01", 2},
		{"Full year", "2027-01-01", "2028-01-01", 365},
		{"Reversed", "2027-01-10", "2027-01-01", -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DaysBetween(MustParseDate(tt.start), MustParseDate(tt.end))
			if result != tt.expected {
				t.Errorf("DaysBetween(%s, %s) = %d, expected %d", tt.start, tt.end, result, tt.expected)
			}
		})
	}
}

func TestDaysBetweenIgnoresClock(t *testing.T) {
	start := time.Date(2027, time.January, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2027, time.January, 2, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 1 {
		t.Errorf("DaysBetween() = %d, expected 1", got)
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected int
	}{
		{"Same month", "2026-10-01", "2026-10-31", 0},
		{"Day of month ignored", "2026-10-31", "2026-11-01", 1},
		{"Across year", "2026-10-17", "2027-10-17", 12},
		{"Across year earlier month", "2026-10-17", "2027-02-01", 4},
		{"Past date", "2026-10-17", "2026-08-01", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthsBetween(MustParseDate(tt.from), MustParseDate(tt.to))
			if result != tt.expected {
				t.Errorf("MonthsBetween(%s, %s) = %d, expected %d", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestCountSteps(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		stepDays int
		expected int
	}{
		{"Daily single day", "2027-01-01", "2027-01-02", 1, 1},
		{"Daily full week", "2027-01-01", "2027-01-08", 1, 7},
		{"Weekly lands exactly on end", "2027-01-01", "2027-01-15", 7, 2},
		{"Weekly one day past", "2027-01-01", "2027-01-16", 7, 3},
		{"Thirty day steps over 360 days", "2027-01-01", "2027-12-27", 30, 12},
		{"Thirty day steps regardless of month length", "2027-01-31", "2027-03-01", 30, 1},
		{"End before start", "2027-01-10", "2027-01-01", 1, 0},
		{"Equal dates", "2027-01-01", "2027-01-01", 7, 0},
		{"Zero step", "2027-01-01", "2027-02-01", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CountSteps(MustParseDate(tt.start), MustParseDate(tt.end), tt.stepDays)
			if result != tt.expected {
				t.Errorf("CountSteps(%s, %s, %d) = %d, expected %d", tt.start, tt.end, tt.stepDays, result, tt.expected)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	start := MustParseDate("2027-02-27")
	if got := Format(AddDays(start, 2)); got != "2027-03-01" {
		t.Errorf("AddDays() = %s, expected 2027-03-01", got)
	}
	if got := Format(AddDays(start, -27)); got != "2027-01-31" {
		t.Errorf("AddDays() = %s, expected 2027-01-31", got)
	}
}
