package utils

import (
	"testing"
	"time"
)

func TestParseMinuteOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"-1:00", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMinuteOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMinuteOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMinuteOfDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinuteOfDay(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{750, "12:30"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatMinuteOfDay(tt.input); got != tt.want {
			t.Errorf("FormatMinuteOfDay(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 540, 1439} {
		parsed, err := ParseMinuteOfDay(FormatMinuteOfDay(m))
		if err != nil {
			t.Fatalf("round trip %d: %v", m, err)
		}
		if parsed != m {
			t.Errorf("round trip %d = %d", m, parsed)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 10 {
		t.Errorf("ParseDate = %v, want 2025-06-10", d)
	}

	if _, err := ParseDate("10/06/2025"); err == nil {
		t.Error("ParseDate accepted a non ISO date")
	}
}

func TestTruncateToDate(t *testing.T) {
	in := time.Date(2025, time.June, 10, 15, 42, 7, 99, time.UTC)
	got := TruncateToDate(in)

	want := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TruncateToDate = %v, want %v", got, want)
	}
}
