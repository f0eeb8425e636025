package utils

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	cases := map[string]time.Time{
		"2025-06-01":                time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		" 2025-06-01 ":              time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		"2025-06-01 08:30:00":       time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		"2025-06-01T08:30:00Z":      time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		"2025-06-01T10:30:00+02:00": time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		"2025-06-01T10:00:00":       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		"2025-06-01T10:00:00.250":   time.Date(2025, 6, 1, 10, 0, 0, 250000000, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseFlexibleDate(in)
		if err != nil {
			t.Fatalf("ParseFlexibleDate(%q) error: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseFlexibleDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, bad := range []string{"", "tomorrow", "2025-13-01", "01/06/2025"} {
		if _, err := ParseFlexibleDate(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("  ")
	if err != nil || got != nil {
		t.Fatalf("blank input = %v, %v", got, err)
	}
	got, err = ParseOptionalDate("2025-06-05")
	if err != nil || got == nil || FormatDate(*got) != "2025-06-05" {
		t.Fatalf("ParseOptionalDate = %v, %v", got, err)
	}
}
