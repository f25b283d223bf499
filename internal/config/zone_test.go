package config_test

import (
	"testing"
	"time"

	"depthsync/internal/config"
)

func mustTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestParseZone(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"", 0},
		{"Z", 0},
		{"+00:00", 0},
		{"-08:00", -8 * 3600},
		{"+0530", 5*3600 + 30*60},
		{"+09", 9 * 3600},
		{" -03:30", -(3*3600 + 30*60)},
	}
	for _, tt := range tests {
		loc, err := config.ParseZone(tt.input)
		if err != nil {
			t.Fatalf("ParseZone(%q): %v", tt.input, err)
		}
		if _, offset := mustTime(t).In(loc).Zone(); offset != tt.offset {
			t.Errorf("ParseZone(%q) offset = %d, want %d", tt.input, offset, tt.offset)
		}
	}
}

func TestParseZoneRejectsGarbage(t *testing.T) {
	for _, input := range []string{"+8", "+25:00", "-08:75", "Mars/Olympus_Mons", "+ab:cd"} {
		if _, err := config.ParseZone(input); err == nil {
			t.Errorf("ParseZone(%q) expected error", input)
		}
	}
}
