package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Errorf("got %v, want 90m", got)
	}
	if got := ParseDuration("not-a-duration", time.Hour); got != time.Hour {
		t.Errorf("got %v, want the default", got)
	}
	if got := ParseDuration("", 24*time.Hour); got != 24*time.Hour {
		t.Errorf("got %v, want the default", got)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[string]string{
		"14:30": "2:30 PM",
		"09:05": "9:05 AM",
		"00:00": "12:00 AM",
		"12:00": "12:00 PM",
		"junk":  "junk",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%q) = %q, want %q", in, got, want)
		}
	}
}
