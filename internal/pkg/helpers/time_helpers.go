package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// CSVTimestampLayout is the layout used for feedback submission times in
// CSV exports.
const CSVTimestampLayout = "2006-01-02 15:04:05"

// ParseDuration parses a duration string, returns the default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatClock renders an HH:MM 24-hour time as a 12-hour clock string for
// email bodies ("14:30" -> "2:30 PM"). Returns the input unchanged when it
// does not parse.
func FormatClock(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}
