package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// StatsTimeLayout is the wire format the hit-counting service speaks.
const StatsTimeLayout = "2006-01-02 15:04:05"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// TruncateMicros truncates t to microsecond precision, the ordering key
// resolution request timestamps are stored with.
func TruncateMicros(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}
