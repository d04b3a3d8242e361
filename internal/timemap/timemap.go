// Package timemap converts between the NEM source system's timestamps
// (fixed UTC+10, never DST-adjusted) and UTC, and computes the settlement,
// trading-interval and trading-day boundaries the rest of the pipeline
// keys its rows on.
//
// The source system does not observe daylight saving: implementations
// MUST use a fixed offset rather than a civil time.Location, which could
// silently apply DST around the Australian spring-forward/autumn-back
// dates and shift every row by an hour.
package timemap

import (
	"fmt"
	"time"
)

// sourceOffset is the fixed UTC+10 offset used by every NEM reporting feed,
// regardless of the host's local daylight-saving rules.
var sourceOffset = time.FixedZone("AEST", 10*60*60)

const sourceLayout = "2006/01/02 15:04:05"

// ParseSourceToUTC parses a "YYYY/MM/DD HH:MM:SS" source-local timestamp
// (fixed UTC+10) and returns the equivalent UTC instant. A malformed input
// is a fatal, non-coercible error: it indicates a corrupt upstream file and
// must not be silently defaulted.
func ParseSourceToUTC(s string) (time.Time, error) {
	t, err := time.ParseInLocation(sourceLayout, s, sourceOffset)
	if err != nil {
		return time.Time{}, fmt.Errorf("timemap: malformed source timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatUTCAsSource is the inverse of ParseSourceToUTC.
func FormatUTCAsSource(t time.Time) string {
	return t.In(sourceOffset).Format(sourceLayout)
}

// AlignTo5Min floors t to the most recent 5-minute UTC boundary.
func AlignTo5Min(t time.Time) time.Time {
	return alignTo(t, 5*time.Minute)
}

// AlignTo30Min floors t to the most recent 30-minute UTC boundary.
func AlignTo30Min(t time.Time) time.Time {
	return alignTo(t, 30*time.Minute)
}

func alignTo(t time.Time, d time.Duration) time.Time {
	u := t.UTC()
	return u.Truncate(d)
}

// tradingDayStartHour is the local hour (AEST) at which a new NEM trading
// day begins.
const tradingDayStartHour = 4

// TradingDayStart returns the most recent 04:00 source-local boundary at or
// before t, expressed as a UTC instant.
func TradingDayStart(t time.Time) time.Time {
	local := t.In(sourceOffset)
	start := time.Date(local.Year(), local.Month(), local.Day(), tradingDayStartHour, 0, 0, 0, sourceOffset)
	if local.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start.UTC()
}
