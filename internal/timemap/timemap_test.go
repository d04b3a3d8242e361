package timemap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceToUTCRoundTrip(t *testing.T) {
	inputs := []string{
		"2025/08/23 19:05:00",
		"2025/10/05 02:30:00", // would be the AEST->AEDT spring-forward instant in a DST-aware zone
		"2026/04/05 02:30:00", // would be the AEDT->AEST fall-back instant
	}
	for _, in := range inputs {
		got, err := ParseSourceToUTC(in)
		require.NoError(t, err)
		assert.Equal(t, in, FormatUTCAsSource(got))
	}
}

func TestParseSourceToUTCFixedOffsetNoDST(t *testing.T) {
	// 2025/10/05 02:30:00 is within the window a DST-aware Australia/Sydney
	// zone would treat as a spring-forward gap. The source system ignores
	// DST entirely, so this must parse to exactly UTC+10, i.e. 16:30 UTC.
	got, err := ParseSourceToUTC("2025/10/05 02:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 4, 16, 30, 0, 0, time.UTC), got)
}

func TestParseSourceToUTCMalformedIsFatal(t *testing.T) {
	_, err := ParseSourceToUTC("not-a-timestamp")
	require.Error(t, err)
}

func TestAlignTo5Min(t *testing.T) {
	in := time.Date(2025, 8, 23, 9, 7, 42, 0, time.UTC)
	want := time.Date(2025, 8, 23, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, want, AlignTo5Min(in))
}

func TestAlignTo30Min(t *testing.T) {
	in := time.Date(2025, 8, 23, 9, 47, 0, 0, time.UTC)
	want := time.Date(2025, 8, 23, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, want, AlignTo30Min(in))
}

func TestTradingDayStartBoundary(t *testing.T) {
	// 03:59 local belongs to the previous trading day.
	before, err := ParseSourceToUTC("2025/08/23 03:59:00")
	require.NoError(t, err)
	wantBefore, err := ParseSourceToUTC("2025/08/22 04:00:00")
	require.NoError(t, err)
	assert.Equal(t, wantBefore, TradingDayStart(before))

	// 04:00 local belongs to the current trading day.
	at, err := ParseSourceToUTC("2025/08/23 04:00:00")
	require.NoError(t, err)
	assert.Equal(t, at, TradingDayStart(at))
}
