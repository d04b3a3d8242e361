package cache

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTieredCacheHitsTierOne(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("latest:NSW1", []byte(`{"rrp":50}`), 0)

	entry, ok := c.Get("latest:NSW1")
	require.True(t, ok)
	assert.Equal(t, "kv", entry.SourceTier)
	assert.Equal(t, []byte(`{"rrp":50}`), entry.Data)
}

func TestTieredCachePromotesFromTierTwo(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("latest:VIC1", []byte(`{"rrp":75}`), 0)

	time.Sleep(20 * time.Millisecond) // tier one expires, tier two (4x TTL) still fresh

	entry, ok := c.Get("latest:VIC1")
	require.True(t, ok)
	assert.Equal(t, "http", entry.SourceTier)
	assert.Equal(t, []byte(`{"rrp":75}`), entry.Data)

	// promoted back into tier one
	entry2, ok := c.Get("latest:VIC1")
	require.True(t, ok)
	assert.Equal(t, "kv", entry2.SourceTier)
}

func TestTieredCacheMissAfterBothExpire(t *testing.T) {
	c := New(5 * time.Millisecond)
	c.Set("latest:QLD1", []byte(`{"rrp":10}`), 0)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("latest:QLD1")
	assert.False(t, ok)
}

func TestTieredCacheStatsTracksHitsAndMisses(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("latest:SA1", []byte(`{"rrp":30}`), 0)

	_, _ = c.Get("latest:SA1")  // tier1 hit
	_, _ = c.Get("latest:TAS1") // miss

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Tier1Hits)
	assert.Equal(t, int64(0), stats.Tier2Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRatio(), 0.001)

	c.Purge()
	assert.Equal(t, Stats{}, c.Stats())
}

func TestInvalidateDropsTrackedKeys(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("prices:NSW1", []byte(`{"rrp":50}`), 0)
	c.Set("prices:VIC1", []byte(`{"rrp":60}`), 0)
	c.TrackKey("prices:*", "prices:NSW1")
	c.TrackKey("prices:*", "prices:VIC1")

	c.Invalidate("prices:*")

	_, ok := c.Get("prices:NSW1")
	assert.False(t, ok)
	_, ok = c.Get("prices:VIC1")
	assert.False(t, ok)
}

func TestInvalidateLeavesUntrackedKeysAlone(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("prices:NSW1", []byte(`{"rrp":50}`), 0)
	c.Set("fcas:latest", []byte(`{}`), 0)
	c.TrackKey("prices:*", "prices:NSW1")

	c.Invalidate("prices:*")

	_, ok := c.Get("fcas:latest")
	assert.True(t, ok)
}

func TestCoalescerDedupesConcurrentMisses(t *testing.T) {
	c := NewCoalescer()
	var calls int64
	fn := func() ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return []byte("value"), nil
	}

	results := make(chan []byte, 10)
	for i := 0; i < 10; i++ {
		go func() {
			data, _, err := c.Do("shared-key", fn)
			require.NoError(t, err)
			results <- data
		}()
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, []byte("value"), <-results)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}
