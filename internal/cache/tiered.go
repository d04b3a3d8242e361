// Package cache implements the read-path caching ReadAPI sits behind: a
// two-tier TieredCache (fast in-process tier, slower promoted tier) and a
// RequestCoalescer that collapses concurrent cache-miss fetches for the
// same key into one.
//
// The fresh/stale, cache-first lookup shape is grounded on the teacher's
// internal/clientdata.Repository (GetIfFresh / Get / Store with an
// expires_at horizon); TieredCache generalizes that to two in-process
// tiers instead of one sqlite-backed one, since spec.md's hot-path latency
// budget rules out a disk round trip on every request.
package cache

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// promoteTTL is the fixed TTL a tier-two hit is promoted into tier one
// with, independent of the key's own tier-one TTL at write time.
const promoteTTL = 60 * time.Second

type entry struct {
	data    []byte
	expires time.Time
}

func (e entry) fresh(now time.Time) bool { return now.Before(e.expires) }

// TieredCache is a two-tier read-through cache. Tier one is short-TTL and
// checked first; tier two is longer-TTL and, on a hit, promotes the value
// back into tier one. Values are msgpack-encoded before entering tier two,
// mimicking a shared HTTP-cache response body.
type TieredCache struct {
	mu    sync.RWMutex
	tier1 map[string]entry
	tier2 map[string]entry

	tier1TTL time.Duration
	tier2TTL time.Duration

	hits1   atomic.Int64
	hits2   atomic.Int64
	misses  atomic.Int64
}

// Stats is a point-in-time snapshot of cache hit/miss counts, read by the
// validator's cache-health check.
type Stats struct {
	Tier1Hits int64
	Tier2Hits int64
	Misses    int64
}

// HitRatio returns the fraction of lookups served by either tier, or 0 if
// there have been no lookups yet.
func (s Stats) HitRatio() float64 {
	total := s.Tier1Hits + s.Tier2Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Tier1Hits+s.Tier2Hits) / float64(total)
}

// Stats returns the cumulative hit/miss counters since the cache was
// created or last had its counters reset by Purge.
func (c *TieredCache) Stats() Stats {
	return Stats{
		Tier1Hits: c.hits1.Load(),
		Tier2Hits: c.hits2.Load(),
		Misses:    c.misses.Load(),
	}
}

// New creates a TieredCache whose default tier-one TTL is tier1TTL; the
// tier-two TTL is always 4x tier1TTL.
func New(tier1TTL time.Duration) *TieredCache {
	tier2TTL := tier1TTL * 4
	return &TieredCache{
		tier1:    make(map[string]entry),
		tier2:    make(map[string]entry),
		tier1TTL: tier1TTL,
		tier2TTL: tier2TTL,
	}
}

// Get looks up key, checking tier one then tier two, and reports which
// tier (if any) served the value so callers can surface an X-Cache header.
func (c *TieredCache) Get(key string) (domain.CachedEntry, bool) {
	now := time.Now()

	c.mu.RLock()
	e1, ok1 := c.tier1[key]
	e2, ok2 := c.tier2[key]
	c.mu.RUnlock()

	if ok1 && e1.fresh(now) {
		c.hits1.Add(1)
		return domain.CachedEntry{Key: key, Data: e1.data, TTL: e1.expires.Sub(now), SourceTier: "kv"}, true
	}
	if ok2 && e2.fresh(now) {
		c.hits2.Add(1)
		data := decode(e2.data)
		c.promote(key, data)
		return domain.CachedEntry{Key: key, Data: data, TTL: e2.expires.Sub(now), SourceTier: "http"}, true
	}
	c.misses.Add(1)
	return domain.CachedEntry{}, false
}

// Set writes value into both tiers. ttl governs tier one's expiry directly
// (callers pass the endpoint-specific TTL spec.md names, e.g. 300s for
// demand forecasts, 3600s for forward prices); tier two gets 4x that so a
// cold tier-one miss still has a longer-lived fallback to promote from. A
// non-positive ttl falls back to the cache's construction-time default.
func (c *TieredCache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.tier1TTL
	}
	now := time.Now()
	encoded, err := msgpack.Marshal(value)
	if err != nil {
		encoded = value // fall back to raw bytes if encoding somehow fails
	}
	c.mu.Lock()
	c.tier1[key] = entry{data: value, expires: now.Add(ttl)}
	c.tier2[key] = entry{data: encoded, expires: now.Add(ttl * 4)}
	c.mu.Unlock()
}

func (c *TieredCache) promote(key string, value []byte) {
	c.mu.Lock()
	c.tier1[key] = entry{data: value, expires: time.Now().Add(promoteTTL)}
	c.mu.Unlock()
}

// TrackKey records key under pattern's tracked-keys index, so a later
// Invalidate(pattern) can find and drop every key written under it (e.g.
// tracking every "prices:*" key written during one ingestion tick so a
// stale-bundle replay can wipe them all in one call).
func (c *TieredCache) TrackKey(pattern, key string) {
	indexKey := "index:" + pattern
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := c.readIndexLocked(indexKey)
	for _, k := range keys {
		if k == key {
			return
		}
	}
	keys = append(keys, key)
	encoded, err := json.Marshal(keys)
	if err != nil {
		return
	}
	c.tier1[indexKey] = entry{data: encoded, expires: time.Now().Add(c.tier2TTL)}
}

// Invalidate drops every key previously tracked under pattern via
// TrackKey, along with the index entry itself, from both tiers.
func (c *TieredCache) Invalidate(pattern string) {
	indexKey := "index:" + pattern
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range c.readIndexLocked(indexKey) {
		delete(c.tier1, k)
		delete(c.tier2, k)
	}
	delete(c.tier1, indexKey)
	delete(c.tier2, indexKey)
}

// readIndexLocked decodes the tracked-keys list for indexKey. Callers must
// hold c.mu.
func (c *TieredCache) readIndexLocked(indexKey string) []string {
	e, ok := c.tier1[indexKey]
	if !ok {
		return nil
	}
	var keys []string
	if err := json.Unmarshal(e.data, &keys); err != nil {
		return nil
	}
	return keys
}

// decode best-effort unwraps a msgpack-encoded tier-two value; tier-one
// values are stored raw and pass through unchanged shape-wise since
// msgpack.Unmarshal into []byte on already-raw bytes would fail, so this
// is only ever called on tier-two reads.
func decode(raw []byte) []byte {
	var out []byte
	if err := msgpack.Unmarshal(raw, &out); err != nil {
		return raw
	}
	return out
}

// Purge drops every entry and resets the hit/miss counters.
func (c *TieredCache) Purge() {
	c.mu.Lock()
	c.tier1 = make(map[string]entry)
	c.tier2 = make(map[string]entry)
	c.mu.Unlock()
	c.hits1.Store(0)
	c.hits2.Store(0)
	c.misses.Store(0)
}
