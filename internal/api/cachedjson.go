package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aristath/nem-sentinel/internal/cache"
)

// servedJSON runs producer under the tiered cache and request coalescer:
// a cache hit returns immediately; a miss coalesces concurrent callers
// for the same key into a single producer call, per spec.md §4.8.
func servedJSON(ctx context.Context, tc *cache.TieredCache, rc *cache.RequestCoalescer, key string, ttl time.Duration, producer func(ctx context.Context) (any, error)) ([]byte, string, error) {
	if entry, ok := tc.Get(key); ok {
		return entry.Data, entry.SourceTier, nil
	}

	data, _, err := rc.Do(key, func() ([]byte, error) {
		v, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		tc.Set(key, encoded, ttl)
		return encoded, nil
	})
	if err != nil {
		return nil, "", err
	}
	return data, "miss", nil
}
