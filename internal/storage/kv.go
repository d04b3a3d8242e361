package storage

import (
	"encoding/json"
	"time"

	"github.com/aristath/nem-sentinel/internal/cache"
	"github.com/aristath/nem-sentinel/internal/domain"
)

const (
	hotTTL5Min  = 60 * time.Second
	hotTTL30Min = 300 * time.Second
)

// HotCache writes the latest-snapshot keys spec.md's StorageLayer section
// names (prices:latest, prices:{region}, fcas:latest, demand:forecast:
// {region}, comprehensive:latest) into the tiered cache it wraps right
// after a successful ingest. cmd/scraper wraps the scraper process's own
// in-memory cache; the ReadAPI in cmd/api holds a separate cache and does
// not see these entries. All writes are best-effort: a
// nil cache or marshal failure is silently skipped, never fails the
// ingestion tick that called it.
type HotCache struct {
	cache *cache.TieredCache
}

// NewHotCache wraps c. c may be nil, in which case every write is a no-op.
func NewHotCache(c *cache.TieredCache) *HotCache {
	return &HotCache{cache: c}
}

// WriteDispatchSnapshot publishes the latest merged DISPATCHIS bundle
// under prices:latest, one prices:{region} per region present, fcas:
// latest, and a combined comprehensive:latest, all with the 60 s TTL
// spec.md assigns 5-minute data.
func (h *HotCache) WriteDispatchSnapshot(prices []domain.DispatchPriceRow, fcas []domain.FCASServiceRow) {
	if h == nil || h.cache == nil {
		return
	}
	h.setTracked("prices:latest", prices, hotTTL5Min, "prices:*")

	byRegion := make(map[domain.Region][]domain.DispatchPriceRow)
	for _, p := range prices {
		byRegion[p.Region] = append(byRegion[p.Region], p)
	}
	for region, rows := range byRegion {
		h.setTracked("prices:"+string(region), rows, hotTTL5Min, "prices:*")
	}

	h.setTracked("fcas:latest", fcas, hotTTL5Min, "fcas:*")

	comprehensive := struct {
		Prices []domain.DispatchPriceRow `json:"prices"`
		FCAS   []domain.FCASServiceRow   `json:"fcas"`
	}{prices, fcas}
	h.setTracked("comprehensive:latest", comprehensive, hotTTL5Min, "comprehensive:*")
}

// WriteDemandForecast publishes the latest predispatch region forecast for
// region under demand:forecast:{region}, with the 300 s TTL spec.md
// assigns 30-minute data.
func (h *HotCache) WriteDemandForecast(region domain.Region, rows []domain.PredispatchRegionRow) {
	if h == nil || h.cache == nil {
		return
	}
	h.setTracked("demand:forecast:"+string(region), rows, hotTTL30Min, "demand:forecast:*")
}

func (h *HotCache) setTracked(key string, v any, ttl time.Duration, pattern string) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.cache.Set(key, encoded, ttl)
	h.cache.TrackKey(pattern, key)
}
