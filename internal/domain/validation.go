package domain

import "time"

// ValidationReport is the result of one validator run: a pass/fail flag,
// ordered issue/warning lists, and a metrics snapshot, appended to the
// rolling validation_log table.
type ValidationReport struct {
	Passed    bool
	Issues    []string
	Warnings  []string
	Metrics   map[string]float64
	RunAt     time.Time
}

// CachedEntry describes a hot-cache hit for diagnostic surfacing (e.g. the
// X-Cache response header).
type CachedEntry struct {
	Key        string
	Data       []byte
	TTL        time.Duration
	SourceTier string // "kv" | "http" | "miss"
}
