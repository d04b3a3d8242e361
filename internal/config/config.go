// Package config loads process configuration from the environment, the
// same layered way the teacher's internal/config does: a .env file via
// godotenv, then plain os.Getenv reads with typed defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything both cmd/scraper and cmd/api need.
type Config struct {
	DataDir        string        // base directory for the sqlite files and the hub snapshot
	LogLevel       string        // debug | info | warn | error
	ScraperPort    int           // admin HTTP port for cmd/scraper (/health, /trigger, /test, /validate)
	APIPort        int           // HTTP port for cmd/api (ReadAPI + LiveHub)
	AEMOBaseURL    string        // root of the AEMO current-report directory tree
	AuthServiceURL string        // external auth collaborator base URL
	AlertWebhook   string        // optional webhook URL for AlertSink; empty disables it
	S3Bucket       string        // object-archive bucket name; empty disables archival
	S3Region       string
	IngestInterval time.Duration // orchestrator tick cadence, normally 5m
	CacheTTL       time.Duration // hot KV tier TTL for latest-price reads
	DevMode        bool
}

// Load reads configuration from the environment, applying the same
// priority as the teacher: .env file, then os.Getenv, then hard defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("NEM_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:        absDataDir,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ScraperPort:    getEnvAsInt("SCRAPER_PORT", 8090),
		APIPort:        getEnvAsInt("API_PORT", 8080),
		AEMOBaseURL:    getEnv("AEMO_BASE_URL", "https://nemweb.com.au/Reports/Current"),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", "http://localhost:9000"),
		AlertWebhook:   getEnv("ALERT_WEBHOOK_URL", ""),
		S3Bucket:       getEnv("ARCHIVE_S3_BUCKET", ""),
		S3Region:       getEnv("ARCHIVE_S3_REGION", "ap-southeast-2"),
		IngestInterval: getEnvAsDuration("INGEST_INTERVAL", 5*time.Minute),
		CacheTTL:       getEnvAsDuration("CACHE_TTL", 30*time.Second),
		DevMode:        getEnvAsBool("DEV_MODE", false),
	}

	return cfg, nil
}

// RelationalPath returns the path to the market-data sqlite file.
func (c *Config) RelationalPath() string {
	return filepath.Join(c.DataDir, "market.db")
}

// LedgerPath returns the path to the paper-trading ledger sqlite file,
// kept separate from market.db so the ledger's stricter durability profile
// doesn't throttle the high-volume market-data writer.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.DataDir, "ledger.db")
}

// HubSnapshotPath returns the path to LiveHub's last-known-price snapshot.
func (c *Config) HubSnapshotPath() string {
	return filepath.Join(c.DataDir, "hub_snapshot.msgpack")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
