package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("NEM_DATA_DIR", dataDir)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SCRAPER_PORT", "")
	t.Setenv("INGEST_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 8090, cfg.ScraperPort)
	require.Equal(t, 5*time.Minute, cfg.IngestInterval)
	require.Equal(t, "", cfg.S3Bucket)
}

func TestLoadHonoursEnvOverrides(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("NEM_DATA_DIR", dataDir)
	t.Setenv("API_PORT", "9999")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.APIPort)
	require.Equal(t, 90*time.Second, cfg.CacheTTL)
	require.True(t, cfg.DevMode)
}

func TestDerivedPathsLiveUnderDataDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("NEM_DATA_DIR", dataDir)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cfg.DataDir, "market.db"), cfg.RelationalPath())
	require.Equal(t, filepath.Join(cfg.DataDir, "ledger.db"), cfg.LedgerPath())
	require.Equal(t, filepath.Join(cfg.DataDir, "hub_snapshot.msgpack"), cfg.HubSnapshotPath())
}
