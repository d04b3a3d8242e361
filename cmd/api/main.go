// Command api runs the serving runtime: the ReadAPI and LiveHub behind a
// single HTTP listener, backed by the market and ledger databases the
// scraper process maintains independently.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/nem-sentinel/internal/api"
	"github.com/aristath/nem-sentinel/internal/authclient"
	"github.com/aristath/nem-sentinel/internal/cache"
	"github.com/aristath/nem-sentinel/internal/config"
	"github.com/aristath/nem-sentinel/internal/hub"
	"github.com/aristath/nem-sentinel/internal/ledger"
	"github.com/aristath/nem-sentinel/internal/logging"
	"github.com/aristath/nem-sentinel/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.DevMode).With().Str("service", "api").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	marketDB, err := storage.Open(cfg.RelationalPath(), storage.ProfileMarket)
	if err != nil {
		log.Fatal().Err(err).Msg("open market database")
	}
	defer marketDB.Close()

	ledgerDB, err := storage.Open(cfg.LedgerPath(), storage.ProfileLedger)
	if err != nil {
		log.Fatal().Err(err).Msg("open ledger database")
	}
	defer ledgerDB.Close()

	liveHub := hub.New(cfg.HubSnapshotPath(), log)
	tradingLedger := ledger.New(ledgerDB, log)
	auth := authclient.New(cfg.AuthServiceURL, log)
	tieredCache := cache.New(cfg.CacheTTL)
	coalescer := cache.NewCoalescer()

	server := api.New(api.Config{
		Port:      cfg.APIPort,
		Log:       log,
		DB:        marketDB,
		Ledger:    tradingLedger,
		Hub:       liveHub,
		Auth:      auth,
		Cache:     tieredCache,
		Coalescer: coalescer,
		DevMode:   cfg.DevMode,
	})

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("api server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
