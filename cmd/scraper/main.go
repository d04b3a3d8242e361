// Command scraper runs the ingestion runtime: a 5-minute cron tick that
// fans out across AEMO report families, persists parsed rows, validates
// data health, and exposes a small admin HTTP surface for operators.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/nem-sentinel/internal/alert"
	"github.com/aristath/nem-sentinel/internal/cache"
	"github.com/aristath/nem-sentinel/internal/config"
	"github.com/aristath/nem-sentinel/internal/hub"
	"github.com/aristath/nem-sentinel/internal/logging"
	"github.com/aristath/nem-sentinel/internal/orchestrator"
	"github.com/aristath/nem-sentinel/internal/scheduler"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/aristath/nem-sentinel/internal/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/process"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.DevMode).With().Str("service", "scraper").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(cfg.RelationalPath(), storage.ProfileMarket)
	if err != nil {
		log.Fatal().Err(err).Msg("open market database")
	}
	defer db.Close()

	archive, err := storage.NewArchive(ctx, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatal().Err(err).Msg("init archive")
	}

	sink := alert.New(cfg.AlertWebhook, log)
	tieredCache := cache.New(cfg.CacheTTL)
	hotCache := storage.NewHotCache(tieredCache)
	validate := validator.New(db, tieredCache, validator.DefaultThresholds(), log)
	liveHub := hub.New(cfg.HubSnapshotPath(), log)

	orch := orchestrator.New(cfg.AEMOBaseURL, db, archive, hotCache, sink, validate, liveHub, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(fmt.Sprintf("@every %s", cfg.IngestInterval), orch); err != nil {
		log.Fatal().Err(err).Msg("register ingestion job")
	}
	sched.Start()
	defer sched.Stop()

	router := buildAdminRouter(orch, validate, log)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ScraperPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting scraper admin server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("admin server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

func buildAdminRouter(orch *orchestrator.Orchestrator, validate *validator.Validator, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthPayload())
	})

	r.Post("/trigger", func(w http.ResponseWriter, r *http.Request) {
		if err := orch.Tick(r.Context()); err != nil {
			log.Error().Err(err).Msg("manual trigger failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sources": orch.States()})
	})

	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		diag, err := orch.Diagnose(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, diag)
	})

	r.Get("/validate", func(w http.ResponseWriter, r *http.Request) {
		report, err := validate.Run(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	return r
}

type healthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	UptimeSec int64     `json:"uptime_seconds,omitempty"`
	RSSBytes  uint64    `json:"rss_bytes,omitempty"`
}

var processStart = time.Now()

// healthPayload extends spec.md's bare {status, service, timestamp} with
// process uptime and RSS via gopsutil, per SPEC_FULL.md's health
// diagnostics supplement.
func healthPayload() healthStatus {
	h := healthStatus{Status: "ok", Service: "nem-sentinel-scraper", Timestamp: time.Now().UTC(), UptimeSec: int64(time.Since(processStart).Seconds())}

	pid := int32(os.Getpid())
	if proc, err := process.NewProcess(pid); err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			h.RSSBytes = info.RSS
		}
	}
	return h
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
