package orchestrator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aristath/nem-sentinel/internal/battery"
	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/fetch"
	"github.com/aristath/nem-sentinel/internal/scan"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Alerter is the narrow interface the orchestrator needs from
// internal/alert, kept local to avoid a storage<->alert import cycle.
type Alerter interface {
	Send(ctx context.Context, summary string, fields map[string]any) error
}

// Validator is the narrow interface the orchestrator needs from
// internal/validator.
type Validator interface {
	Run(ctx context.Context) (domain.ValidationReport, error)
}

// Broadcaster is the narrow interface the orchestrator needs from
// internal/hub, kept local to avoid an orchestrator<->hub import cycle.
type Broadcaster interface {
	Broadcast(ctx context.Context, prices []domain.DispatchPriceRow)
}

// Orchestrator runs one ingestion tick: fan out across report families,
// merge and persist each, then trigger validation.
type Orchestrator struct {
	scanner  *scan.Scanner
	fetcher  *fetch.Fetcher
	db       *storage.Relational
	archive  *storage.Archive
	hotCache *storage.HotCache
	tracker  *battery.Tracker
	alerter  Alerter
	validate Validator
	hub      Broadcaster
	baseURL  string
	log      zerolog.Logger

	states *stateTable

	lastTrading     time.Time
	lastPredispatch time.Time
	lastStPasa      time.Time
	lastNextDay     time.Time
}

// New builds an Orchestrator. hotCache/alerter/validate/hub may be nil
// during tests that don't exercise hot-cache writes, alerting, validation,
// or live broadcast.
func New(baseURL string, db *storage.Relational, archive *storage.Archive, hotCache *storage.HotCache, alerter Alerter, validate Validator, hub Broadcaster, log zerolog.Logger) *Orchestrator {
	l := log.With().Str("component", "orchestrator").Logger()
	return &Orchestrator{
		scanner:  scan.New(&http.Client{Timeout: 30 * time.Second}, l),
		fetcher:  fetch.New(&http.Client{Timeout: 60 * time.Second}, l),
		db:       db,
		archive:  archive,
		hotCache: hotCache,
		tracker:  battery.NewTracker(),
		alerter:  alerter,
		validate: validate,
		hub:      hub,
		baseURL:  baseURL,
		log:      l,
		states:   newStateTable(),
	}
}

// States returns a snapshot of every source's rolling health.
func (o *Orchestrator) States() []SourceState { return o.states.Snapshot() }

// fetchLatest scans baseURL's directory for family, fetches its newest
// archive, and extracts the tabular member's text.
func (o *Orchestrator) fetchLatest(ctx context.Context, family string) (string, []byte, string, error) {
	names, err := o.scanner.List(ctx, o.baseURL, family)
	if err != nil {
		return "", nil, "", fmt.Errorf("scan %s: %w", family, err)
	}
	name := scan.Latest(names)
	if name == "" {
		return "", nil, "", fmt.Errorf("scan %s: no candidate archive found", family)
	}
	url := o.baseURL + "/" + name
	zipBytes, err := o.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", nil, "", fmt.Errorf("fetch %s: %w", family, err)
	}
	csv, err := fetch.ExtractTabular(zipBytes, family)
	if err != nil {
		return "", nil, "", fmt.Errorf("extract %s: %w", family, err)
	}
	return csv, zipBytes, name, nil
}

func (o *Orchestrator) run(ctx context.Context, name string, fn func(ctx context.Context) (int, error)) {
	rows, err := fn(ctx)
	if err != nil {
		o.states.record(name, StatusFailed, 0, err.Error())
		o.log.Error().Err(err).Str("source", name).Msg("ingest failed")
		if o.alerter != nil {
			_ = o.alerter.Send(ctx, fmt.Sprintf("ingest failed: %s", name), map[string]any{"source": name, "error": err.Error()})
		}
		return
	}
	o.states.record(name, StatusOK, rows, "")
	o.log.Debug().Str("source", name).Int("rows", rows).Msg("ingest ok")
}

func (o *Orchestrator) skip(name string) {
	o.states.record(name, StatusSkipped, 0, "")
}

// Tick runs one full ingestion cycle: a parallel fan-out across the
// 5-minute-cadence sources, then a sequential, rate-limited pass over the
// time-gated lower-frequency sources, then validation.
func (o *Orchestrator) Tick(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { o.run(gctx, "DISPATCHIS", o.ingestDispatchIS); return nil })
	g.Go(func() error { o.run(gctx, "DISPATCHSCADA", o.ingestScada); return nil })
	g.Go(func() error { o.run(gctx, "P5MIN", o.ingestP5Min); return nil })
	_ = g.Wait() // per-source errors are already captured in states; Tick itself never fails on them

	now := time.Now()
	if now.Sub(o.lastTrading) >= 30*time.Minute {
		o.run(ctx, "TRADINGIS", o.ingestTrading)
		o.lastTrading = now
	} else {
		o.skip("TRADINGIS")
	}
	if now.Sub(o.lastPredispatch) >= 30*time.Minute {
		o.run(ctx, "PREDISPATCHIS", o.ingestPredispatch)
		o.lastPredispatch = now
	} else {
		o.skip("PREDISPATCHIS")
	}
	if now.Sub(o.lastStPasa) >= 2*time.Hour {
		o.run(ctx, "STPASA", o.ingestStPasa)
		o.lastStPasa = now
	} else {
		o.skip("STPASA")
	}
	if now.Sub(o.lastNextDay) >= 24*time.Hour {
		o.run(ctx, "NEXT_DAY_DISPATCH", o.ingestNextDay)
		o.lastNextDay = now
	} else {
		o.skip("NEXT_DAY_DISPATCH")
	}

	if o.validate != nil {
		report, err := o.validate.Run(ctx)
		if err != nil {
			o.log.Error().Err(err).Msg("validation run failed")
		} else if !report.Passed && o.alerter != nil {
			_ = o.alerter.Send(ctx, "validation failed", map[string]any{"issues": report.Issues})
		}
	}
	return nil
}

// Name implements scheduler.Job.
func (o *Orchestrator) Name() string { return "ingestion-tick" }

// Run implements scheduler.Job; errors are logged inside Tick per source
// and never escape, so this always returns nil.
func (o *Orchestrator) Run() error {
	return o.Tick(context.Background())
}
