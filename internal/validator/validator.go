// Package validator runs the five property-family checks spec.md requires
// of every ingestion tick: freshness, completeness, consistency, forecast
// horizon and cache health. Results are appended to the rolling
// validation_log table via internal/storage.
//
// Each check is grounded on a teacher quality-gate pattern: freshness and
// completeness mirror the TTL/staleness comparisons in the teacher's
// internal/clientdata.Repository (GetIfFresh), while consistency sums the
// system generation/demand balance with gonum.org/v1/gonum/floats.
package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/nem-sentinel/internal/cache"
	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// Thresholds bounds the checks below; exported so tests and cmd/ can tune
// them without touching validator internals.
type Thresholds struct {
	DispatchMaxAge    time.Duration // DISPATCHIS/SCADA freshness budget
	TradingMaxAge     time.Duration
	PredispatchMaxAge time.Duration
	MinRegionCoverage int // regions expected per dispatch tick

	CompletenessWindow time.Duration // lookback window for the four completeness sub-checks
	MinSCADAUnits      int           // distinct generator_scada units expected in the window
	FCASServiceCount   int           // distinct FCAS services expected in the window
	MinBatteryUnits    int           // distinct battery_dispatch units expected in the window

	MaxSystemImbalance float64       // |Σgen-Σdemand|/Σdemand above this is a warning
	MinDispatchPrice   float64       // NEM market price floor
	MaxDispatchPrice   float64       // NEM market price cap
	ConsistencyWindow  time.Duration // lookback window for the price/SoC range checks

	MinP5MinIntervals       int // distinct P5MIN intervals expected in the latest run
	MinPredispatchIntervals int // distinct predispatch intervals expected in the latest run
	MinSTPASAIntervals      int // distinct ST PASA intervals expected in the latest run

	MinCacheHitRatio float64 // below this, cache health is a warning not a failure
}

// DefaultThresholds matches spec.md's stated operational targets.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DispatchMaxAge:    10 * time.Minute,
		TradingMaxAge:     35 * time.Minute,
		PredispatchMaxAge: 40 * time.Minute,
		MinRegionCoverage: len(domain.Regions),

		CompletenessWindow: 10 * time.Minute,
		MinSCADAUnits:      400,
		FCASServiceCount:   9,
		MinBatteryUnits:    30,

		MaxSystemImbalance: 0.05,
		MinDispatchPrice:   -1000,
		MaxDispatchPrice:   16600,
		ConsistencyWindow:  time.Hour,

		MinP5MinIntervals:       12,
		MinPredispatchIntervals: 96,
		MinSTPASAIntervals:      336,

		MinCacheHitRatio: 0.5,
	}
}

// Validator runs all checks against the market database and the tiered
// cache it was given, producing one domain.ValidationReport per call.
type Validator struct {
	db         *storage.Relational
	cache      *cache.TieredCache // may be nil; the cache-health check is then skipped
	thresholds Thresholds
	log        zerolog.Logger
}

// New builds a Validator. cacheRef may be nil. cmd/scraper passes the
// scraper process's own cache (the one its HotCache writes into), not the
// ReadAPI's.
func New(db *storage.Relational, cacheRef *cache.TieredCache, thresholds Thresholds, log zerolog.Logger) *Validator {
	return &Validator{
		db:         db,
		cache:      cacheRef,
		thresholds: thresholds,
		log:        log.With().Str("component", "validator").Logger(),
	}
}

// Run executes every check and persists the combined report.
func (v *Validator) Run(ctx context.Context) (domain.ValidationReport, error) {
	report := domain.ValidationReport{
		Passed:  true,
		Metrics: map[string]float64{},
		RunAt:   time.Now().UTC(),
	}

	v.checkFreshness(ctx, &report)
	v.checkCompleteness(ctx, &report)
	v.checkConsistency(ctx, &report)
	v.checkForecastHorizon(ctx, &report)
	v.checkCacheHealth(&report)

	if len(report.Issues) > 0 {
		report.Passed = false
	}

	if err := v.db.InsertValidationLog(ctx, report); err != nil {
		return report, fmt.Errorf("validator: persist report: %w", err)
	}
	return report, nil
}

// checkFreshness flags any table whose newest row is older than its
// cadence-appropriate budget.
func (v *Validator) checkFreshness(ctx context.Context, report *domain.ValidationReport) {
	tables := map[string]string{
		"dispatch_prices":     "settlement_date",
		"generator_scada":     "settlement_date",
		"trading_prices":      "settlement_date",
		"predispatch_forecasts": "run_datetime",
	}
	budgets := map[string]time.Duration{
		"dispatch_prices":       v.thresholds.DispatchMaxAge,
		"generator_scada":       v.thresholds.DispatchMaxAge,
		"trading_prices":        v.thresholds.TradingMaxAge,
		"predispatch_forecasts": v.thresholds.PredispatchMaxAge,
	}

	latest, err := v.db.TableFreshness(ctx, tables)
	if err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("freshness check query failed: %v", err))
		return
	}
	now := time.Now().UTC()
	for table, budget := range budgets {
		ts, ok := latest[table]
		if !ok {
			// An empty dispatch_prices/generator_scada table means the
			// core 5-minute feed has never landed: that is staleness,
			// not an expected cold start, and must fail validation.
			if table == "dispatch_prices" || table == "generator_scada" {
				report.Issues = append(report.Issues, fmt.Sprintf("%s: no rows yet, feed is stale", table))
				continue
			}
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: no rows yet", table))
			continue
		}
		age := now.Sub(ts)
		report.Metrics[table+"_age_seconds"] = age.Seconds()
		if age > budget {
			report.Issues = append(report.Issues, fmt.Sprintf("%s: stale by %s (budget %s)", table, age.Round(time.Second), budget))
		}
	}
}

// checkCompleteness runs spec.md's four completeness sub-checks over the
// trailing CompletenessWindow: region count, distinct SCADA units, distinct
// FCAS services, and distinct battery units. Region count and FCAS service
// count are hard failures (a partial bundle or a dropped FCAS feed means
// downstream consumers are working from incomplete data); SCADA and
// battery unit coverage are warnings, since individual units drop in and
// out of service for operational reasons unrelated to ingestion health.
func (v *Validator) checkCompleteness(ctx context.Context, report *domain.ValidationReport) {
	count, at, err := v.db.RegionCoverage(ctx)
	if err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("completeness check query failed: %v", err))
		return
	}
	if at.IsZero() {
		report.Issues = append(report.Issues, "dispatch_prices: no rows yet, 0/5 regions reporting")
		return
	}
	report.Metrics["region_coverage"] = float64(count)
	if count < v.thresholds.MinRegionCoverage {
		report.Issues = append(report.Issues, fmt.Sprintf("dispatch_prices: only %d/%d regions reporting at %s", count, v.thresholds.MinRegionCoverage, at.Format(time.RFC3339)))
	}

	cutoff := time.Now().UTC().Add(-v.thresholds.CompletenessWindow)

	scadaUnits, err := v.db.ScadaUnitCoverage(ctx, cutoff)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("scada coverage check failed: %v", err))
	} else {
		report.Metrics["scada_unit_coverage"] = float64(scadaUnits)
		if scadaUnits < v.thresholds.MinSCADAUnits {
			report.Warnings = append(report.Warnings, fmt.Sprintf("generator_scada: only %d units reporting in last %s, want at least %d", scadaUnits, v.thresholds.CompletenessWindow, v.thresholds.MinSCADAUnits))
		}
	}

	fcasServices, err := v.db.FCASServiceCoverage(ctx, cutoff)
	if err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("fcas coverage check failed: %v", err))
	} else {
		report.Metrics["fcas_service_coverage"] = float64(fcasServices)
		if fcasServices < v.thresholds.FCASServiceCount {
			report.Issues = append(report.Issues, fmt.Sprintf("fcas_prices: only %d/%d services priced in last %s", fcasServices, v.thresholds.FCASServiceCount, v.thresholds.CompletenessWindow))
		}
	}

	batteryUnits, err := v.db.BatteryUnitCoverage(ctx, cutoff)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("battery coverage check failed: %v", err))
	} else {
		report.Metrics["battery_unit_coverage"] = float64(batteryUnits)
		if batteryUnits < v.thresholds.MinBatteryUnits {
			report.Warnings = append(report.Warnings, fmt.Sprintf("battery_dispatch: only %d units reporting in last %s, want at least %d", batteryUnits, v.thresholds.CompletenessWindow, v.thresholds.MinBatteryUnits))
		}
	}
}

// checkConsistency runs spec.md's three cross-table consistency properties:
// system-wide generation/demand balance for the latest interval, dispatch
// prices within the NEM's regulated [floor, cap] band over the trailing
// ConsistencyWindow, and battery state-of-charge within [0, 100] over the
// same window. The balance check is a warning (losses and interconnector
// timing skew make small imbalances routine); an out-of-band price or SoC
// reading can only mean a parse bug or a corrupt upstream row, so both are
// hard failures.
func (v *Validator) checkConsistency(ctx context.Context, report *domain.ValidationReport) {
	gen, demand, at, err := v.db.LatestGenerationDemand(ctx)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("consistency: generation/demand query failed: %v", err))
	} else if !at.IsZero() && demand != 0 {
		imbalance := floats.Sum([]float64{gen, -demand})
		ratio := imbalance / demand
		if ratio < 0 {
			ratio = -ratio
		}
		report.Metrics["system_imbalance_ratio"] = ratio
		if ratio > v.thresholds.MaxSystemImbalance {
			report.Warnings = append(report.Warnings, fmt.Sprintf("system balance: |generation-demand|/demand is %.1f%%, want at most %.0f%%", ratio*100, v.thresholds.MaxSystemImbalance*100))
		}
	}

	cutoff := time.Now().UTC().Add(-v.thresholds.ConsistencyWindow)

	badPrices, err := v.db.OutOfRangePriceCount(ctx, v.thresholds.MinDispatchPrice, v.thresholds.MaxDispatchPrice, cutoff)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("consistency: price range query failed: %v", err))
	} else {
		report.Metrics["out_of_range_price_count"] = float64(badPrices)
		if badPrices > 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("dispatch_prices: %d rows in last %s outside [%.0f, %.0f]", badPrices, v.thresholds.ConsistencyWindow, v.thresholds.MinDispatchPrice, v.thresholds.MaxDispatchPrice))
		}
	}

	badSoC, err := v.db.OutOfRangeSoCCount(ctx, 0, 100, cutoff)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("consistency: SoC range query failed: %v", err))
	} else {
		report.Metrics["out_of_range_soc_count"] = float64(badSoC)
		if badSoC > 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("battery_dispatch: %d rows in last %s outside [0, 100] SoC", badSoC, v.thresholds.ConsistencyWindow))
		}
	}
}

// checkForecastHorizon confirms the most recent run of each forecast feed
// (P5MIN, PREDISPATCH, ST PASA) actually carries the interval count
// spec.md promises, catching a truncated bundle that parsed cleanly but
// stopped short of its full horizon.
func (v *Validator) checkForecastHorizon(ctx context.Context, report *domain.ValidationReport) {
	horizons := []struct {
		table string
		min   int
		label string
	}{
		{"p5min_forecasts", v.thresholds.MinP5MinIntervals, "p5min_forecasts"},
		{"predispatch_forecasts", v.thresholds.MinPredispatchIntervals, "predispatch_forecasts"},
		{"stpasa_forecasts", v.thresholds.MinSTPASAIntervals, "stpasa_forecasts"},
	}
	for _, h := range horizons {
		count, err := v.db.ForecastIntervalCount(ctx, h.table)
		if err != nil {
			report.Issues = append(report.Issues, fmt.Sprintf("%s horizon check query failed: %v", h.label, err))
			continue
		}
		if count == 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: no rows yet", h.label))
			continue
		}
		report.Metrics[h.label+"_interval_count"] = float64(count)
		if count < h.min {
			report.Issues = append(report.Issues, fmt.Sprintf("%s: horizon only %d intervals, want at least %d", h.label, count, h.min))
		}
	}
}

// checkCacheHealth surfaces the given cache's hit ratio as a metric and a soft
// warning; a cold cache right after deploy is expected, not a fault, so
// this never raises an Issue.
func (v *Validator) checkCacheHealth(report *domain.ValidationReport) {
	if v.cache == nil {
		return
	}
	stats := v.cache.Stats()
	ratio := stats.HitRatio()
	report.Metrics["cache_hit_ratio"] = ratio
	report.Metrics["cache_tier1_hits"] = float64(stats.Tier1Hits)
	report.Metrics["cache_tier2_hits"] = float64(stats.Tier2Hits)
	report.Metrics["cache_misses"] = float64(stats.Misses)
	total := stats.Tier1Hits + stats.Tier2Hits + stats.Misses
	if total > 50 && ratio < v.thresholds.MinCacheHitRatio {
		report.Warnings = append(report.Warnings, fmt.Sprintf("cache hit ratio %.2f below target %.2f", ratio, v.thresholds.MinCacheHitRatio))
	}
}
