package storage

import (
	"context"
	"time"
)

// TableFreshness reports, for each of the given tables and timestamp
// column, the most recent value as a parsed UTC instant. A table with no
// rows yet is omitted from the result rather than erroring, since an
// empty table on first boot is expected, not a fault.
func (r *Relational) TableFreshness(ctx context.Context, tables map[string]string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(tables))
	for table, col := range tables {
		var latest *string
		// table/col come from a fixed caller-supplied map, never user input.
		err := r.conn.QueryRowContext(ctx, `SELECT MAX(`+col+`) FROM `+table).Scan(&latest)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			continue
		}
		t, err := time.Parse(timeLayout, *latest)
		if err != nil {
			continue
		}
		out[table] = t
	}
	return out, nil
}

// RegionCoverage returns the number of distinct regions present in
// dispatch_prices for its most recent settlement_date, used to detect a
// partial DISPATCHIS bundle (fewer than the five NEM regions reporting).
func (r *Relational) RegionCoverage(ctx context.Context) (int, time.Time, error) {
	var latest *string
	if err := r.conn.QueryRowContext(ctx, `SELECT MAX(settlement_date) FROM dispatch_prices`).Scan(&latest); err != nil {
		return 0, time.Time{}, err
	}
	if latest == nil {
		return 0, time.Time{}, nil
	}
	var count int
	if err := r.conn.QueryRowContext(ctx, `SELECT COUNT(DISTINCT region) FROM dispatch_prices WHERE settlement_date = ?`, *latest).Scan(&count); err != nil {
		return 0, time.Time{}, err
	}
	t, _ := time.Parse(timeLayout, *latest)
	return count, t, nil
}

// ForecastIntervalCount returns the number of distinct forecast intervals
// present in the most recent run of table (one of p5min_forecasts,
// predispatch_forecasts, stpasa_forecasts), used to confirm each forecast
// horizon actually carries the interval count spec.md promises rather than
// a truncated run.
func (r *Relational) ForecastIntervalCount(ctx context.Context, table string) (int, error) {
	// table is a fixed caller-supplied literal, never user input.
	var latestRun *string
	if err := r.conn.QueryRowContext(ctx, `SELECT MAX(run_datetime) FROM `+table+` WHERE kind='region'`).Scan(&latestRun); err != nil {
		return 0, err
	}
	if latestRun == nil {
		return 0, nil
	}
	var count int
	err := r.conn.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT interval_datetime) FROM `+table+` WHERE kind='region' AND run_datetime = ?`, *latestRun).Scan(&count)
	return count, err
}

// ScadaUnitCoverage returns the number of distinct SCADA units reporting
// since cutoff, one of the completeness check's four sub-checks.
func (r *Relational) ScadaUnitCoverage(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT unit_id) FROM generator_scada WHERE settlement_date >= ?`,
		cutoff.UTC().Format(timeLayout)).Scan(&count)
	return count, err
}

// FCASServiceCoverage returns the number of distinct FCAS services priced
// since cutoff.
func (r *Relational) FCASServiceCoverage(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT service) FROM fcas_prices WHERE settlement_date >= ?`,
		cutoff.UTC().Format(timeLayout)).Scan(&count)
	return count, err
}

// BatteryUnitCoverage returns the number of distinct battery units
// reporting dispatch since cutoff.
func (r *Relational) BatteryUnitCoverage(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT unit_id) FROM battery_dispatch WHERE settlement_date >= ?`,
		cutoff.UTC().Format(timeLayout)).Scan(&count)
	return count, err
}

// LatestGenerationDemand sums regional_demand and dispatched_gen across all
// regions for the most recent settlement_date in dispatch_prices, used by
// the consistency check's system-balance property.
func (r *Relational) LatestGenerationDemand(ctx context.Context) (totalGen, totalDemand float64, at time.Time, err error) {
	var latest *string
	if err = r.conn.QueryRowContext(ctx, `SELECT MAX(settlement_date) FROM dispatch_prices`).Scan(&latest); err != nil {
		return 0, 0, time.Time{}, err
	}
	if latest == nil {
		return 0, 0, time.Time{}, nil
	}
	err = r.conn.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(dispatched_gen),0), COALESCE(SUM(regional_demand),0)
		FROM dispatch_prices WHERE settlement_date = ?`, *latest).Scan(&totalGen, &totalDemand)
	if err != nil {
		return 0, 0, time.Time{}, err
	}
	at, _ = time.Parse(timeLayout, *latest)
	return totalGen, totalDemand, at, nil
}

// OutOfRangePriceCount counts dispatch_prices rows since cutoff whose rrp
// falls outside [min, max], the NEM's regulated price floor/cap.
func (r *Relational) OutOfRangePriceCount(ctx context.Context, min, max float64, cutoff time.Time) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dispatch_prices
		WHERE settlement_date >= ? AND (rrp < ? OR rrp > ?)`,
		cutoff.UTC().Format(timeLayout), min, max).Scan(&count)
	return count, err
}

// OutOfRangeSoCCount counts battery_dispatch rows since cutoff whose
// soc_percent falls outside [min, max].
func (r *Relational) OutOfRangeSoCCount(ctx context.Context, min, max float64, cutoff time.Time) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM battery_dispatch
		WHERE settlement_date >= ? AND (soc_percent < ? OR soc_percent > ?)`,
		cutoff.UTC().Format(timeLayout), min, max).Scan(&count)
	return count, err
}
