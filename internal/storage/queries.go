package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
)

// LatestPrices returns the most recent dispatch price row per region.
func (r *Relational) LatestPrices(ctx context.Context) ([]domain.DispatchPriceRow, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT region, settlement_date, rrp, eep, rop, price_capped, regional_demand,
		       dispatched_gen, net_interchange, fcas_price_json, fcas_required_json,
		       price_firmness, last_changed
		FROM dispatch_prices d
		WHERE settlement_date = (
			SELECT MAX(settlement_date) FROM dispatch_prices WHERE region = d.region
		)
		ORDER BY region`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDispatchPrices(rows)
}

// PriceHistory returns dispatch prices for region since the given instant,
// most recent first.
func (r *Relational) PriceHistory(ctx context.Context, region domain.Region, since time.Time) ([]domain.DispatchPriceRow, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT region, settlement_date, rrp, eep, rop, price_capped, regional_demand,
		       dispatched_gen, net_interchange, fcas_price_json, fcas_required_json,
		       price_firmness, last_changed
		FROM dispatch_prices WHERE region = ? AND settlement_date >= ?
		ORDER BY settlement_date DESC`, string(region), since.Format(timeLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDispatchPrices(rows)
}

func scanDispatchPrices(rows *sql.Rows) ([]domain.DispatchPriceRow, error) {
	var out []domain.DispatchPriceRow
	for rows.Next() {
		var row domain.DispatchPriceRow
		var region, settlement string
		var priceCapped int
		var fcasPriceJSON, fcasReqJSON string
		var firmness, lastChanged *string
		if err := rows.Scan(&region, &settlement, &row.RRP, &row.EEP, &row.ROP, &priceCapped,
			&row.RegionalDemand, &row.DispatchedGen, &row.NetInterchange, &fcasPriceJSON, &fcasReqJSON,
			&firmness, &lastChanged); err != nil {
			return nil, err
		}
		row.Region = domain.Region(region)
		row.SettlementDate, _ = time.Parse(timeLayout, settlement)
		row.PriceCapped = priceCapped != 0
		row.FCASPrice = map[domain.FCASService]float64{}
		_ = json.Unmarshal([]byte(fcasPriceJSON), &row.FCASPrice)
		row.FCASRequiredMW = map[domain.FCASService]float64{}
		_ = json.Unmarshal([]byte(fcasReqJSON), &row.FCASRequiredMW)
		if firmness != nil {
			row.PriceFirmness = *firmness
		}
		if lastChanged != nil {
			t, err := time.Parse(timeLayout, *lastChanged)
			if err == nil {
				row.LastChanged = &t
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LatestFCAS returns the most recent FCAS price row per region/service.
func (r *Relational) LatestFCAS(ctx context.Context) ([]domain.FCASServiceRow, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT region, service, settlement_date, price, enablement_min, enablement_max
		FROM fcas_prices f
		WHERE settlement_date = (
			SELECT MAX(settlement_date) FROM fcas_prices WHERE region = f.region AND service = f.service
		)
		ORDER BY region, service`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.FCASServiceRow
	for rows.Next() {
		var row domain.FCASServiceRow
		var region, service, settlement string
		if err := rows.Scan(&region, &service, &settlement, &row.Price, &row.EnablementMin, &row.EnablementMax); err != nil {
			return nil, err
		}
		row.Region = domain.Region(region)
		row.Service = domain.FCASService(service)
		row.SettlementDate, _ = time.Parse(timeLayout, settlement)
		out = append(out, row)
	}
	return out, rows.Err()
}

// DemandForecast returns PREDISPATCH regional demand forecasts for region
// from the most recent run, ordered by interval.
func (r *Relational) DemandForecast(ctx context.Context, region domain.Region) ([]domain.PredispatchRegionRow, error) {
	var latestRun string
	err := r.conn.QueryRowContext(ctx, `SELECT MAX(run_datetime) FROM predispatch_forecasts WHERE kind='region' AND key=?`,
		string(region)).Scan(&latestRun)
	if err != nil {
		return nil, err
	}
	rows, err := r.conn.QueryContext(ctx, `
		SELECT key, run_datetime, interval_datetime, rrp, regional_demand, available_gen
		FROM predispatch_forecasts WHERE kind='region' AND key=? AND run_datetime=?
		ORDER BY interval_datetime`, string(region), latestRun)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.PredispatchRegionRow
	for rows.Next() {
		var row domain.PredispatchRegionRow
		var key, run, interval string
		if err := rows.Scan(&key, &run, &interval, &row.RRP, &row.RegionalDemand, &row.AvailableGen); err != nil {
			return nil, err
		}
		row.Region = domain.Region(key)
		row.RunDatetime, _ = time.Parse(timeLayout, run)
		row.IntervalDatetime, _ = time.Parse(timeLayout, interval)
		out = append(out, row)
	}
	return out, rows.Err()
}

// BESSCandidates returns the latest battery_dispatch row per unit, used by
// the BESS optimisation endpoint to pick units and their operating limits.
func (r *Relational) BESSCandidates(ctx context.Context) ([]domain.BatteryDispatchRow, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT unit_id, settlement_date, initial_mw, total_cleared_mw, availability,
		       fcas_enablement_json, mode, soc_percent, energy_mwh, nameplate_mw,
		       max_charge_mw, max_discharge_mw, participant, station_name, region
		FROM battery_dispatch b
		WHERE settlement_date = (SELECT MAX(settlement_date) FROM battery_dispatch WHERE unit_id = b.unit_id)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.BatteryDispatchRow
	for rows.Next() {
		var row domain.BatteryDispatchRow
		var settlement, fcasJSON, mode, region string
		if err := rows.Scan(&row.UnitID, &settlement, &row.InitialMW, &row.TotalClearedMW, &row.Availability,
			&fcasJSON, &mode, &row.SoCPercent, &row.EnergyMWh, &row.NameplateMW, &row.MaxChargeMW,
			&row.MaxDischargeMW, &row.Participant, &row.StationName, &region); err != nil {
			return nil, err
		}
		row.SettlementDate, _ = time.Parse(timeLayout, settlement)
		row.Mode = domain.BatteryMode(mode)
		row.Region = domain.Region(region)
		row.FCASEnablement = map[domain.FCASService]float64{}
		_ = json.Unmarshal([]byte(fcasJSON), &row.FCASEnablement)
		out = append(out, row)
	}
	return out, rows.Err()
}

// FuelMix returns the most recent generation-by-fuel rollup, grouped by
// fuel type across all regions.
func (r *Relational) FuelMix(ctx context.Context) (map[string]float64, error) {
	var latest string
	if err := r.conn.QueryRowContext(ctx, `SELECT MAX(interval_datetime) FROM generation_by_fuel`).Scan(&latest); err != nil {
		return nil, err
	}
	rows, err := r.conn.QueryContext(ctx, `
		SELECT fuel_type, SUM(total_mw) FROM generation_by_fuel WHERE interval_datetime = ? GROUP BY fuel_type`, latest)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]float64{}
	for rows.Next() {
		var fuel string
		var mw float64
		if err := rows.Scan(&fuel, &mw); err != nil {
			return nil, err
		}
		out[fuel] = mw
	}
	return out, rows.Err()
}

// RecentValidationLog returns the validation_log rows from the last limit
// runs, most recent first.
func (r *Relational) RecentValidationLog(ctx context.Context, limit int) ([]domain.ValidationReport, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT run_at, passed, issues_json, warnings_json, metrics_json
		FROM validation_log ORDER BY run_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.ValidationReport
	for rows.Next() {
		var report domain.ValidationReport
		var runAt string
		var passed int
		var issuesJSON, warningsJSON, metricsJSON string
		if err := rows.Scan(&runAt, &passed, &issuesJSON, &warningsJSON, &metricsJSON); err != nil {
			return nil, err
		}
		report.RunAt, _ = time.Parse(timeLayout, runAt)
		report.Passed = passed != 0
		_ = json.Unmarshal([]byte(issuesJSON), &report.Issues)
		_ = json.Unmarshal([]byte(warningsJSON), &report.Warnings)
		_ = json.Unmarshal([]byte(metricsJSON), &report.Metrics)
		out = append(out, report)
	}
	return out, rows.Err()
}
