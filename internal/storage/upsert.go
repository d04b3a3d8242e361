package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
)

// batchSize bounds how many rows go into a single transaction, per
// spec.md §6's natural-key batched-upsert requirement.
const batchSize = 500

// batch splits rows into chunks of at most batchSize and runs insert for
// each chunk inside its own transaction.
func batch[T any](ctx context.Context, r *Relational, rows []T, insert func(tx *sql.Tx, chunk []T) error) error {
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		if err := r.WithTx(ctx, func(tx *sql.Tx) error { return insert(tx, chunk) }); err != nil {
			return fmt.Errorf("batch upsert rows %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func fcasMapJSON(m map[domain.FCASService]float64) string {
	b, _ := json.Marshal(m)
	return string(b)
}

// UpsertDispatchPrices writes merged dispatch price rows, replacing any
// existing row with the same (region, settlement_date) key.
func (r *Relational) UpsertDispatchPrices(ctx context.Context, rows []domain.DispatchPriceRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.DispatchPriceRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO dispatch_prices
			(region, settlement_date, rrp, eep, rop, price_capped, regional_demand,
			 dispatched_gen, net_interchange, fcas_price_json, fcas_required_json,
			 price_firmness, last_changed)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			var lastChanged any
			if row.LastChanged != nil {
				lastChanged = row.LastChanged.Format(timeLayout)
			}
			if _, err := stmt.ExecContext(ctx,
				string(row.Region), row.SettlementDate.Format(timeLayout), row.RRP, row.EEP, row.ROP,
				boolToInt(row.PriceCapped), row.RegionalDemand, row.DispatchedGen, row.NetInterchange,
				fcasMapJSON(row.FCASPrice), fcasMapJSON(row.FCASRequiredMW), row.PriceFirmness, lastChanged,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertFCAS writes one row per non-zero-priced FCAS service/interval.
func (r *Relational) UpsertFCAS(ctx context.Context, rows []domain.FCASServiceRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.FCASServiceRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO fcas_prices
			(region, service, settlement_date, price, enablement_min, enablement_max)
			VALUES (?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, string(row.Region), string(row.Service),
				row.SettlementDate.Format(timeLayout), row.Price, row.EnablementMin, row.EnablementMax); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertInterconnectors writes per-link flow rows.
func (r *Relational) UpsertInterconnectors(ctx context.Context, rows []domain.InterconnectorFlowRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.InterconnectorFlowRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO interconnector_flows
			(link_id, settlement_date, from_region, to_region, metered_mw, dispatched_mw,
			 losses, import_limit, export_limit, marginal_value, violation)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.LinkID, row.SettlementDate.Format(timeLayout),
				string(row.FromRegion), string(row.ToRegion), row.MeteredMW, row.DispatchedMW,
				row.Losses, row.ImportLimit, row.ExportLimit, row.MarginalValue, row.Violation); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertConstraints writes binding-constraint rows (caller has already
// filtered out non-binding ones via MergeDispatch).
func (r *Relational) UpsertConstraints(ctx context.Context, rows []domain.ConstraintRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.ConstraintRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO constraints
			(constraint_id, settlement_date, rhs, marginal_value, violation)
			VALUES (?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.ConstraintID, row.SettlementDate.Format(timeLayout),
				row.RHS, row.MarginalValue, row.Violation); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertGeneratorDispatch writes UNIT_SOLUTION rows.
func (r *Relational) UpsertGeneratorDispatch(ctx context.Context, rows []domain.GeneratorDispatchRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.GeneratorDispatchRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO generator_dispatch
			(unit_id, settlement_date, intervention, initial_mw, total_cleared_mw,
			 ramp_up_rate, ramp_down_rate, fcas_enablement_json, availability, semi_dispatch_cap)
			VALUES (?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.UnitID, row.SettlementDate.Format(timeLayout),
				boolToInt(row.Intervention), row.InitialMW, row.TotalClearedMW, row.RampUpRate,
				row.RampDownRate, fcasMapJSON(row.FCASEnablement), row.Availability, row.SemiDispatchCap); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertScada writes UNIT_SCADA telemetry rows.
func (r *Relational) UpsertScada(ctx context.Context, rows []domain.ScadaRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.ScadaRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO generator_scada (unit_id, settlement_date, mw) VALUES (?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.UnitID, row.SettlementDate.Format(timeLayout), row.MW); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertBattery writes enriched battery dispatch rows.
func (r *Relational) UpsertBattery(ctx context.Context, rows []domain.BatteryDispatchRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.BatteryDispatchRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO battery_dispatch
			(unit_id, settlement_date, initial_mw, total_cleared_mw, availability,
			 fcas_enablement_json, mode, soc_percent, energy_mwh, nameplate_mw,
			 max_charge_mw, max_discharge_mw, participant, station_name, region)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.UnitID, row.SettlementDate.Format(timeLayout),
				row.InitialMW, row.TotalClearedMW, row.Availability, fcasMapJSON(row.FCASEnablement),
				string(row.Mode), row.SoCPercent, row.EnergyMWh, row.NameplateMW, row.MaxChargeMW,
				row.MaxDischargeMW, row.Participant, row.StationName, string(row.Region)); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertTradingPrices writes settled 30-minute trading prices.
func (r *Relational) UpsertTradingPrices(ctx context.Context, rows []domain.TradingIntervalPrice) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.TradingIntervalPrice) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO trading_prices
			(region, settlement_date, rrp, total_demand, available_gen) VALUES (?,?,?,0,0)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, string(row.Region), row.SettlementDate.Format(timeLayout), row.RRP); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertTradingRegionSums merges demand/generation into existing trading
// price rows, leaving rrp untouched if it hasn't been written yet.
func (r *Relational) UpsertTradingRegionSums(ctx context.Context, rows []domain.TradingRegionSum) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.TradingRegionSum) error {
		stmt, err := tx.Prepare(`INSERT INTO trading_prices (region, settlement_date, rrp, total_demand, available_gen)
			VALUES (?,?,0,?,?)
			ON CONFLICT(region, settlement_date) DO UPDATE SET
				total_demand = excluded.total_demand,
				available_gen = excluded.available_gen`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, string(row.Region), row.SettlementDate.Format(timeLayout),
				row.TotalDemand, row.AvailableGen); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertP5MinRegion writes P5MIN regional forecast rows.
func (r *Relational) UpsertP5MinRegion(ctx context.Context, rows []domain.P5MinRegionForecast) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.P5MinRegionForecast) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO p5min_forecasts
			(kind, key, run_datetime, interval_datetime, rrp, regional_demand, available_gen, total_cleared_mw, availability)
			VALUES ('region',?,?,?,?,?,?,NULL,NULL)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, string(row.Region), row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.RRP, row.RegionalDemand, row.AvailableGen); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertP5MinUnit writes P5MIN per-unit forecast rows.
func (r *Relational) UpsertP5MinUnit(ctx context.Context, rows []domain.P5MinUnitForecast) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.P5MinUnitForecast) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO p5min_forecasts
			(kind, key, run_datetime, interval_datetime, rrp, regional_demand, available_gen, total_cleared_mw, availability)
			VALUES ('unit',?,?,?,NULL,NULL,NULL,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.UnitID, row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.TotalClearedMW, row.Availability); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertPredispatchRegion writes PREDISPATCH 30-minute regional forecasts.
func (r *Relational) UpsertPredispatchRegion(ctx context.Context, rows []domain.PredispatchRegionRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.PredispatchRegionRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO predispatch_forecasts
			(kind, key, run_datetime, interval_datetime, rrp, regional_demand, available_gen, mw_flow, marginal_value)
			VALUES ('region',?,?,?,?,?,?,NULL,NULL)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, string(row.Region), row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.RRP, row.RegionalDemand, row.AvailableGen); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertPredispatchUnits writes PREDISPATCH UNIT_SOLUTION forecast rows.
func (r *Relational) UpsertPredispatchUnits(ctx context.Context, rows []domain.PredispatchUnitRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.PredispatchUnitRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO predispatch_unit_solutions
			(unit_id, run_datetime, interval_datetime, total_cleared_mw, availability) VALUES (?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.UnitID, row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.TotalClearedMW, row.Availability); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertInterconnectorForecasts writes PREDISPATCH interconnector forecasts.
func (r *Relational) UpsertInterconnectorForecasts(ctx context.Context, rows []domain.InterconnectorForecast) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.InterconnectorForecast) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO predispatch_forecasts
			(kind, key, run_datetime, interval_datetime, rrp, regional_demand, available_gen, mw_flow, marginal_value)
			VALUES ('interconnector',?,?,?,NULL,NULL,NULL,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.LinkID, row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.MWFlow, row.MarginalValue); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertConstraintForecasts writes PREDISPATCH constraint forecasts.
func (r *Relational) UpsertConstraintForecasts(ctx context.Context, rows []domain.ConstraintForecast) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.ConstraintForecast) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO predispatch_forecasts
			(kind, key, run_datetime, interval_datetime, rrp, regional_demand, available_gen, mw_flow, marginal_value)
			VALUES ('constraint',?,?,?,NULL,NULL,NULL,NULL,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.ConstraintID, row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.MarginalValue); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertStPasaRegion writes ST PASA regional adequacy forecasts.
func (r *Relational) UpsertStPasaRegion(ctx context.Context, rows []domain.StPasaRegionRow) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.StPasaRegionRow) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO stpasa_forecasts
			(kind, key, run_datetime, interval_datetime, demand_p10, demand_p50, demand_p90, reserve_level, availability)
			VALUES ('region',?,?,?,?,?,?,?,NULL)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, string(row.Region), row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.Demand10, row.Demand50, row.Demand90, row.ReserveLevel); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertStPasaUnits writes ST PASA per-unit availability forecasts.
func (r *Relational) UpsertStPasaUnits(ctx context.Context, rows []domain.StPasaUnitAvailability) error {
	return batch(ctx, r, rows, func(tx *sql.Tx, chunk []domain.StPasaUnitAvailability) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO stpasa_forecasts
			(kind, key, run_datetime, interval_datetime, demand_p10, demand_p50, demand_p90, reserve_level, availability)
			VALUES ('unit',?,?,?,NULL,NULL,NULL,NULL,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range chunk {
			if _, err := stmt.ExecContext(ctx, row.UnitID, row.RunDatetime.Format(timeLayout),
				row.IntervalDatetime.Format(timeLayout), row.Availability); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertFuelMix writes one generation-by-fuel rollup row.
func (r *Relational) UpsertFuelMix(ctx context.Context, intervalDatetime string, rows map[string]map[domain.Region]struct {
	TotalMW   float64
	UnitCount int
}) error {
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO generation_by_fuel
			(fuel_type, interval_datetime, region, total_mw, unit_count) VALUES (?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for fuel, byRegion := range rows {
			for region, agg := range byRegion {
				if _, err := stmt.ExecContext(ctx, fuel, intervalDatetime, string(region), agg.TotalMW, agg.UnitCount); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// InsertValidationLog appends one validator run, then prunes entries older
// than 7 days to keep the table bounded per spec.md §6.
func (r *Relational) InsertValidationLog(ctx context.Context, report domain.ValidationReport) error {
	issues, _ := json.Marshal(report.Issues)
	warnings, _ := json.Marshal(report.Warnings)
	metrics, _ := json.Marshal(report.Metrics)
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO validation_log
			(run_at, passed, issues_json, warnings_json, metrics_json) VALUES (?,?,?,?,?)`,
			report.RunAt.Format(timeLayout), boolToInt(report.Passed), string(issues), string(warnings), string(metrics)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM validation_log WHERE run_at < ?`,
			report.RunAt.Add(-7*24*time.Hour).Format(timeLayout))
		return err
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const timeLayout = "2006-01-02T15:04:05Z"
