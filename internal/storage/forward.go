package storage

import (
	"context"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
)

// ForwardPrices returns PREDISPATCH regional price/demand forecasts for
// region whose interval falls on the given calendar date (UTC), across
// whichever PREDISPATCH runs published intervals that day, most recent run
// per interval winning on a tie.
func (r *Relational) ForwardPrices(ctx context.Context, region domain.Region, date time.Time) ([]domain.PredispatchRegionRow, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows, err := r.conn.QueryContext(ctx, `
		SELECT key, run_datetime, interval_datetime, rrp, regional_demand, available_gen
		FROM predispatch_forecasts p
		WHERE kind='region' AND key=? AND interval_datetime >= ? AND interval_datetime < ?
		AND run_datetime = (
			SELECT MAX(run_datetime) FROM predispatch_forecasts
			WHERE kind='region' AND key=p.key AND interval_datetime=p.interval_datetime
		)
		ORDER BY interval_datetime`,
		string(region), dayStart.Format(timeLayout), dayEnd.Format(timeLayout))
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
