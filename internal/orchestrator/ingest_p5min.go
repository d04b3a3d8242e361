package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/parse"
)

// ingestP5Min fetches and persists the 5-minute-cadence, 1-hour-ahead
// P5MIN forecast bundle (regional and per-unit solutions).
func (o *Orchestrator) ingestP5Min(ctx context.Context) (int, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "P5MIN")
	if err != nil {
		return 0, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	for _, w := range res.Warnings {
		o.log.Warn().Str("source", "P5MIN").Msg(w)
	}

	var regions []domain.P5MinRegionForecast
	var units []domain.P5MinUnitForecast
	for _, rec := range res.Records {
		switch v := rec.(type) {
		case domain.P5MinRegionForecast:
			regions = append(regions, v)
		case domain.P5MinUnitForecast:
			units = append(units, v)
		}
	}
	if err := o.db.UpsertP5MinRegion(ctx, regions); err != nil {
		return 0, err
	}
	if err := o.db.UpsertP5MinUnit(ctx, units); err != nil {
		return 0, err
	}
	if o.archive.Enabled() {
		_ = o.archive.Put(ctx, "P5MIN", name, zipBytes)
	}
	return len(regions) + len(units), nil
}
