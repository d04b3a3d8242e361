package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/parse"
)

// ingestPredispatch fetches and persists the 30-minute-cadence, 2-day-ahead
// PREDISPATCH bundle across all four subtypes.
func (o *Orchestrator) ingestPredispatch(ctx context.Context) (int, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "PREDISPATCHIS")
	if err != nil {
		return 0, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	for _, w := range res.Warnings {
		o.log.Warn().Str("source", "PREDISPATCHIS").Msg(w)
	}

	var regions []domain.PredispatchRegionRow
	var units []domain.PredispatchUnitRow
	var interconnectors []domain.InterconnectorForecast
	var constraints []domain.ConstraintForecast
	for _, rec := range res.Records {
		switch v := rec.(type) {
		case domain.PredispatchRegionRow:
			regions = append(regions, v)
		case domain.PredispatchUnitRow:
			units = append(units, v)
		case domain.InterconnectorForecast:
			interconnectors = append(interconnectors, v)
		case domain.ConstraintForecast:
			constraints = append(constraints, v)
		}
	}
	if err := o.db.UpsertPredispatchRegion(ctx, regions); err != nil {
		return 0, err
	}
	if err := o.db.UpsertPredispatchUnits(ctx, units); err != nil {
		return 0, err
	}
	if err := o.db.UpsertInterconnectorForecasts(ctx, interconnectors); err != nil {
		return 0, err
	}
	if err := o.db.UpsertConstraintForecasts(ctx, constraints); err != nil {
		return 0, err
	}
	if o.archive.Enabled() {
		_ = o.archive.Put(ctx, "PREDISPATCHIS", name, zipBytes)
	}

	byRegion := make(map[domain.Region][]domain.PredispatchRegionRow)
	for _, r := range regions {
		byRegion[r.Region] = append(byRegion[r.Region], r)
	}
	for region, rows := range byRegion {
		o.hotCache.WriteDemandForecast(region, rows)
	}

	return len(regions) + len(units) + len(interconnectors) + len(constraints), nil
}
