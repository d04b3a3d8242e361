package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/parse"
)

// ingestStPasa fetches and persists the 7-day-ahead ST PASA adequacy
// forecast bundle.
func (o *Orchestrator) ingestStPasa(ctx context.Context) (int, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "STPASA")
	if err != nil {
		return 0, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	for _, w := range res.Warnings {
		o.log.Warn().Str("source", "STPASA").Msg(w)
	}

	var regions []domain.StPasaRegionRow
	var units []domain.StPasaUnitAvailability
	for _, rec := range res.Records {
		switch v := rec.(type) {
		case domain.StPasaRegionRow:
			regions = append(regions, v)
		case domain.StPasaUnitAvailability:
			units = append(units, v)
		}
	}
	if err := o.db.UpsertStPasaRegion(ctx, regions); err != nil {
		return 0, err
	}
	if err := o.db.UpsertStPasaUnits(ctx, units); err != nil {
		return 0, err
	}
	if o.archive.Enabled() {
		_ = o.archive.Put(ctx, "STPASA", name, zipBytes)
	}
	return len(regions) + len(units), nil
}
