package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/parse"
)

// ingestNextDay fetches and persists the end-of-day NEXT_DAY_DISPATCH
// archive, which carries the generator unit solutions that the 5-minute
// DISPATCHIS loop routinely omits (spec.md §4.5).
func (o *Orchestrator) ingestNextDay(ctx context.Context) (int, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "NEXT_DAY_DISPATCH")
	if err != nil {
		return 0, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	for _, w := range res.Warnings {
		o.log.Warn().Str("source", "NEXT_DAY_DISPATCH").Msg(w)
	}

	var units []domain.GeneratorDispatchRow
	for _, rec := range res.Records {
		if row, ok := rec.(domain.GeneratorDispatchRow); ok {
			units = append(units, row)
		}
	}
	if err := o.db.UpsertGeneratorDispatch(ctx, units); err != nil {
		return 0, err
	}
	if o.archive.Enabled() {
		_ = o.archive.Put(ctx, "NEXT_DAY_DISPATCH", name, zipBytes)
	}
	return len(units), nil
}
