package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/parse"
)

// ingestScada fetches and persists the near-real-time UNIT_SCADA feed.
func (o *Orchestrator) ingestScada(ctx context.Context) (int, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "DISPATCHSCADA")
	if err != nil {
		return 0, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	for _, w := range res.Warnings {
		o.log.Warn().Str("source", "DISPATCHSCADA").Msg(w)
	}

	var rows []domain.ScadaRow
	for _, rec := range res.Records {
		if row, ok := rec.(domain.ScadaRow); ok {
			rows = append(rows, row)
		}
	}
	if err := o.db.UpsertScada(ctx, rows); err != nil {
		return 0, err
	}
	if o.archive.Enabled() {
		_ = o.archive.Put(ctx, "DISPATCHSCADA", name, zipBytes)
	}
	return len(rows), nil
}
