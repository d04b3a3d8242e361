package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/parse"
)

// ingestTrading fetches and persists the 30-minute settled TRADING bundle
// (header-mapped PRICE and REGIONSUM subtypes).
func (o *Orchestrator) ingestTrading(ctx context.Context) (int, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "TRADINGIS")
	if err != nil {
		return 0, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	for _, w := range res.Warnings {
		o.log.Warn().Str("source", "TRADINGIS").Msg(w)
	}

	var prices []domain.TradingIntervalPrice
	var sums []domain.TradingRegionSum
	for _, rec := range res.Records {
		switch v := rec.(type) {
		case domain.TradingIntervalPrice:
			prices = append(prices, v)
		case domain.TradingRegionSum:
			sums = append(sums, v)
		}
	}
	if err := o.db.UpsertTradingPrices(ctx, prices); err != nil {
		return 0, err
	}
	if err := o.db.UpsertTradingRegionSums(ctx, sums); err != nil {
		return 0, err
	}
	if o.archive.Enabled() {
		_ = o.archive.Put(ctx, "TRADINGIS", name, zipBytes)
	}
	return len(prices) + len(sums), nil
}
