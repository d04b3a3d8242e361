package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/stretchr/testify/require"
)

func openTestRelational(t *testing.T) *Relational {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "market.db"), ProfileMarket)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertDispatchPricesIsIdempotent(t *testing.T) {
	db := openTestRelational(t)
	ctx := context.Background()

	row := domain.DispatchPriceRow{
		Region:         domain.NSW1,
		SettlementDate: time.Date(2025, 8, 23, 9, 5, 0, 0, time.UTC),
		RRP:            134.85637,
		RegionalDemand: 9334.46,
		DispatchedGen:  11004.64,
		FCASPrice:      map[domain.FCASService]float64{},
		FCASRequiredMW: map[domain.FCASService]float64{},
	}

	require.NoError(t, db.UpsertDispatchPrices(ctx, []domain.DispatchPriceRow{row}))
	require.NoError(t, db.UpsertDispatchPrices(ctx, []domain.DispatchPriceRow{row}))

	rows, err := db.LatestPrices(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, domain.NSW1, rows[0].Region)
	require.InDelta(t, 134.85637, rows[0].RRP, 0.0001)
	require.InDelta(t, 9334.46, rows[0].RegionalDemand, 0.0001)
}

func TestUpsertTradingRegionSumsLeavesRRPUntouchedWhenNew(t *testing.T) {
	db := openTestRelational(t)
	ctx := context.Background()
	settlement := time.Date(2025, 8, 23, 9, 30, 0, 0, time.UTC)

	require.NoError(t, db.UpsertTradingPrices(ctx, []domain.TradingIntervalPrice{
		{Region: domain.NSW1, SettlementDate: settlement, RRP: 99.5},
	}))
	require.NoError(t, db.UpsertTradingRegionSums(ctx, []domain.TradingRegionSum{
		{Region: domain.NSW1, SettlementDate: settlement, TotalDemand: 8000, AvailableGen: 9000},
	}))

	var rrp, demand float64
	err := db.Conn().QueryRowContext(ctx, `SELECT rrp, total_demand FROM trading_prices WHERE region = ?`, "NSW1").
		Scan(&rrp, &demand)
	require.NoError(t, err)
	require.InDelta(t, 99.5, rrp, 0.0001)
	require.InDelta(t, 8000, demand, 0.0001)
}
