package validator

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *storage.Relational {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "market.db"), storage.ProfileMarket)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestValidatorFlagsStaleAndIncompleteDispatch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	stale := time.Now().UTC().Add(-2 * time.Hour)
	err := db.UpsertDispatchPrices(ctx, []domain.DispatchPriceRow{
		{Region: domain.NSW1, SettlementDate: stale, RRP: 50, RegionalDemand: 6000},
	})
	require.NoError(t, err)

	v := New(db, nil, DefaultThresholds(), zerolog.Nop())
	report, err := v.Run(ctx)
	require.NoError(t, err)

	require.False(t, report.Passed)
	require.Contains(t, joinedMessages(report.Issues), "dispatch_prices")
}

func TestValidatorPassesWithFreshFullCoverage(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	var rows []domain.DispatchPriceRow
	for _, region := range domain.Regions {
		rows = append(rows, domain.DispatchPriceRow{Region: region, SettlementDate: now, RRP: 45, RegionalDemand: 5500})
	}
	require.NoError(t, db.UpsertDispatchPrices(ctx, rows))
	require.NoError(t, db.UpsertScada(ctx, []domain.ScadaRow{{UnitID: "BW01", SettlementDate: now, MW: 500}}))
	require.NoError(t, db.UpsertTradingPrices(ctx, []domain.TradingIntervalPrice{{Region: domain.NSW1, SettlementDate: now, RRP: 45}}))
	var fcas []domain.FCASServiceRow
	for _, svc := range domain.FCASServices {
		fcas = append(fcas, domain.FCASServiceRow{Region: domain.NSW1, Service: svc, SettlementDate: now, Price: 1})
	}
	require.NoError(t, db.UpsertFCAS(ctx, fcas))

	v := New(db, nil, DefaultThresholds(), zerolog.Nop())
	report, err := v.Run(ctx)
	require.NoError(t, err)

	require.True(t, report.Passed, joinedMessages(report.Issues))
	require.Equal(t, float64(len(domain.Regions)), report.Metrics["region_coverage"])
}

func joinedMessages(msgs []string) string {
	out := ""
	for _, m := range msgs {
		out += m + "\n"
	}
	return out
}
