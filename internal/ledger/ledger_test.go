package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"), storage.ProfileLedger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, zerolog.Nop())
}

func TestOpenCloseComputesPnL(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	pos, err := l.Open(ctx, "user-1", domain.NSW1, domain.Long, decimal.NewFromInt(10), decimal.NewFromFloat(50))
	require.NoError(t, err)
	require.Equal(t, domain.Open, pos.Status)

	closed, err := l.Close(ctx, "user-1", pos.ID, decimal.NewFromFloat(65))
	require.NoError(t, err)
	require.Equal(t, domain.Closed, closed.Status)
	require.True(t, closed.RealisedPnL.Equal(decimal.NewFromInt(150)))
}

func TestCloseShortPositionNegatesDelta(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	pos, err := l.Open(ctx, "user-1", domain.VIC1, domain.Short, decimal.NewFromInt(5), decimal.NewFromFloat(100))
	require.NoError(t, err)

	closed, err := l.Close(ctx, "user-1", pos.ID, decimal.NewFromFloat(80))
	require.NoError(t, err)
	require.True(t, closed.RealisedPnL.Equal(decimal.NewFromInt(100)))
}

func TestDoubleCloseErrors(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	pos, err := l.Open(ctx, "user-1", domain.QLD1, domain.Long, decimal.NewFromInt(1), decimal.NewFromFloat(40))
	require.NoError(t, err)

	_, err = l.Close(ctx, "user-1", pos.ID, decimal.NewFromFloat(41))
	require.NoError(t, err)

	_, err = l.Close(ctx, "user-1", pos.ID, decimal.NewFromFloat(42))
	require.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestCloseUnknownPositionReturnsNotFound(t *testing.T) {
	l := openTestLedger(t)
	_, err := l.Close(context.Background(), "user-1", "does-not-exist", decimal.NewFromFloat(1))
	require.ErrorIs(t, err, ErrPositionNotFound)
}

func TestListCapsAtHundredMostRecentFirst(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	for i := 0; i < listLimit+5; i++ {
		_, err := l.Open(ctx, "user-1", domain.SA1, domain.Long, decimal.NewFromInt(1), decimal.NewFromFloat(30))
		require.NoError(t, err)
	}

	positions, err := l.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, positions, listLimit)
	for i := 1; i < len(positions); i++ {
		require.False(t, positions[i].EntryTime.After(positions[i-1].EntryTime))
	}
}
