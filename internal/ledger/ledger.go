// Package ledger implements the per-user paper-trading position book: open
// a position against a region's dispatch price, close it to realise P&L,
// list a user's history. Backed by the isolated ledger database (see
// internal/storage.ProfileLedger) so its durability profile never competes
// with the market-data ingestion writer.
//
// The repository shape (plain *sql.DB, hand-written scan helpers, sentinel
// errors checked with errors.Is at the handler layer) is grounded on the
// teacher's internal/modules/trading.TradeRepository.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrPositionNotFound is returned when a position id doesn't belong to the
// given user, or doesn't exist at all.
var ErrPositionNotFound = errors.New("ledger: position not found")

// ErrAlreadyClosed is returned on a second close attempt against the same
// position id; closing is not idempotent per spec.md §3.
var ErrAlreadyClosed = errors.New("ledger: position already closed")

// listLimit caps TradingLedger.List per spec.md §4.13.
const listLimit = 100

// timeLayout is fixed-width so that ORDER BY entry_time sorts the stored
// text chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Ledger is the TradingLedger: per-user positions with open/close
// semantics and P&L on close.
type Ledger struct {
	db  *storage.Relational
	log zerolog.Logger
}

// New builds a Ledger backed by db, which must have been opened with
// storage.ProfileLedger.
func New(db *storage.Relational, log zerolog.Logger) *Ledger {
	return &Ledger{db: db, log: log.With().Str("component", "ledger").Logger()}
}

// Open inserts a new OPEN position for userID, generating a fresh id and
// stamping the entry time as now.
func (l *Ledger) Open(ctx context.Context, userID string, region domain.Region, side domain.Side, quantity, entryPrice decimal.Decimal) (domain.Position, error) {
	pos := domain.Position{
		ID:         uuid.NewString(),
		UserID:     userID,
		Region:     region,
		Side:       side,
		Quantity:   quantity,
		EntryPrice: entryPrice,
		EntryTime:  time.Now().UTC(),
		Status:     domain.Open,
	}
	_, err := l.db.Conn().ExecContext(ctx, `
		INSERT INTO trading_positions
		(id, user_id, region, side, quantity, entry_price, entry_time, status)
		VALUES (?,?,?,?,?,?,?,?)`,
		pos.ID, pos.UserID, string(pos.Region), string(pos.Side),
		pos.Quantity.String(), pos.EntryPrice.String(), pos.EntryTime.Format(timeLayout), string(pos.Status))
	if err != nil {
		return domain.Position{}, fmt.Errorf("ledger: open position: %w", err)
	}
	l.log.Info().Str("position_id", pos.ID).Str("user_id", userID).Str("region", string(region)).Msg("position opened")
	return pos, nil
}

// Close requires the position to exist, belong to userID, and be OPEN.
// On success it computes realised P&L and sets the exit fields atomically.
func (l *Ledger) Close(ctx context.Context, userID, positionID string, exitPrice decimal.Decimal) (domain.Position, error) {
	var pos domain.Position
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			SELECT id, user_id, region, side, quantity, entry_price, entry_time, status
			FROM trading_positions WHERE id = ? AND user_id = ?`, positionID, userID)
		var region, side, quantity, entryPrice, entryTime, status string
		if err := row.Scan(&pos.ID, &pos.UserID, &region, &side, &quantity, &entryPrice, &entryTime, &status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPositionNotFound
			}
			return err
		}
		pos.Region = domain.Region(region)
		pos.Side = domain.Side(side)
		pos.Quantity, _ = decimal.NewFromString(quantity)
		pos.EntryPrice, _ = decimal.NewFromString(entryPrice)
		pos.EntryTime, _ = time.Parse(timeLayout, entryTime)
		pos.Status = domain.PositionStatus(status)

		if pos.Status == domain.Closed {
			return ErrAlreadyClosed
		}

		pos.ExitPrice = exitPrice
		pos.ExitTime = time.Now().UTC()
		pos.Status = domain.Closed
		pos.RealisedPnL = pos.PnL()

		_, err := tx.ExecContext(ctx, `
			UPDATE trading_positions
			SET status = ?, exit_price = ?, exit_time = ?, realised_pnl = ?
			WHERE id = ? AND user_id = ?`,
			string(pos.Status), pos.ExitPrice.String(), pos.ExitTime.Format(timeLayout), pos.RealisedPnL.String(),
			pos.ID, pos.UserID)
		return err
	})
	if err != nil {
		return domain.Position{}, err
	}
	l.log.Info().Str("position_id", pos.ID).Str("pnl", pos.RealisedPnL.String()).Msg("position closed")
	return pos, nil
}

// List returns userID's positions, entry time descending, capped at 100.
func (l *Ledger) List(ctx context.Context, userID string) ([]domain.Position, error) {
	rows, err := l.db.Conn().QueryContext(ctx, `
		SELECT id, user_id, region, side, quantity, entry_price, entry_time, status,
		       exit_price, exit_time, realised_pnl
		FROM trading_positions WHERE user_id = ?
		ORDER BY entry_time DESC LIMIT ?`, userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("ledger: list positions: %w", err)
	}
	defer rows.Close()

	var out []domain.Position
	for rows.Next() {
		var pos domain.Position
		var region, side, quantity, entryPrice, entryTime, status string
		var exitPrice, exitTime, realisedPnL sql.NullString
		if err := rows.Scan(&pos.ID, &pos.UserID, &region, &side, &quantity, &entryPrice, &entryTime, &status,
			&exitPrice, &exitTime, &realisedPnL); err != nil {
			return nil, fmt.Errorf("ledger: scan position: %w", err)
		}
		pos.Region = domain.Region(region)
		pos.Side = domain.Side(side)
		pos.Quantity, _ = decimal.NewFromString(quantity)
		pos.EntryPrice, _ = decimal.NewFromString(entryPrice)
		pos.EntryTime, _ = time.Parse(timeLayout, entryTime)
		pos.Status = domain.PositionStatus(status)
		if exitPrice.Valid {
			pos.ExitPrice, _ = decimal.NewFromString(exitPrice.String)
		}
		if exitTime.Valid {
			pos.ExitTime, _ = time.Parse(timeLayout, exitTime.String)
		}
		if realisedPnL.Valid {
			pos.RealisedPnL, _ = decimal.NewFromString(realisedPnL.String)
		}
		out = append(out, pos)
	}
	return out, rows.Err()
}
