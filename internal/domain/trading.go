package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is a position direction.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// PositionStatus tracks the open/closed lifecycle of a Position.
type PositionStatus string

const (
	Open   PositionStatus = "OPEN"
	Closed PositionStatus = "CLOSED"
)

// Position is a user's paper-trading position on a region's price.
// Positions are immutable once closed; a second close attempt on the same
// id is a 404, not a no-op, per spec.md §8.
type Position struct {
	ID          string
	UserID      string
	Region      Region
	Side        Side
	Quantity    decimal.Decimal
	EntryPrice  decimal.Decimal
	EntryTime   time.Time
	Status      PositionStatus
	ExitPrice   decimal.Decimal
	ExitTime    time.Time
	RealisedPnL decimal.Decimal
}

// PnL computes realised profit and loss for a closed position.
func (p Position) PnL() decimal.Decimal {
	delta := p.ExitPrice.Sub(p.EntryPrice)
	if p.Side == Short {
		delta = delta.Neg()
	}
	return delta.Mul(p.Quantity)
}
