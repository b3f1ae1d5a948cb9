package wager

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the predicted price movement of a wager.
type Direction string

const (
	// DirectionUp predicts the price will rise above the entry price.
	DirectionUp Direction = "UP"
	// DirectionDown predicts the price will fall below the entry price.
	DirectionDown Direction = "DOWN"
)

// Result is the lifecycle state of a wager. A wager is created PENDING
// and transitions exactly once to WIN or LOSS; both are terminal.
type Result string

const (
	// ResultPending marks a wager awaiting settlement.
	ResultPending Result = "PENDING"
	// ResultWin marks a settled winning wager.
	ResultWin Result = "WIN"
	// ResultLoss marks a settled losing wager.
	ResultLoss Result = "LOSS"

	// ResultSettling is the exclusivity claim held while a worker resolves
	// a wager. It is a storage detail and never surfaces to callers.
	ResultSettling Result = "SETTLING"
)

// IsValidDirection reports whether d is a known direction.
func IsValidDirection(d Direction) bool {
	return d == DirectionUp || d == DirectionDown
}

// Wager is a directional, time-boxed bet against an instrument's price.
type Wager struct {
	ID         string
	AccountID  string
	Symbol     string
	Amount     decimal.Decimal
	Direction  Direction
	EntryPrice decimal.Decimal
	Timeframe  time.Duration
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Result     Result
}

// Statistics summarises an account's wager history.
type Statistics struct {
	TotalProfit  decimal.Decimal
	TotalLoss    decimal.Decimal
	TotalCount   int64
	PendingCount int64
}
