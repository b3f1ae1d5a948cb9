package tick

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tick represents a single synthetic price observation for an instrument.
// Ticks are append-only with strictly increasing timestamps per instrument.
type Tick struct {
	Symbol    string
	Price     decimal.Decimal
	Timestamp time.Time
}
