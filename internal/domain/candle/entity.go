package candle

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is an immutable OHLC summary over a completed tick bucket.
// Invariant: Min <= Open <= Max and Min <= Close <= Max; Min/Max are the
// true extrema of the bucket's ticks.
type Candle struct {
	Symbol     string
	Resolution string
	Open       decimal.Decimal
	Close      decimal.Decimal
	Min        decimal.Decimal
	Max        decimal.Decimal
	Time       time.Time
}
