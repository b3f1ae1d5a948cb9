package override

import (
	"time"

	"github.com/shopspring/decimal"
)

// Override is an out-of-band value injection recorded for audit. The
// settlement path never reads overrides; they are an audit-only
// side-channel until a product decision defines their consumption.
type Override struct {
	ID        string
	Symbol    string
	Time      time.Time
	Value     decimal.Decimal
	CreatedAt time.Time
}
