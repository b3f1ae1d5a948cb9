package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a wagering account.
type Account struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Balance is the spendable funds of an account. The amount never goes
// negative: debits are conditional and rejected when funds are short.
type Balance struct {
	AccountID string
	Amount    decimal.Decimal
	UpdatedAt time.Time
}
