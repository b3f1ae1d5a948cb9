package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository is the interface for the account repository.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type Repository interface {
	CreateAccount(ctx context.Context, account *Account) error
	CreateBalance(ctx context.Context, balance *Balance) error
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetBalance(ctx context.Context, accountID string) (*Balance, error)
	// Debit subtracts amount from the balance only when enough funds are
	// available. Returns false, without mutation, when they are not.
	Debit(ctx context.Context, accountID string, amount decimal.Decimal) (bool, error)
	// Credit adds amount to the balance.
	Credit(ctx context.Context, accountID string, amount decimal.Decimal) error
}
