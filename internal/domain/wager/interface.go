package wager

import (
	"context"
	"time"
)

// Repository is the interface for the wager repository.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, wager *Wager) error
	GetByID(ctx context.Context, id string) (*Wager, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*Wager, error)
	// PendingExpired returns PENDING wagers whose expiry has passed.
	PendingExpired(ctx context.Context, now time.Time, limit int) ([]*Wager, error)
	// Claim atomically moves a wager from PENDING to the settling state.
	// Returns false when the wager was already claimed or terminal.
	Claim(ctx context.Context, id string) (bool, error)
	// Release moves a claimed wager back to PENDING for a later cycle.
	Release(ctx context.Context, id string) error
	// Settle moves a claimed wager to its terminal result.
	Settle(ctx context.Context, id string, result Result) error
	Statistics(ctx context.Context, accountID string) (*Statistics, error)
}
