package tick

import "context"

// Repository is the interface for the tick repository.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type Repository interface {
	Store(ctx context.Context, tick *Tick) error
	// GetLatestBySymbol returns the most recent tick for a symbol, or nil
	// when the instrument has no tick yet.
	GetLatestBySymbol(ctx context.Context, symbol string) (*Tick, error)
	// GetRecentBySymbol returns up to limit ticks ordered newest first.
	GetRecentBySymbol(ctx context.Context, symbol string, limit int) ([]*Tick, error)
}
