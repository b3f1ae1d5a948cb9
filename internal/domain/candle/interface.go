package candle

import "context"

// Repository is the interface for the candle repository. Only
// base-resolution candles are stored; coarser resolutions are derived on
// read.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type Repository interface {
	Store(ctx context.Context, candle *Candle) error
	// GetRecentBySymbol returns up to limit base candles ordered newest
	// first.
	GetRecentBySymbol(ctx context.Context, symbol string, limit int) ([]*Candle, error)
}
