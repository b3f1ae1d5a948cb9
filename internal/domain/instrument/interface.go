package instrument

import "context"

// Repository is the interface for the instrument repository.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, instrument *Instrument) error
	GetBySymbol(ctx context.Context, symbol string) (*Instrument, error)
	List(ctx context.Context) ([]*Instrument, error)
}
