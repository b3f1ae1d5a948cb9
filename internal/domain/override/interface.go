package override

import "context"

// Repository is the interface for the manual override repository.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, override *Override) error
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*Override, error)
}
