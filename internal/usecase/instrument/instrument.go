package instrument

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
)

// Usecase manages instruments. Instruments are immutable once created.
type Usecase struct {
	instrumentRepository instrument.Repository
	logger               logger.Interface
}

// NewUsecase creates a new instrument usecase.
func NewUsecase(instrumentRepository instrument.Repository, logger logger.Interface) *Usecase {
	return &Usecase{instrumentRepository: instrumentRepository, logger: logger}
}

// Create registers a new instrument under a unique symbol.
func (u *Usecase) Create(ctx context.Context, symbol, name string) (*instrument.Instrument, error) {
	ins := &instrument.Instrument{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := u.instrumentRepository.Create(ctx, ins); err != nil {
		return nil, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "instrument created",
		logger.NewField("symbol", ins.Symbol),
	)

	return ins, nil
}

// Ensure returns the instrument for a symbol, creating it when missing.
// Run at startup for the default instrument so a fresh deployment has
// something to generate prices for.
func (u *Usecase) Ensure(ctx context.Context, symbol, name string) (*instrument.Instrument, error) {
	ins, err := u.instrumentRepository.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if ins != nil {
		return ins, nil
	}

	return u.Create(ctx, symbol, name)
}

// GetBySymbol returns the instrument for a symbol, or nil when unknown.
func (u *Usecase) GetBySymbol(ctx context.Context, symbol string) (*instrument.Instrument, error) {
	ins, err := u.instrumentRepository.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return ins, nil
}

// List returns all instruments ordered by symbol.
func (u *Usecase) List(ctx context.Context) ([]*instrument.Instrument, error) {
	instruments, err := u.instrumentRepository.List(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return instruments, nil
}
