package override

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	"github.com/muhammadchandra19/marketsim/internal/domain/override"
	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/shopspring/decimal"
)

// Usecase records manual value injections. Overrides are persisted for
// audit only; nothing in the pricing or settlement path reads them.
type Usecase struct {
	overrideRepository   override.Repository
	instrumentRepository instrument.Repository
	logger               logger.Interface

	pastWindow   time.Duration
	futureWindow time.Duration
}

// Config bounds the accepted override time window around now.
type Config struct {
	PastWindow   time.Duration
	FutureWindow time.Duration
}

// NewUsecase creates a new override usecase.
func NewUsecase(
	overrideRepository override.Repository,
	instrumentRepository instrument.Repository,
	logger logger.Interface,
	cfg Config,
) *Usecase {
	if cfg.PastWindow <= 0 {
		cfg.PastWindow = 24 * time.Hour
	}
	if cfg.FutureWindow <= 0 {
		cfg.FutureWindow = time.Minute
	}

	return &Usecase{
		overrideRepository:   overrideRepository,
		instrumentRepository: instrumentRepository,
		logger:               logger,
		pastWindow:           cfg.PastWindow,
		futureWindow:         cfg.FutureWindow,
	}
}

// Record persists an override. The time must fall inside the accepted
// window around now; anything else is rejected outright.
func (u *Usecase) Record(ctx context.Context, symbol string, at time.Time, value decimal.Decimal) (*override.Override, error) {
	ins, err := u.instrumentRepository.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if ins == nil {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"unknown instrument "+symbol,
			string(errors.ErrInstrumentNotFound),
			"symbol",
		))
	}

	now := time.Now().UTC()
	if at.Before(now.Add(-u.pastWindow)) || at.After(now.Add(u.futureWindow)) {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"override time outside accepted window",
			string(errors.ErrOverrideOutOfWindow),
			"time",
		))
	}

	o := &override.Override{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Time:      at.UTC(),
		Value:     value,
		CreatedAt: now,
	}

	if err := u.overrideRepository.Insert(ctx, o); err != nil {
		return nil, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "manual override recorded",
		logger.NewField("override_id", o.ID),
		logger.NewField("symbol", o.Symbol),
		logger.NewField("value", o.Value.String()),
	)

	return o, nil
}

// List returns recent overrides for a symbol, newest first.
func (u *Usecase) List(ctx context.Context, symbol string, limit int) ([]*override.Override, error) {
	overrides, err := u.overrideRepository.ListBySymbol(ctx, symbol, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return overrides, nil
}
