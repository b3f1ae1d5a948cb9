package wager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/marketsim/internal/domain/account"
	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	"github.com/muhammadchandra19/marketsim/internal/domain/tick"
	"github.com/muhammadchandra19/marketsim/internal/domain/wager"
	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
	"github.com/shopspring/decimal"
)

// PlaceRequest is a wager placement.
type PlaceRequest struct {
	AccountID string
	Symbol    string
	Amount    decimal.Decimal
	Direction wager.Direction
	Timeframe time.Duration
}

// Usecase is the wager ledger. Placement reserves the stake and records
// the wager atomically; either both happen or neither does.
type Usecase struct {
	client               postgresql.PostgreSQLClient
	wagerRepository      wager.Repository
	accountRepository    account.Repository
	instrumentRepository instrument.Repository
	tickRepository       tick.Repository
	logger               logger.Interface
}

// NewUsecase creates a new wager usecase.
func NewUsecase(
	client postgresql.PostgreSQLClient,
	wagerRepository wager.Repository,
	accountRepository account.Repository,
	instrumentRepository instrument.Repository,
	tickRepository tick.Repository,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		client:               client,
		wagerRepository:      wagerRepository,
		accountRepository:    accountRepository,
		instrumentRepository: instrumentRepository,
		tickRepository:       tickRepository,
		logger:               logger,
	}
}

// Place validates and records a wager. The entry price is the latest
// tick at placement time; funds are debited in the same transaction that
// inserts the wager, so a rejected debit leaves no trace.
func (u *Usecase) Place(ctx context.Context, req PlaceRequest) (*wager.Wager, error) {
	if !req.Amount.IsPositive() {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"wager amount must be greater than zero",
			string(errors.ErrInvalidAmount),
			"amount",
		))
	}
	if !wager.IsValidDirection(req.Direction) {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"direction must be UP or DOWN",
			string(errors.ErrInvalidDirection),
			"direction",
		))
	}

	ins, err := u.instrumentRepository.GetBySymbol(ctx, req.Symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if ins == nil {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"unknown instrument "+req.Symbol,
			string(errors.ErrInstrumentNotFound),
			"instrument_symbol",
		))
	}

	entry, err := u.tickRepository.GetLatestBySymbol(ctx, req.Symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if entry == nil {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"no price recorded yet for "+req.Symbol,
			string(errors.ErrNoPriceAvailable),
			"instrument_symbol",
		))
	}

	now := time.Now().UTC()
	w := &wager.Wager{
		ID:         uuid.NewString(),
		AccountID:  req.AccountID,
		Symbol:     req.Symbol,
		Amount:     req.Amount,
		Direction:  req.Direction,
		EntryPrice: entry.Price,
		Timeframe:  req.Timeframe,
		CreatedAt:  now,
		ExpiresAt:  now.Add(req.Timeframe),
		Result:     wager.ResultPending,
	}

	err = postgresql.WithTx(ctx, u.client, func(txCtx context.Context) error {
		debited, err := u.accountRepository.Debit(txCtx, req.AccountID, req.Amount)
		if err != nil {
			return err
		}
		if !debited {
			return errors.NewErrorDetails(
				"balance too low for wager",
				string(errors.ErrInsufficientFunds),
				"amount",
			)
		}

		return u.wagerRepository.Insert(txCtx, w)
	})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "wager placed",
		logger.NewField("wager_id", w.ID),
		logger.NewField("symbol", w.Symbol),
		logger.NewField("amount", w.Amount.String()),
		logger.NewField("direction", string(w.Direction)),
	)

	return w, nil
}

// Get returns a wager by id.
func (u *Usecase) Get(ctx context.Context, id string) (*wager.Wager, error) {
	w, err := u.wagerRepository.GetByID(ctx, id)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return w, nil
}

// ListByAccount returns an account's wagers, newest first. SETTLING is
// an internal claim marker and reads as PENDING.
func (u *Usecase) ListByAccount(ctx context.Context, accountID string, limit int) ([]*wager.Wager, error) {
	wagers, err := u.wagerRepository.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	for _, w := range wagers {
		if w.Result == wager.ResultSettling {
			w.Result = wager.ResultPending
		}
	}

	return wagers, nil
}

// Statistics summarises an account's wager history.
func (u *Usecase) Statistics(ctx context.Context, accountID string) (*wager.Statistics, error) {
	stats, err := u.wagerRepository.Statistics(ctx, accountID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return stats, nil
}
