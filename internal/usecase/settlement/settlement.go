package settlement

import (
	"context"
	"time"

	"github.com/muhammadchandra19/marketsim/internal/domain/account"
	"github.com/muhammadchandra19/marketsim/internal/domain/tick"
	"github.com/muhammadchandra19/marketsim/internal/domain/wager"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Usecase settles expired wagers. Exclusivity comes from the conditional
// claim on the wager row, so any number of overlapping cycles or worker
// instances resolve each wager at most once.
type Usecase struct {
	client            postgresql.PostgreSQLClient
	wagerRepository   wager.Repository
	accountRepository account.Repository
	tickRepository    tick.Repository
	logger            logger.Interface

	interval  time.Duration
	batchSize int
}

// Config holds settlement worker tuning parameters.
type Config struct {
	Interval  time.Duration
	BatchSize int
}

// NewUsecase creates a new settlement usecase.
func NewUsecase(
	client postgresql.PostgreSQLClient,
	wagerRepository wager.Repository,
	accountRepository account.Repository,
	tickRepository tick.Repository,
	logger logger.Interface,
	cfg Config,
) *Usecase {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	return &Usecase{
		client:            client,
		wagerRepository:   wagerRepository,
		accountRepository: accountRepository,
		tickRepository:    tickRepository,
		logger:            logger,
		interval:          cfg.Interval,
		batchSize:         cfg.BatchSize,
	}
}

// Run sweeps for expired wagers on the configured interval until ctx is
// cancelled.
func (u *Usecase) Run(ctx context.Context) error {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			u.logger.Info("settlement worker stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := u.Sweep(ctx, time.Now().UTC()); err != nil {
				u.logger.ErrorContext(ctx, err)
			}
		}
	}
}

// Sweep settles every wager expired at now, up to the batch size. A
// wager that cannot be settled yet is skipped, never failed.
func (u *Usecase) Sweep(ctx context.Context, now time.Time) error {
	expired, err := u.wagerRepository.PendingExpired(ctx, now, u.batchSize)
	if err != nil {
		return err
	}

	for _, w := range expired {
		if err := u.SettleOne(ctx, w); err != nil {
			u.logger.ErrorContext(ctx, err, logger.NewField("wager_id", w.ID))
		}
	}

	return nil
}

// SettleOne resolves a single expired wager. The claim is taken first;
// losing the race is a silent no-op. An instrument with no tick yet
// releases the claim and leaves the wager for a later cycle.
func (u *Usecase) SettleOne(ctx context.Context, w *wager.Wager) error {
	claimed, err := u.wagerRepository.Claim(ctx, w.ID)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	latest, err := u.tickRepository.GetLatestBySymbol(ctx, w.Symbol)
	if err != nil {
		// Claim must not outlive the cycle on a read failure.
		if relErr := u.wagerRepository.Release(ctx, w.ID); relErr != nil {
			u.logger.ErrorContext(ctx, relErr, logger.NewField("wager_id", w.ID))
		}
		return err
	}
	if latest == nil {
		return u.wagerRepository.Release(ctx, w.ID)
	}

	result := resolve(w, latest.Price)

	if result == wager.ResultWin {
		payout := w.Amount.Mul(two)
		err = postgresql.WithTx(ctx, u.client, func(txCtx context.Context) error {
			if err := u.accountRepository.Credit(txCtx, w.AccountID, payout); err != nil {
				return err
			}
			return u.wagerRepository.Settle(txCtx, w.ID, wager.ResultWin)
		})
	} else {
		// The stake was taken at placement; a loss changes nothing else.
		err = u.wagerRepository.Settle(ctx, w.ID, wager.ResultLoss)
	}
	if err != nil {
		return err
	}

	u.logger.InfoContext(ctx, "wager settled",
		logger.NewField("wager_id", w.ID),
		logger.NewField("symbol", w.Symbol),
		logger.NewField("result", string(result)),
		logger.NewField("entry_price", w.EntryPrice.String()),
		logger.NewField("settle_price", latest.Price.String()),
	)

	return nil
}

// resolve decides the outcome against the settlement price. Equality is
// a loss; there is no push state.
func resolve(w *wager.Wager, latest decimal.Decimal) wager.Result {
	switch w.Direction {
	case wager.DirectionUp:
		if latest.GreaterThan(w.EntryPrice) {
			return wager.ResultWin
		}
	case wager.DirectionDown:
		if latest.LessThan(w.EntryPrice) {
			return wager.ResultWin
		}
	}
	return wager.ResultLoss
}
