package feed

import (
	"context"
	"math/rand"
	"time"

	"github.com/muhammadchandra19/marketsim/internal/broadcast"
	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	"github.com/muhammadchandra19/marketsim/internal/domain/tick"
	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/shopspring/decimal"
)

// priceScale is the number of fractional digits every price carries.
const priceScale = 8

// driftRange bounds the per-step multiplier at 1 +/- driftRange.
var driftRange = decimal.NewFromFloat(0.05)

// Ingestor consumes freshly generated ticks, typically the candle
// aggregator.
//
//go:generate mockgen -source=feed.go -destination=mock/feed_mock.go -package=mock
type Ingestor interface {
	Ingest(ctx context.Context, t *tick.Tick) error
}

// Usecase generates the synthetic price walk. Each step multiplies the
// previous price by a uniform factor in [0.95, 1.05] and rounds half up
// to eight fractional digits.
type Usecase struct {
	tickRepository       tick.Repository
	instrumentRepository instrument.Repository
	ingestor             Ingestor
	publisher            broadcast.Publisher
	logger               logger.Interface

	cadence      time.Duration
	initialPrice decimal.Decimal
	rng          *rand.Rand
}

// Config holds feed tuning parameters.
type Config struct {
	Cadence      time.Duration
	InitialPrice decimal.Decimal
	// Seed fixes the random walk; zero seeds from the clock.
	Seed int64
}

// NewUsecase creates a new feed usecase.
func NewUsecase(
	tickRepository tick.Repository,
	instrumentRepository instrument.Repository,
	ingestor Ingestor,
	publisher broadcast.Publisher,
	logger logger.Interface,
	cfg Config,
) *Usecase {
	if cfg.Cadence <= 0 {
		cfg.Cadence = time.Second
	}
	if cfg.InitialPrice.IsZero() {
		cfg.InitialPrice = decimal.RequireFromString("100.00000000")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Usecase{
		tickRepository:       tickRepository,
		instrumentRepository: instrumentRepository,
		ingestor:             ingestor,
		publisher:            publisher,
		logger:               logger,
		cadence:              cfg.Cadence,
		initialPrice:         cfg.InitialPrice,
		rng:                  rand.New(rand.NewSource(seed)),
	}
}

// NextTick generates, persists and publishes the next tick for a symbol.
// The walk steps from the last persisted tick, or from the configured
// initial price when the instrument has none yet, so restarts continue
// where the process left off.
func (u *Usecase) NextTick(ctx context.Context, symbol string) (*tick.Tick, error) {
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

	previous, err := u.tickRepository.GetLatestBySymbol(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	// The initial price is a starting point for the walk, not the first
	// observation: the factor applies from the very first tick.
	price := u.initialPrice
	if previous != nil {
		price = previous.Price
	}
	price = u.step(price)

	t := &tick.Tick{
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}

	if err := u.tickRepository.Store(ctx, t); err != nil {
		return nil, errors.TracerFromError(err)
	}

	if err := u.ingestor.Ingest(ctx, t); err != nil {
		// Aggregation failure must not break the walk; the tick is
		// already persisted.
		u.logger.ErrorContext(ctx, err, logger.NewField("symbol", symbol))
	}

	u.publisher.Publish(broadcast.TickMessage{
		Instrument: t.Symbol,
		Price:      t.Price,
		Time:       t.Timestamp,
	})

	return t, nil
}

// step applies one random-walk multiplier to the previous price.
func (u *Usecase) step(previous decimal.Decimal) decimal.Decimal {
	// uniform in [-0.05, +0.05]
	drift := driftRange.Mul(decimal.NewFromFloat(2*u.rng.Float64() - 1))
	factor := decimal.NewFromInt(1).Add(drift)
	return previous.Mul(factor).Round(priceScale)
}

// Run emits one tick per cadence step for every instrument until ctx is
// cancelled.
func (u *Usecase) Run(ctx context.Context) error {
	ticker := time.NewTicker(u.cadence)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			u.logger.Info("price feed stopped")
			return ctx.Err()
		case <-ticker.C:
			instruments, err := u.instrumentRepository.List(ctx)
			if err != nil {
				u.logger.ErrorContext(ctx, err)
				continue
			}

			for _, ins := range instruments {
				if _, err := u.NextTick(ctx, ins.Symbol); err != nil {
					u.logger.ErrorContext(ctx, err, logger.NewField("symbol", ins.Symbol))
				}
			}
		}
	}
}
