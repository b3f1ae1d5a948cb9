package bootstrap

import (
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/shopspring/decimal"

	accountUc "github.com/muhammadchandra19/marketsim/internal/usecase/account"
	candleUc "github.com/muhammadchandra19/marketsim/internal/usecase/candle"
	feedUc "github.com/muhammadchandra19/marketsim/internal/usecase/feed"
	instrumentUc "github.com/muhammadchandra19/marketsim/internal/usecase/instrument"
	overrideUc "github.com/muhammadchandra19/marketsim/internal/usecase/override"
	settlementUc "github.com/muhammadchandra19/marketsim/internal/usecase/settlement"
	wagerUc "github.com/muhammadchandra19/marketsim/internal/usecase/wager"
)

// Usecase holds every usecase.
type Usecase struct {
	InstrumentUsecase *instrumentUc.Usecase
	FeedUsecase       *feedUc.Usecase
	CandleUsecase     *candleUc.Usecase
	AccountUsecase    *accountUc.Usecase
	WagerUsecase      *wagerUc.Usecase
	SettlementUsecase *settlementUc.Usecase
	OverrideUsecase   *overrideUc.Usecase
}

// registerUsecase registers the usecases. The candle usecase is built
// first because the feed ingests through it.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.InstrumentUsecase = instrumentUc.NewUsecase(b.Repository.InstrumentRepository, b.Logger)

	b.Usecase.CandleUsecase = candleUc.NewUsecase(
		b.Repository.CandleRepository,
		b.Hub,
		b.Logger,
		candleUc.Config{BucketSize: b.Config.Feed.BucketSize},
	)

	// config.Load rejects unparseable initial prices; this guards callers
	// that construct the config directly.
	initialPrice, err := decimal.NewFromString(b.Config.Feed.InitialPrice)
	if err != nil {
		b.Logger.Error(err,
			logger.NewField("initial_price", b.Config.Feed.InitialPrice),
		)
		initialPrice = decimal.Zero
	}

	b.Usecase.FeedUsecase = feedUc.NewUsecase(
		b.Repository.TickRepository,
		b.Repository.InstrumentRepository,
		b.Usecase.CandleUsecase,
		b.Hub,
		b.Logger,
		feedUc.Config{
			Cadence:      b.Config.Feed.Cadence,
			InitialPrice: initialPrice,
		},
	)

	b.Usecase.AccountUsecase = accountUc.NewUsecase(b.Postgres, b.Repository.AccountRepository, b.Logger)

	b.Usecase.WagerUsecase = wagerUc.NewUsecase(
		b.Postgres,
		b.Repository.WagerRepository,
		b.Repository.AccountRepository,
		b.Repository.InstrumentRepository,
		b.Repository.TickRepository,
		b.Logger,
	)

	b.Usecase.SettlementUsecase = settlementUc.NewUsecase(
		b.Postgres,
		b.Repository.WagerRepository,
		b.Repository.AccountRepository,
		b.Repository.TickRepository,
		b.Logger,
		settlementUc.Config{
			Interval:  b.Config.Settlement.Interval,
			BatchSize: b.Config.Settlement.BatchSize,
		},
	)

	b.Usecase.OverrideUsecase = overrideUc.NewUsecase(
		b.Repository.OverrideRepository,
		b.Repository.InstrumentRepository,
		b.Logger,
		overrideUc.Config{
			PastWindow:   b.Config.Override.PastWindow,
			FutureWindow: b.Config.Override.FutureWindow,
		},
	)
}
