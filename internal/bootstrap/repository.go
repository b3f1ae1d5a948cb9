package bootstrap

import (
	accountDomain "github.com/muhammadchandra19/marketsim/internal/domain/account"
	candleDomain "github.com/muhammadchandra19/marketsim/internal/domain/candle"
	instrumentDomain "github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	overrideDomain "github.com/muhammadchandra19/marketsim/internal/domain/override"
	tickDomain "github.com/muhammadchandra19/marketsim/internal/domain/tick"
	wagerDomain "github.com/muhammadchandra19/marketsim/internal/domain/wager"
	accountInfra "github.com/muhammadchandra19/marketsim/internal/infrastructure/postgres/account"
	candleInfra "github.com/muhammadchandra19/marketsim/internal/infrastructure/postgres/candle"
	instrumentInfra "github.com/muhammadchandra19/marketsim/internal/infrastructure/postgres/instrument"
	overrideInfra "github.com/muhammadchandra19/marketsim/internal/infrastructure/postgres/override"
	tickInfra "github.com/muhammadchandra19/marketsim/internal/infrastructure/postgres/tick"
	wagerInfra "github.com/muhammadchandra19/marketsim/internal/infrastructure/postgres/wager"
)

// Repository holds every repository.
type Repository struct {
	InstrumentRepository instrumentDomain.Repository
	TickRepository       tickDomain.Repository
	CandleRepository     candleDomain.Repository
	AccountRepository    accountDomain.Repository
	WagerRepository      wagerDomain.Repository
	OverrideRepository   overrideDomain.Repository
}

// registerRepository registers the repositories.
func (b *Bootstrap) registerRepository() {
	b.Repository.InstrumentRepository = instrumentInfra.NewRepository(b.Postgres)
	b.Repository.TickRepository = tickInfra.NewRepository(b.Postgres)
	b.Repository.CandleRepository = candleInfra.NewRepository(b.Postgres)
	b.Repository.AccountRepository = accountInfra.NewRepository(b.Postgres)
	b.Repository.WagerRepository = wagerInfra.NewRepository(b.Postgres)
	b.Repository.OverrideRepository = overrideInfra.NewRepository(b.Postgres)
}
