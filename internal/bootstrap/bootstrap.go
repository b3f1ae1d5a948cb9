package bootstrap

import (
	"github.com/muhammadchandra19/marketsim/internal/broadcast"
	"github.com/muhammadchandra19/marketsim/internal/config"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
	"github.com/muhammadchandra19/marketsim/pkg/redis"
)

// Bootstrap wires repositories, usecases and the broadcast hub.
type Bootstrap struct {
	Usecase    Usecase
	Repository Repository
	Logger     logger.Interface
	Hub        *broadcast.Hub

	Config   *config.Config
	Postgres postgresql.PostgreSQLClient
	Redis    redis.Client
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config   *config.Config
	Postgres postgresql.PostgreSQLClient
	Redis    redis.Client
	Logger   logger.Interface
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(cfg BootstrapConfig) Bootstrap {
	b.Config = cfg.Config
	b.Postgres = cfg.Postgres
	b.Redis = cfg.Redis
	b.Logger = cfg.Logger

	b.Hub = broadcast.NewHub(broadcast.Config{
		SubscriberBuffer: cfg.Config.Broadcast.SubscriberBuffer,
	}, cfg.Logger)

	b.registerRepository()
	b.registerUsecase()

	return *b
}
