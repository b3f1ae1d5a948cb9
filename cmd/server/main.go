package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/marketsim/internal/bootstrap"
	"github.com/muhammadchandra19/marketsim/internal/broadcast"
	"github.com/muhammadchandra19/marketsim/internal/config"
	"github.com/muhammadchandra19/marketsim/internal/consumer"
	"github.com/muhammadchandra19/marketsim/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
	"github.com/muhammadchandra19/marketsim/pkg/redis"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		lg.Error(err)
		os.Exit(1)
	}
	defer pgClient.Close()

	if err := pgClient.Ping(ctx); err != nil {
		lg.Error(err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(lg, &cfg.Redis)
	if err := redisClient.Connect(ctx); err != nil {
		lg.Error(err)
		os.Exit(1)
	}
	defer redisClient.Disconnect()

	app := (&bootstrap.Bootstrap{}).Init(bootstrap.BootstrapConfig{
		Config:   cfg,
		Postgres: pgClient,
		Redis:    redisClient,
		Logger:   lg,
	})

	if _, err := app.Usecase.InstrumentUsecase.Ensure(ctx, cfg.Feed.DefaultSymbol, cfg.Feed.DefaultInstrument); err != nil {
		lg.Error(err)
		os.Exit(1)
	}

	go app.Hub.Run(ctx)

	bridge := broadcast.NewRedisBridge(app.Hub, redisClient, cfg.Broadcast.Channel, lg)
	go bridge.Run(ctx)

	go func() {
		if err := app.Usecase.FeedUsecase.Run(ctx); err != nil && ctx.Err() == nil {
			lg.Error(err)
		}
	}()

	go func() {
		if err := app.Usecase.SettlementUsecase.Run(ctx); err != nil && ctx.Err() == nil {
			lg.Error(err)
		}
	}()

	if cfg.PriceKafka.Enabled {
		priceConsumer := consumer.NewPriceConsumer(
			cfg.PriceKafka,
			lg,
			app.Repository.TickRepository,
			app.Usecase.CandleUsecase,
			app.Hub,
		)
		go priceConsumer.Start(ctx)
		go priceConsumer.Subscribe(ctx)
		defer priceConsumer.Stop()
	}

	mux := http.NewServeMux()
	mux.Handle("/ws/prices", broadcast.NewWebsocketHandler(app.Hub, lg))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: healthcheck.HealthCheck{}.Handler(mux),
	}

	go func() {
		lg.Info("server listening",
			logger.NewField("app", cfg.App.Name),
			logger.NewField("environment", cfg.App.Environment),
			logger.NewField("port", cfg.App.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error(err)
	}

	lg.Info("stopped")
}
