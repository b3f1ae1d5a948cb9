package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
	"github.com/muhammadchandra19/marketsim/pkg/redis"
	"github.com/shopspring/decimal"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	Postgres   postgresql.Config `envPrefix:"POSTGRES_"`
	Redis      redis.Config      `envPrefix:"REDIS_"`
	PriceKafka PriceKafkaConfig  `envPrefix:"PRICE_KAFKA_"`
	Feed       FeedConfig        `envPrefix:"FEED_"`
	Settlement SettlementConfig  `envPrefix:"SETTLEMENT_"`
	Broadcast  BroadcastConfig   `envPrefix:"BROADCAST_"`
	Override   OverrideConfig    `envPrefix:"OVERRIDE_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"marketsim"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// PriceKafkaConfig represents the Kafka configuration for the external
// price stream.
type PriceKafkaConfig struct {
	Enabled       bool     `env:"ENABLED" envDefault:"false"`
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"external-prices"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"marketsim"`
	MaxRetries    int      `env:"MAX_RETRIES" envDefault:"3"`
}

// FeedConfig governs the synthetic price feed and candle aggregation.
// The default instrument is created at startup when missing so a fresh
// deployment generates prices immediately.
type FeedConfig struct {
	Cadence           time.Duration `env:"CADENCE" envDefault:"1s"`
	InitialPrice      string        `env:"INITIAL_PRICE" envDefault:"100.00000000"`
	BucketSize        int           `env:"BUCKET_SIZE" envDefault:"5"`
	RecentLimit       int           `env:"RECENT_LIMIT" envDefault:"30"`
	DefaultSymbol     string        `env:"DEFAULT_SYMBOL" envDefault:"BTC-USD"`
	DefaultInstrument string        `env:"DEFAULT_INSTRUMENT" envDefault:"Bitcoin / US Dollar"`
}

// SettlementConfig governs the settlement worker.
type SettlementConfig struct {
	Interval  time.Duration `env:"INTERVAL" envDefault:"2s"`
	BatchSize int           `env:"BATCH_SIZE" envDefault:"100"`
}

// BroadcastConfig governs the price broadcaster.
type BroadcastConfig struct {
	Channel          string `env:"CHANNEL" envDefault:"prices"`
	SubscriberBuffer int    `env:"SUBSCRIBER_BUFFER" envDefault:"64"`
}

// OverrideConfig governs manual price overrides.
type OverrideConfig struct {
	PastWindow   time.Duration `env:"PAST_WINDOW" envDefault:"24h"`
	FutureWindow time.Duration `env:"FUTURE_WINDOW" envDefault:"1m"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if _, err := decimal.NewFromString(cfg.Feed.InitialPrice); err != nil {
		return nil, fmt.Errorf("invalid feed initial price %q: %w", cfg.Feed.InitialPrice, err)
	}

	return cfg, nil
}
