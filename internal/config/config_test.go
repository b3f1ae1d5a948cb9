package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "100.00000000", cfg.Feed.InitialPrice)
		assert.Equal(t, 5, cfg.Feed.BucketSize)
		assert.Equal(t, "BTC-USD", cfg.Feed.DefaultSymbol)
		assert.Equal(t, "prices", cfg.Broadcast.Channel)
	})

	t.Run("unparseable initial price is rejected", func(t *testing.T) {
		t.Setenv("FEED_INITIAL_PRICE", "a hundred")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid feed initial price")
	})
}
