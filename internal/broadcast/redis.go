package broadcast

import (
	"context"

	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/muhammadchandra19/marketsim/pkg/redis"
)

// RedisBridge mirrors hub traffic onto a Redis pub/sub channel so other
// processes can consume the same stream. Publishing failures are logged
// and skipped; the bridge never stalls the hub.
type RedisBridge struct {
	hub     *Hub
	client  redis.Client
	channel string
	logger  logger.Interface
}

// NewRedisBridge creates a new bridge onto the given channel.
func NewRedisBridge(hub *Hub, client redis.Client, channel string, logger logger.Interface) *RedisBridge {
	return &RedisBridge{
		hub:     hub,
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Run forwards hub messages to Redis until ctx is cancelled or the hub
// drops the bridge's subscription.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.hub.Subscribe()
	defer b.hub.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.C():
			if !ok {
				return
			}

			payload, err := Encode(msg)
			if err != nil {
				b.logger.Error(err)
				continue
			}

			if err := b.client.Publish(ctx, b.channel, payload); err != nil {
				b.logger.ErrorContext(ctx, err, logger.NewField("channel", b.channel))
			}
		}
	}
}
