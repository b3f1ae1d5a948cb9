package redis

import "context"

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// Client is the interface for the Redis pub/sub client.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Ping(ctx context.Context) error
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}
