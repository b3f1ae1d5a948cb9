package broadcast

import (
	"context"
	"sync/atomic"

	"github.com/muhammadchandra19/marketsim/pkg/logger"
)

// Publisher is the write side of the hub. Producers publish fire and
// forget; delivery never blocks and never fails the caller.
//
//go:generate mockgen -source=hub.go -destination=mock/hub_mock.go -package=mock
type Publisher interface {
	Publish(msg Message)
}

// Subscriber receives messages from the hub. The channel is closed when
// the subscriber is dropped or the hub shuts down.
type Subscriber struct {
	id int64
	ch chan Message
}

// C returns the subscriber's receive channel.
func (s *Subscriber) C() <-chan Message { return s.ch }

// Config holds hub tuning parameters.
type Config struct {
	// SubscriberBuffer is the per-subscriber channel capacity. A
	// subscriber that falls this far behind is dropped.
	SubscriberBuffer int
}

// Hub fans messages out to subscribers. A single goroutine owns the
// subscriber map; registration, removal and publishing all go through
// channels, so no mutex is needed. Delivery is at most once and
// order-preserving per subscriber; a slow subscriber is dropped rather
// than retried so publishers never block.
type Hub struct {
	cfg         Config
	logger      logger.Interface
	subscribers map[int64]*Subscriber
	register    chan *Subscriber
	unregister  chan *Subscriber
	messages    chan Message
	started     atomic.Bool
	nextID      atomic.Int64
}

// NewHub creates a new hub.
func NewHub(cfg Config, logger logger.Interface) *Hub {
	if cfg.SubscriberBuffer <= 0 {
		cfg.SubscriberBuffer = 64
	}

	return &Hub{
		cfg:         cfg,
		logger:      logger,
		subscribers: make(map[int64]*Subscriber),
		register:    make(chan *Subscriber, 16),
		unregister:  make(chan *Subscriber, 16),
		messages:    make(chan Message, 256),
	}
}

// Run owns the subscriber map until ctx is cancelled. All subscriber
// channels are closed on shutdown.
func (h *Hub) Run(ctx context.Context) {
	if !h.started.CompareAndSwap(false, true) {
		return
	}

	defer func() {
		for _, sub := range h.subscribers {
			close(sub.ch)
		}
		h.subscribers = make(map[int64]*Subscriber)
		h.started.Store(false)
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("broadcast hub stopped")
			return
		case sub := <-h.register:
			h.subscribers[sub.id] = sub
		case sub := <-h.unregister:
			h.remove(sub)
		case msg := <-h.messages:
			h.fanOut(msg)
		}
	}
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id: h.nextID.Add(1),
		ch: make(chan Message, h.cfg.SubscriberBuffer),
	}
	h.register <- sub
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.unregister <- sub
}

// Publish queues a message for fan-out. When the hub's queue is full the
// message is dropped; persistence must never stall on delivery.
func (h *Hub) Publish(msg Message) {
	select {
	case h.messages <- msg:
	default:
		h.logger.Warn("broadcast queue full, dropping message",
			logger.NewField("type", string(msg.MessageType())),
			logger.NewField("symbol", msg.Symbol()),
		)
	}
}

func (h *Hub) remove(sub *Subscriber) {
	if _, ok := h.subscribers[sub.id]; ok {
		delete(h.subscribers, sub.id)
		close(sub.ch)
	}
}

// fanOut runs on the hub goroutine only.
func (h *Hub) fanOut(msg Message) {
	for _, sub := range h.subscribers {
		select {
		case sub.ch <- msg:
		default:
			h.logger.Warn("subscriber too slow, dropping it",
				logger.NewField("subscriber_id", sub.id),
			)
			h.remove(sub)
		}
	}
}
