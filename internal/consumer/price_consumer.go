package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadchandra19/marketsim/internal/broadcast"
	"github.com/muhammadchandra19/marketsim/internal/config"
	"github.com/muhammadchandra19/marketsim/internal/domain/tick"
	"github.com/muhammadchandra19/marketsim/internal/usecase/feed"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// RawPriceEvent is the wire form of an externally supplied price.
type RawPriceEvent struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Time   string `json:"time"`
}

// PriceConsumer ingests externally produced price ticks from Kafka and
// feeds them through the same persistence, aggregation and broadcast
// path as the synthetic feed. A malformed event is dropped and logged;
// the loop never terminates on bad input.
type PriceConsumer struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface

	tickRepository tick.Repository
	ingestor       feed.Ingestor
	publisher      broadcast.Publisher
	msgChan        chan kafka.Message
}

// NewPriceConsumer creates a new PriceConsumer.
func NewPriceConsumer(
	cfg config.PriceKafkaConfig,
	logger logger.Interface,
	tickRepository tick.Repository,
	ingestor feed.Ingestor,
	publisher broadcast.Publisher,
) *PriceConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &PriceConsumer{
		kafkaReader:    kafkaReader,
		logger:         logger,
		tickRepository: tickRepository,
		ingestor:       ingestor,
		publisher:      publisher,
		msgChan:        make(chan kafka.Message),
	}
}

// Start reads messages from Kafka until ctx is cancelled.
func (c *PriceConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting price consumer", logger.Field{
		Key:   "action",
		Value: "price_consumer_start",
	})

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "price_consumer_stop",
			})
			close(c.msgChan)
			return
		default:
			msg, err := c.kafkaReader.ReadMessage(ctx)
			if err != nil {
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "read_message",
				})
				continue
			}

			c.msgChan <- msg
		}
	}
}

// Stop stops the PriceConsumer.
func (c *PriceConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping price consumer", logger.Field{
		Key:   "action",
		Value: "price_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe processes buffered messages until the channel closes.
func (c *PriceConsumer) Subscribe(ctx context.Context) {
	for msg := range c.msgChan {
		var event RawPriceEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "unmarshal_price",
			})
			continue
		}

		if err := c.handlePrice(ctx, &event); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_price",
			})
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (c *PriceConsumer) handlePrice(ctx context.Context, event *RawPriceEvent) error {
	price, err := decimal.NewFromString(event.Price)
	if err != nil {
		return err
	}

	ts, err := time.Parse(time.RFC3339Nano, event.Time)
	if err != nil {
		return err
	}

	t := &tick.Tick{
		Symbol:    event.Symbol,
		Price:     price,
		Timestamp: ts.UTC(),
	}

	if err := c.tickRepository.Store(ctx, t); err != nil {
		return err
	}

	if err := c.ingestor.Ingest(ctx, t); err != nil {
		return err
	}

	c.publisher.Publish(broadcast.TickMessage{
		Instrument: t.Symbol,
		Price:      t.Price,
		Time:       t.Timestamp,
	})

	return nil
}
