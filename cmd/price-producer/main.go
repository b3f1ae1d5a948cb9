package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// PriceEvent is the wire form of an externally supplied price.
type PriceEvent struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Time   string `json:"time"`
}

// generatePrices walks a random price series starting at basePrice. Each
// step multiplies by a uniform factor in [1-spread, 1+spread].
func generatePrices(count int, symbol string, basePrice decimal.Decimal, spread float64) []PriceEvent {
	events := make([]PriceEvent, count)
	price := basePrice
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		factor := decimal.NewFromFloat(1 + spread*(2*rand.Float64()-1))
		price = price.Mul(factor).Round(8)

		events[i] = PriceEvent{
			Symbol: symbol,
			Price:  price.StringFixed(8),
			Time:   now.Add(time.Duration(i) * time.Second).Format(time.RFC3339Nano),
		}
	}

	return events
}

func main() {
	var (
		brokers   = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic     = flag.String("topic", "external-prices", "Kafka topic name")
		symbol    = flag.String("symbol", "SIM", "Instrument symbol")
		count     = flag.Int("count", 100, "Number of price events to generate")
		delay     = flag.Duration("delay", time.Second, "Delay between events")
		basePrice = flag.String("base-price", "100.00000000", "Starting price")
		spread    = flag.Float64("spread", 0.05, "Per-step drift range")
	)
	flag.Parse()

	base, err := decimal.NewFromString(*basePrice)
	if err != nil {
		log.Fatalf("Invalid base price %q: %v", *basePrice, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	events := generatePrices(*count, *symbol, base, *spread)
	log.Printf("Sending %d price events to %s, topic %s", len(events), *brokers, *topic)

	for i, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal event %d: %v", i+1, err)
			continue
		}

		msg := kafka.Message{
			Key:   []byte(event.Symbol),
			Value: payload,
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send event %d: %v", i+1, err)
			continue
		}

		if (i+1)%10 == 0 || i == len(events)-1 {
			log.Printf("Sent %d/%d: %s @ %s", i+1, len(events), event.Symbol, event.Price)
		}

		if i < len(events)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("Done")
}
