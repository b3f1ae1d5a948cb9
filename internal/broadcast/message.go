package broadcast

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MessageType discriminates push payloads on the prices channel.
type MessageType string

const (
	// MessageTypeTick marks a single price observation.
	MessageTypeTick MessageType = "tick"
	// MessageTypeCandle marks a completed candle.
	MessageTypeCandle MessageType = "candle"
)

// Message is a push payload. The concrete type carries the data; the
// wire envelope is produced by Encode.
type Message interface {
	MessageType() MessageType
	Symbol() string
}

// TickMessage is the push payload for a price tick.
type TickMessage struct {
	Instrument string
	Price      decimal.Decimal
	Time       time.Time
}

// MessageType implements Message.
func (TickMessage) MessageType() MessageType { return MessageTypeTick }

// Symbol implements Message.
func (m TickMessage) Symbol() string { return m.Instrument }

// CandleMessage is the push payload for a completed candle.
type CandleMessage struct {
	Instrument string
	Resolution string
	Open       decimal.Decimal
	Close      decimal.Decimal
	Min        decimal.Decimal
	Max        decimal.Decimal
	Time       time.Time
}

// MessageType implements Message.
func (CandleMessage) MessageType() MessageType { return MessageTypeCandle }

// Symbol implements Message.
func (m CandleMessage) Symbol() string { return m.Instrument }

// envelope is the wire form. Prices travel as fixed-point strings with
// eight fractional digits, times as RFC 3339.
type envelope struct {
	Type       MessageType `json:"type"`
	Symbol     string      `json:"symbol"`
	Price      string      `json:"price,omitempty"`
	Resolution string      `json:"resolution,omitempty"`
	Open       string      `json:"open,omitempty"`
	Close      string      `json:"close,omitempty"`
	Min        string      `json:"min,omitempty"`
	Max        string      `json:"max,omitempty"`
	Time       string      `json:"time"`
}

// Encode serialises a message to its wire form.
func Encode(msg Message) ([]byte, error) {
	var env envelope

	switch m := msg.(type) {
	case TickMessage:
		env = envelope{
			Type:   MessageTypeTick,
			Symbol: m.Instrument,
			Price:  m.Price.StringFixed(8),
			Time:   m.Time.UTC().Format(time.RFC3339Nano),
		}
	case CandleMessage:
		env = envelope{
			Type:       MessageTypeCandle,
			Symbol:     m.Instrument,
			Resolution: m.Resolution,
			Open:       m.Open.StringFixed(8),
			Close:      m.Close.StringFixed(8),
			Min:        m.Min.StringFixed(8),
			Max:        m.Max.StringFixed(8),
			Time:       m.Time.UTC().Format(time.RFC3339Nano),
		}
	default:
		return nil, fmt.Errorf("unknown message type %T", msg)
	}

	return json.Marshal(env)
}
