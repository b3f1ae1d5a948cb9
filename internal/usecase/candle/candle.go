package candle

import (
	"context"
	"sync"

	"github.com/muhammadchandra19/marketsim/internal/broadcast"
	"github.com/muhammadchandra19/marketsim/internal/domain/candle"
	"github.com/muhammadchandra19/marketsim/internal/domain/tick"
	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/muhammadchandra19/marketsim/pkg/resolution"
)

// Usecase aggregates ticks into base candles and derives coarser
// resolutions on read. Each instrument owns its own bounded tick window;
// there is no shared global buffer.
type Usecase struct {
	candleRepository candle.Repository
	publisher        broadcast.Publisher
	logger           logger.Interface

	bucketSize int

	mu      sync.Mutex
	windows map[string][]*tick.Tick
}

// Config holds aggregation tuning parameters.
type Config struct {
	// BucketSize is the number of consecutive ticks per base candle.
	BucketSize int
}

// NewUsecase creates a new candle usecase.
func NewUsecase(
	candleRepository candle.Repository,
	publisher broadcast.Publisher,
	logger logger.Interface,
	cfg Config,
) *Usecase {
	if cfg.BucketSize <= 0 {
		cfg.BucketSize = 5
	}

	return &Usecase{
		candleRepository: candleRepository,
		publisher:        publisher,
		logger:           logger,
		bucketSize:       cfg.BucketSize,
		windows:          make(map[string][]*tick.Tick),
	}
}

// Ingest appends a tick to the instrument's window. Every full bucket of
// exactly bucketSize ticks is closed into a base candle, persisted and
// published. A persistence failure keeps the window intact so the bucket
// is retried with the next tick; ticks beyond the failed bucket stay
// queued and close their own buckets once persistence recovers.
func (u *Usecase) Ingest(ctx context.Context, t *tick.Tick) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	window := append(u.windows[t.Symbol], t)

	for len(window) >= u.bucketSize {
		c := buildCandle(window[:u.bucketSize])

		if err := u.candleRepository.Store(ctx, c); err != nil {
			u.windows[t.Symbol] = window
			return errors.TracerFromError(err)
		}
		window = window[u.bucketSize:]

		u.publisher.Publish(broadcast.CandleMessage{
			Instrument: c.Symbol,
			Resolution: c.Resolution,
			Open:       c.Open,
			Close:      c.Close,
			Min:        c.Min,
			Max:        c.Max,
			Time:       c.Time,
		})
	}

	u.windows[t.Symbol] = window
	return nil
}

// buildCandle closes a full window into a base candle. The window is in
// chronological order: the earliest tick opens the candle and the latest
// closes and timestamps it.
func buildCandle(window []*tick.Tick) *candle.Candle {
	first, last := window[0], window[len(window)-1]

	c := &candle.Candle{
		Symbol:     first.Symbol,
		Resolution: resolution.Base.Name,
		Open:       first.Price,
		Close:      last.Price,
		Min:        first.Price,
		Max:        first.Price,
		Time:       last.Timestamp,
	}

	for _, t := range window[1:] {
		if t.Price.LessThan(c.Min) {
			c.Min = t.Price
		}
		if t.Price.GreaterThan(c.Max) {
			c.Max = t.Price
		}
	}

	return c
}

// GetCandles returns up to limit candles for a symbol at the requested
// resolution, oldest first. Coarser resolutions are folded from stored
// base candles; a trailing partial run is discarded, never emitted.
func (u *Usecase) GetCandles(ctx context.Context, symbol, resolutionName string, limit int) ([]*candle.Candle, error) {
	res, err := resolution.Get(resolutionName)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	base, err := u.candleRepository.GetRecentBySymbol(ctx, symbol, limit*res.Multiple)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	// Repository order is newest first; folding wants chronological.
	reverse(base)

	if res.IsBase() {
		return base, nil
	}

	return Derive(base, res), nil
}

// Derive folds chronological base candles into runs of res.Multiple.
// Each run opens with its first candle, closes with its last, spans the
// true extrema and carries the last candle's timestamp. A trailing run
// shorter than the multiple is discarded.
func Derive(base []*candle.Candle, res resolution.Resolution) []*candle.Candle {
	m := res.Multiple
	derived := make([]*candle.Candle, 0, len(base)/m)

	for i := 0; i+m <= len(base); i += m {
		run := base[i : i+m]
		first, last := run[0], run[m-1]

		d := &candle.Candle{
			Symbol:     first.Symbol,
			Resolution: res.Name,
			Open:       first.Open,
			Close:      last.Close,
			Min:        first.Min,
			Max:        first.Max,
			Time:       last.Time,
		}

		for _, c := range run[1:] {
			if c.Min.LessThan(d.Min) {
				d.Min = c.Min
			}
			if c.Max.GreaterThan(d.Max) {
				d.Max = c.Max
			}
		}

		derived = append(derived, d)
	}

	return derived
}

// PendingWindow returns a copy of the open window for a symbol. Used by
// read paths that want the in-progress bucket alongside closed candles.
func (u *Usecase) PendingWindow(symbol string) []*tick.Tick {
	u.mu.Lock()
	defer u.mu.Unlock()

	window := u.windows[symbol]
	out := make([]*tick.Tick, len(window))
	copy(out, window)
	return out
}

func reverse(candles []*candle.Candle) {
	for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
		candles[i], candles[j] = candles[j], candles[i]
	}
}
