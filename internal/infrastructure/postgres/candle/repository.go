package candle

import (
	"context"
	"fmt"

	"github.com/muhammadchandra19/marketsim/internal/domain/candle"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
)

// Repository is the PostgreSQL repository for candles. Candles are
// immutable once stored, keyed by (symbol, resolution, bucket time).
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new candle repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a completed candle.
func (r *Repository) Store(ctx context.Context, c *candle.Candle) error {
	query := `INSERT INTO candles (symbol, resolution, open, close, min, max, ts)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.client.Exec(ctx, query,
		c.Symbol, c.Resolution, c.Open, c.Close, c.Min, c.Max, c.Time)
	if err != nil {
		return fmt.Errorf("failed to store candle: %w", err)
	}

	return nil
}

// GetRecentBySymbol retrieves up to limit base candles ordered newest
// first.
func (r *Repository) GetRecentBySymbol(ctx context.Context, symbol string, limit int) ([]*candle.Candle, error) {
	query := `SELECT symbol, resolution, open, close, min, max, ts
			  FROM candles
			  WHERE symbol = $1
			  ORDER BY ts DESC
			  LIMIT $2`

	rows, err := r.client.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candles: %w", err)
	}
	defer rows.Close()

	var candles []*candle.Candle
	for rows.Next() {
		c := &candle.Candle{}
		if err := rows.Scan(&c.Symbol, &c.Resolution, &c.Open, &c.Close, &c.Min, &c.Max, &c.Time); err != nil {
			return nil, fmt.Errorf("failed to scan candle: %w", err)
		}
		candles = append(candles, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return candles, nil
}
