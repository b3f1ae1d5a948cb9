package tick

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/marketsim/internal/domain/tick"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
)

// Repository is the PostgreSQL repository for price ticks. The tick log
// is append-only; rows are never updated or deleted.
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new tick repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store appends a tick.
func (r *Repository) Store(ctx context.Context, t *tick.Tick) error {
	query := `INSERT INTO ticks (symbol, price, ts)
			  VALUES ($1, $2, $3)`

	_, err := r.client.Exec(ctx, query, t.Symbol, t.Price, t.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to store tick: %w", err)
	}

	return nil
}

// GetLatestBySymbol retrieves the latest tick for a symbol, or nil when
// the instrument has no tick yet.
func (r *Repository) GetLatestBySymbol(ctx context.Context, symbol string) (*tick.Tick, error) {
	query := `SELECT symbol, price, ts
			  FROM ticks
			  WHERE symbol = $1
			  ORDER BY ts DESC, id DESC
			  LIMIT 1`

	t := &tick.Tick{}
	err := r.client.QueryRow(ctx, query, symbol).Scan(&t.Symbol, &t.Price, &t.Timestamp)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest tick: %w", err)
	}

	return t, nil
}

// GetRecentBySymbol retrieves up to limit ticks ordered newest first.
func (r *Repository) GetRecentBySymbol(ctx context.Context, symbol string, limit int) ([]*tick.Tick, error) {
	query := `SELECT symbol, price, ts
			  FROM ticks
			  WHERE symbol = $1
			  ORDER BY ts DESC, id DESC
			  LIMIT $2`

	rows, err := r.client.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []*tick.Tick
	for rows.Next() {
		t := &tick.Tick{}
		if err := rows.Scan(&t.Symbol, &t.Price, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		ticks = append(ticks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ticks, nil
}
