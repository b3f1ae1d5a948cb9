package override

import (
	"context"
	"fmt"

	"github.com/muhammadchandra19/marketsim/internal/domain/override"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
)

// Repository is the PostgreSQL repository for manual price overrides.
// Overrides are an append-only audit trail.
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new override repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert stores an override record.
func (r *Repository) Insert(ctx context.Context, o *override.Override) error {
	query := `INSERT INTO overrides (id, symbol, ts, value, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := r.client.Exec(ctx, query, o.ID, o.Symbol, o.Time, o.Value, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert override: %w", err)
	}

	return nil
}

// ListBySymbol returns up to limit overrides for a symbol, newest first.
func (r *Repository) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*override.Override, error) {
	query := `SELECT id, symbol, ts, value, created_at
			  FROM overrides
			  WHERE symbol = $1
			  ORDER BY created_at DESC
			  LIMIT $2`

	rows, err := r.client.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []*override.Override
	for rows.Next() {
		o := &override.Override{}
		if err := rows.Scan(&o.ID, &o.Symbol, &o.Time, &o.Value, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return overrides, nil
}
