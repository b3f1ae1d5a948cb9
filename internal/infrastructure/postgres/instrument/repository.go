package instrument

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
)

// Repository is the PostgreSQL repository for instruments.
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new instrument repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Create stores a new instrument. A duplicate symbol is reported as
// DUPLICATE_SYMBOL.
func (r *Repository) Create(ctx context.Context, ins *instrument.Instrument) error {
	query := `INSERT INTO instruments (id, symbol, name, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.client.Exec(ctx, query, ins.ID, ins.Symbol, ins.Name, ins.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errors.NewErrorDetails(
				fmt.Sprintf("instrument symbol %s already exists", ins.Symbol),
				string(errors.ErrDuplicateSymbol),
				"symbol",
			)
		}
		return fmt.Errorf("failed to create instrument: %w", err)
	}

	return nil
}

// GetBySymbol returns the instrument for a symbol, or nil when unknown.
func (r *Repository) GetBySymbol(ctx context.Context, symbol string) (*instrument.Instrument, error) {
	query := `SELECT id, symbol, name, created_at
			  FROM instruments
			  WHERE symbol = $1`

	ins := &instrument.Instrument{}
	err := r.client.QueryRow(ctx, query, symbol).Scan(
		&ins.ID, &ins.Symbol, &ins.Name, &ins.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get instrument: %w", err)
	}

	return ins, nil
}

// List returns all instruments ordered by symbol.
func (r *Repository) List(ctx context.Context) ([]*instrument.Instrument, error) {
	query := `SELECT id, symbol, name, created_at
			  FROM instruments
			  ORDER BY symbol`

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	var instruments []*instrument.Instrument
	for rows.Next() {
		ins := &instrument.Instrument{}
		if err := rows.Scan(&ins.ID, &ins.Symbol, &ins.Name, &ins.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		instruments = append(instruments, ins)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return instruments, nil
}
