package wager

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/marketsim/internal/domain/wager"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
)

// Repository is the PostgreSQL repository for wagers. The result column
// doubles as the settlement lock: Claim flips PENDING to SETTLING in a
// single conditional UPDATE, so only one worker ever settles a wager.
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new wager repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert stores a new wager.
func (r *Repository) Insert(ctx context.Context, w *wager.Wager) error {
	query := `INSERT INTO wagers
			  (id, account_id, symbol, amount, direction, entry_price, timeframe_seconds, created_at, expires_at, result)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.client.Exec(ctx, query,
		w.ID, w.AccountID, w.Symbol, w.Amount, string(w.Direction), w.EntryPrice,
		int64(w.Timeframe/time.Second), w.CreatedAt, w.ExpiresAt, string(w.Result))
	if err != nil {
		return fmt.Errorf("failed to insert wager: %w", err)
	}

	return nil
}

// GetByID returns a wager by id, or nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*wager.Wager, error) {
	query := selectColumns + ` WHERE id = $1`

	w, err := r.scanOne(r.client.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}

	return w, nil
}

// ListByAccount returns up to limit wagers for an account, newest first.
func (r *Repository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*wager.Wager, error) {
	query := selectColumns + `
			  WHERE account_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2`

	rows, err := r.client.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query wagers: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// PendingExpired returns PENDING wagers whose expiry has passed, oldest
// expiry first.
func (r *Repository) PendingExpired(ctx context.Context, now time.Time, limit int) ([]*wager.Wager, error) {
	query := selectColumns + `
			  WHERE result = 'PENDING' AND expires_at <= $1
			  ORDER BY expires_at
			  LIMIT $2`

	rows, err := r.client.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired wagers: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// Claim atomically moves a wager from PENDING to SETTLING. Returns false
// when another worker already holds the claim or the wager is terminal.
func (r *Repository) Claim(ctx context.Context, id string) (bool, error) {
	query := `UPDATE wagers
			  SET result = 'SETTLING'
			  WHERE id = $1 AND result = 'PENDING'`

	tag, err := r.client.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to claim wager: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Release moves a claimed wager back to PENDING so a later cycle retries
// it.
func (r *Repository) Release(ctx context.Context, id string) error {
	query := `UPDATE wagers
			  SET result = 'PENDING'
			  WHERE id = $1 AND result = 'SETTLING'`

	_, err := r.client.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to release wager: %w", err)
	}

	return nil
}

// Settle moves a claimed wager to its terminal result.
func (r *Repository) Settle(ctx context.Context, id string, result wager.Result) error {
	query := `UPDATE wagers
			  SET result = $2
			  WHERE id = $1 AND result = 'SETTLING'`

	tag, err := r.client.Exec(ctx, query, id, string(result))
	if err != nil {
		return fmt.Errorf("failed to settle wager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wager %s not in settling state", id)
	}

	return nil
}

// Statistics aggregates an account's wager history. Profit counts the
// net gain of wins (payout minus stake), loss the forfeited stakes.
func (r *Repository) Statistics(ctx context.Context, accountID string) (*wager.Statistics, error) {
	query := `SELECT
				COALESCE(SUM(amount) FILTER (WHERE result = 'WIN'), 0),
				COALESCE(SUM(amount) FILTER (WHERE result = 'LOSS'), 0),
				COUNT(*),
				COUNT(*) FILTER (WHERE result IN ('PENDING', 'SETTLING'))
			  FROM wagers
			  WHERE account_id = $1`

	stats := &wager.Statistics{}
	err := r.client.QueryRow(ctx, query, accountID).Scan(
		&stats.TotalProfit, &stats.TotalLoss, &stats.TotalCount, &stats.PendingCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager statistics: %w", err)
	}

	return stats, nil
}

const selectColumns = `SELECT id, account_id, symbol, amount, direction, entry_price, timeframe_seconds, created_at, expires_at, result
			  FROM wagers`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanOne(row rowScanner) (*wager.Wager, error) {
	w := &wager.Wager{}
	var direction, result string
	var timeframeSeconds int64

	err := row.Scan(&w.ID, &w.AccountID, &w.Symbol, &w.Amount, &direction,
		&w.EntryPrice, &timeframeSeconds, &w.CreatedAt, &w.ExpiresAt, &result)
	if err != nil {
		return nil, err
	}

	w.Direction = wager.Direction(direction)
	w.Result = wager.Result(result)
	w.Timeframe = time.Duration(timeframeSeconds) * time.Second

	return w, nil
}

func (r *Repository) scanMany(rows postgresql.RowsInterface) ([]*wager.Wager, error) {
	var wagers []*wager.Wager
	for rows.Next() {
		w, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return wagers, nil
}
