package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/marketsim/internal/domain/account"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
	"github.com/shopspring/decimal"
)

// Repository is the PostgreSQL repository for accounts and balances.
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new account repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// CreateAccount stores a new account.
func (r *Repository) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `INSERT INTO accounts (id, username, created_at)
			  VALUES ($1, $2, $3)`

	_, err := r.client.Exec(ctx, query, a.ID, a.Username, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// CreateBalance stores the balance row for an account.
func (r *Repository) CreateBalance(ctx context.Context, b *account.Balance) error {
	query := `INSERT INTO balances (account_id, amount, updated_at)
			  VALUES ($1, $2, $3)`

	_, err := r.client.Exec(ctx, query, b.AccountID, b.Amount, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create balance: %w", err)
	}

	return nil
}

// GetByUsername returns the account for a username, or nil when unknown.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	query := `SELECT id, username, created_at
			  FROM accounts
			  WHERE username = $1`

	a := &account.Account{}
	err := r.client.QueryRow(ctx, query, username).Scan(&a.ID, &a.Username, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}

// GetBalance returns the balance of an account, or nil when the account
// has none.
func (r *Repository) GetBalance(ctx context.Context, accountID string) (*account.Balance, error) {
	query := `SELECT account_id, amount, updated_at
			  FROM balances
			  WHERE account_id = $1`

	b := &account.Balance{}
	err := r.client.QueryRow(ctx, query, accountID).Scan(&b.AccountID, &b.Amount, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return b, nil
}

// Debit subtracts amount from the balance only when enough funds are
// available. The WHERE clause keeps the check and the mutation in one
// statement so concurrent debits cannot drive the balance negative.
func (r *Repository) Debit(ctx context.Context, accountID string, amount decimal.Decimal) (bool, error) {
	query := `UPDATE balances
			  SET amount = amount - $2, updated_at = now()
			  WHERE account_id = $1 AND amount >= $2`

	tag, err := r.client.Exec(ctx, query, accountID, amount)
	if err != nil {
		return false, fmt.Errorf("failed to debit balance: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Credit adds amount to the balance.
func (r *Repository) Credit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	query := `UPDATE balances
			  SET amount = amount + $2, updated_at = now()
			  WHERE account_id = $1`

	tag, err := r.client.Exec(ctx, query, accountID, amount)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no balance row for account %s", accountID)
	}

	return nil
}
