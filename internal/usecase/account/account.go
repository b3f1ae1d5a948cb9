package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/marketsim/internal/domain/account"
	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
	"github.com/shopspring/decimal"
)

// OpeningBalance is the amount every new account starts with.
var OpeningBalance = decimal.RequireFromString("1000.00000000")

// Usecase manages accounts. Registration creates the account and its
// balance row in one transaction so no account ever exists without
// funds.
type Usecase struct {
	client            postgresql.PostgreSQLClient
	accountRepository account.Repository
	logger            logger.Interface
}

// NewUsecase creates a new account usecase.
func NewUsecase(
	client postgresql.PostgreSQLClient,
	accountRepository account.Repository,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		client:            client,
		accountRepository: accountRepository,
		logger:            logger,
	}
}

// Register creates a new account with the opening balance.
func (u *Usecase) Register(ctx context.Context, username string) (*account.Account, error) {
	existing, err := u.accountRepository.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if existing != nil {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"username "+username+" already taken",
			string(errors.GeneralBadRequestError),
			"username",
		))
	}

	now := time.Now().UTC()
	a := &account.Account{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
	}

	err = postgresql.WithTx(ctx, u.client, func(txCtx context.Context) error {
		if err := u.accountRepository.CreateAccount(txCtx, a); err != nil {
			return err
		}
		return u.accountRepository.CreateBalance(txCtx, &account.Balance{
			AccountID: a.ID,
			Amount:    OpeningBalance,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "account registered",
		logger.NewField("account_id", a.ID),
		logger.NewField("username", a.Username),
	)

	return a, nil
}

// GetBalance returns an account's balance.
func (u *Usecase) GetBalance(ctx context.Context, accountID string) (*account.Balance, error) {
	b, err := u.accountRepository.GetBalance(ctx, accountID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if b == nil {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			"no balance for account "+accountID,
			string(errors.GeneralNotFoundError),
			"account_id",
		))
	}
	return b, nil
}
