package account

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadchandra19/marketsim/internal/domain/account"
	accountmock "github.com/muhammadchandra19/marketsim/internal/domain/account/mock"
	loggermock "github.com/muhammadchandra19/marketsim/pkg/logger/mock"
	pgmock "github.com/muhammadchandra19/marketsim/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestUsecase_Register(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(client *pgmock.MockPostgreSQLClient, tx *pgmock.MockTx, repo *accountmock.MockRepository, lg *loggermock.MockInterface)
		assertFn func(t *testing.T, a *account.Account, err error)
	}{
		{
			name: "account and balance commit together",
			mockFn: func(client *pgmock.MockPostgreSQLClient, tx *pgmock.MockTx, repo *accountmock.MockRepository, lg *loggermock.MockInterface) {
				repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)

				client.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().
					CreateBalance(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *account.Balance) error {
						assert.True(t, b.Amount.Equal(decimal.RequireFromString("1000.00000000")))
						return nil
					})
				tx.EXPECT().Commit(gomock.Any()).Return(nil)

				lg.EXPECT().InfoContext(gomock.Any(), "account registered", gomock.Any())
			},
			assertFn: func(t *testing.T, a *account.Account, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, a.ID)
				assert.Equal(t, "alice", a.Username)
			},
		},
		{
			name: "duplicate username",
			mockFn: func(client *pgmock.MockPostgreSQLClient, tx *pgmock.MockTx, repo *accountmock.MockRepository, lg *loggermock.MockInterface) {
				repo.EXPECT().
					GetByUsername(gomock.Any(), "alice").
					Return(&account.Account{ID: "acc-1", Username: "alice"}, nil)
			},
			assertFn: func(t *testing.T, a *account.Account, err error) {
				assert.Error(t, err)
				assert.Nil(t, a)
				assert.Contains(t, err.Error(), "already taken")
			},
		},
		{
			name: "balance creation failure rolls the account back",
			mockFn: func(client *pgmock.MockPostgreSQLClient, tx *pgmock.MockTx, repo *accountmock.MockRepository, lg *loggermock.MockInterface) {
				repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)

				client.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().CreateBalance(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
				tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, a *account.Account, err error) {
				assert.Error(t, err)
				assert.Nil(t, a)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := pgmock.NewMockPostgreSQLClient(ctrl)
			tx := pgmock.NewMockTx(ctrl)
			repo := accountmock.NewMockRepository(ctrl)
			lg := loggermock.NewMockInterface(ctrl)
			tc.mockFn(client, tx, repo, lg)

			uc := NewUsecase(client, repo, lg)
			a, err := uc.Register(context.Background(), "alice")
			tc.assertFn(t, a, err)
		})
	}
}

func TestUsecase_GetBalance(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := accountmock.NewMockRepository(ctrl)
		repo.EXPECT().
			GetBalance(gomock.Any(), "acc-1").
			Return(&account.Balance{AccountID: "acc-1", Amount: decimal.RequireFromString("950")}, nil)

		uc := NewUsecase(nil, repo, nil)
		b, err := uc.GetBalance(context.Background(), "acc-1")
		assert.NoError(t, err)
		assert.True(t, b.Amount.Equal(decimal.RequireFromString("950")))
	})

	t.Run("missing account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := accountmock.NewMockRepository(ctrl)
		repo.EXPECT().GetBalance(gomock.Any(), "ghost").Return(nil, nil)

		uc := NewUsecase(nil, repo, nil)
		b, err := uc.GetBalance(context.Background(), "ghost")
		assert.Error(t, err)
		assert.Nil(t, b)
	})
}
