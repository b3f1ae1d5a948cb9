package wager

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/muhammadchandra19/marketsim/internal/domain/wager"
	mock "github.com/muhammadchandra19/marketsim/pkg/postgresql/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRepository_Claim(t *testing.T) {
	query := `UPDATE wagers
			  SET result = 'SETTLING'
			  WHERE id = $1 AND result = 'PENDING'`

	testCases := []struct {
		name     string
		mockFn   func(client *mock.MockPostgreSQLClient)
		assertFn func(t *testing.T, claimed bool, err error)
	}{
		{
			name: "claimed",
			mockFn: func(client *mock.MockPostgreSQLClient) {
				client.EXPECT().
					Exec(gomock.Any(), query, "w-1").
					Return(pgconn.NewCommandTag("UPDATE 1"), nil)
			},
			assertFn: func(t *testing.T, claimed bool, err error) {
				assert.NoError(t, err)
				assert.True(t, claimed)
			},
		},
		{
			name: "already claimed or terminal",
			mockFn: func(client *mock.MockPostgreSQLClient) {
				client.EXPECT().
					Exec(gomock.Any(), query, "w-1").
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
			},
			assertFn: func(t *testing.T, claimed bool, err error) {
				assert.NoError(t, err)
				assert.False(t, claimed)
			},
		},
		{
			name: "error",
			mockFn: func(client *mock.MockPostgreSQLClient) {
				client.EXPECT().
					Exec(gomock.Any(), query, "w-1").
					Return(pgconn.CommandTag{}, errors.New("connection refused"))
			},
			assertFn: func(t *testing.T, claimed bool, err error) {
				assert.Error(t, err)
				assert.False(t, claimed)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockPostgreSQLClient(ctrl)
			tc.mockFn(client)

			repo := NewRepository(client)
			claimed, err := repo.Claim(context.Background(), "w-1")
			tc.assertFn(t, claimed, err)
		})
	}
}

func TestRepository_Settle(t *testing.T) {
	testCases := []struct {
		name     string
		result   domain.Result
		mockFn   func(client *mock.MockPostgreSQLClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name:   "win",
			result: domain.ResultWin,
			mockFn: func(client *mock.MockPostgreSQLClient) {
				client.EXPECT().
					Exec(gomock.Any(), gomock.Any(), "w-1", "WIN").
					Return(pgconn.NewCommandTag("UPDATE 1"), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "not in settling state",
			result: domain.ResultLoss,
			mockFn: func(client *mock.MockPostgreSQLClient) {
				client.EXPECT().
					Exec(gomock.Any(), gomock.Any(), "w-1", "LOSS").
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockPostgreSQLClient(ctrl)
			tc.mockFn(client)

			repo := NewRepository(client)
			err := repo.Settle(context.Background(), "w-1", tc.result)
			tc.assertFn(t, err)
		})
	}
}

func TestRepository_Release(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockPostgreSQLClient(ctrl)
	client.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "w-1").
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	repo := NewRepository(client)
	assert.NoError(t, repo.Release(context.Background(), "w-1"))
}
