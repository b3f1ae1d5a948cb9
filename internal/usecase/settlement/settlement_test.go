package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	accountmock "github.com/muhammadchandra19/marketsim/internal/domain/account/mock"
	"github.com/muhammadchandra19/marketsim/internal/domain/tick"
	tickmock "github.com/muhammadchandra19/marketsim/internal/domain/tick/mock"
	"github.com/muhammadchandra19/marketsim/internal/domain/wager"
	wagermock "github.com/muhammadchandra19/marketsim/internal/domain/wager/mock"
	loggermock "github.com/muhammadchandra19/marketsim/pkg/logger/mock"
	pgmock "github.com/muhammadchandra19/marketsim/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type settlementMocks struct {
	client   *pgmock.MockPostgreSQLClient
	tx       *pgmock.MockTx
	wagers   *wagermock.MockRepository
	accounts *accountmock.MockRepository
	ticks    *tickmock.MockRepository
	logger   *loggermock.MockInterface
}

func newWager(direction wager.Direction, entry string) *wager.Wager {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &wager.Wager{
		ID:         "w-1",
		AccountID:  "acc-1",
		Symbol:     "SIM",
		Amount:     decimal.RequireFromString("100.00000000"),
		Direction:  direction,
		EntryPrice: decimal.RequireFromString(entry),
		Timeframe:  time.Minute,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Minute),
		Result:     wager.ResultPending,
	}
}

func latestTick(price string) *tick.Tick {
	return &tick.Tick{
		Symbol:    "SIM",
		Price:     decimal.RequireFromString(price),
		Timestamp: time.Now(),
	}
}

func TestUsecase_SettleOne(t *testing.T) {
	testCases := []struct {
		name     string
		wager    *wager.Wager
		mockFn   func(m settlementMocks)
		assertFn func(t *testing.T, err error)
	}{
		{
			name:  "claim lost is a silent no-op",
			wager: newWager(wager.DirectionUp, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(false, nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "claim error",
			wager: newWager(wager.DirectionUp, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(false, errors.New("connection refused"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name:  "no tick yet releases the claim",
			wager: newWager(wager.DirectionUp, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(true, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(nil, nil)
				m.wagers.EXPECT().Release(gomock.Any(), "w-1").Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "price read failure releases the claim and fails",
			wager: newWager(wager.DirectionUp, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(true, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(nil, errors.New("connection refused"))
				m.wagers.EXPECT().Release(gomock.Any(), "w-1").Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name:  "up wager above entry wins double the stake",
			wager: newWager(wager.DirectionUp, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(true, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(latestTick("105"), nil)

				m.client.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.accounts.EXPECT().
					Credit(gomock.Any(), "acc-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal) error {
						assert.True(t, amount.Equal(decimal.RequireFromString("200.00000000")))
						return nil
					})
				m.wagers.EXPECT().Settle(gomock.Any(), "w-1", wager.ResultWin).Return(nil)
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

				m.logger.EXPECT().InfoContext(gomock.Any(), "wager settled", gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "down wager below entry wins",
			wager: newWager(wager.DirectionDown, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(true, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(latestTick("95"), nil)

				m.client.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.accounts.EXPECT().Credit(gomock.Any(), "acc-1", gomock.Any()).Return(nil)
				m.wagers.EXPECT().Settle(gomock.Any(), "w-1", wager.ResultWin).Return(nil)
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

				m.logger.EXPECT().InfoContext(gomock.Any(), "wager settled", gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "unchanged price loses",
			wager: newWager(wager.DirectionUp, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(true, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(latestTick("100"), nil)
				m.wagers.EXPECT().Settle(gomock.Any(), "w-1", wager.ResultLoss).Return(nil)

				m.logger.EXPECT().InfoContext(gomock.Any(), "wager settled", gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "down wager above entry loses",
			wager: newWager(wager.DirectionDown, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(true, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(latestTick("104"), nil)
				m.wagers.EXPECT().Settle(gomock.Any(), "w-1", wager.ResultLoss).Return(nil)

				m.logger.EXPECT().InfoContext(gomock.Any(), "wager settled", gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "credit failure rolls the payout back",
			wager: newWager(wager.DirectionUp, "100"),
			mockFn: func(m settlementMocks) {
				m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(true, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(latestTick("105"), nil)

				m.client.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.accounts.EXPECT().
					Credit(gomock.Any(), "acc-1", gomock.Any()).
					Return(errors.New("connection refused"))
				m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
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

			m := settlementMocks{
				client:   pgmock.NewMockPostgreSQLClient(ctrl),
				tx:       pgmock.NewMockTx(ctrl),
				wagers:   wagermock.NewMockRepository(ctrl),
				accounts: accountmock.NewMockRepository(ctrl),
				ticks:    tickmock.NewMockRepository(ctrl),
				logger:   loggermock.NewMockInterface(ctrl),
			}
			tc.mockFn(m)

			uc := NewUsecase(m.client, m.wagers, m.accounts, m.ticks, m.logger, Config{})
			err := uc.SettleOne(context.Background(), tc.wager)
			tc.assertFn(t, err)
		})
	}
}

func TestUsecase_Sweep(t *testing.T) {
	t.Run("settles the expired batch and skips failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := settlementMocks{
			client:   pgmock.NewMockPostgreSQLClient(ctrl),
			wagers:   wagermock.NewMockRepository(ctrl),
			accounts: accountmock.NewMockRepository(ctrl),
			ticks:    tickmock.NewMockRepository(ctrl),
			logger:   loggermock.NewMockInterface(ctrl),
		}

		now := time.Now().UTC()

		first := newWager(wager.DirectionUp, "100")
		second := newWager(wager.DirectionUp, "100")
		second.ID = "w-2"

		m.wagers.EXPECT().
			PendingExpired(gomock.Any(), now, 100).
			Return([]*wager.Wager{first, second}, nil)

		// The first loses the claim race, the second fails outright. The
		// sweep itself still succeeds.
		m.wagers.EXPECT().Claim(gomock.Any(), "w-1").Return(false, nil)
		m.wagers.EXPECT().Claim(gomock.Any(), "w-2").Return(false, errors.New("connection refused"))
		m.logger.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())

		uc := NewUsecase(m.client, m.wagers, m.accounts, m.ticks, m.logger, Config{})
		assert.NoError(t, uc.Sweep(context.Background(), now))
	})

	t.Run("listing failure fails the sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := settlementMocks{
			client:   pgmock.NewMockPostgreSQLClient(ctrl),
			wagers:   wagermock.NewMockRepository(ctrl),
			accounts: accountmock.NewMockRepository(ctrl),
			ticks:    tickmock.NewMockRepository(ctrl),
			logger:   loggermock.NewMockInterface(ctrl),
		}

		now := time.Now().UTC()
		m.wagers.EXPECT().
			PendingExpired(gomock.Any(), now, 100).
			Return(nil, errors.New("connection refused"))

		uc := NewUsecase(m.client, m.wagers, m.accounts, m.ticks, m.logger, Config{})
		assert.Error(t, uc.Sweep(context.Background(), now))
	})
}
