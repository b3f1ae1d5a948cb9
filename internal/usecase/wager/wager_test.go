package wager

import (
	"context"
	"errors"
	"testing"
	"time"

	accountmock "github.com/muhammadchandra19/marketsim/internal/domain/account/mock"
	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	instrumentmock "github.com/muhammadchandra19/marketsim/internal/domain/instrument/mock"
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

type wagerMocks struct {
	client      *pgmock.MockPostgreSQLClient
	tx          *pgmock.MockTx
	wagers      *wagermock.MockRepository
	accounts    *accountmock.MockRepository
	instruments *instrumentmock.MockRepository
	ticks       *tickmock.MockRepository
	logger      *loggermock.MockInterface
}

func validRequest() PlaceRequest {
	return PlaceRequest{
		AccountID: "acc-1",
		Symbol:    "SIM",
		Amount:    decimal.RequireFromString("50.00000000"),
		Direction: wager.DirectionUp,
		Timeframe: time.Minute,
	}
}

func TestUsecase_Place(t *testing.T) {
	entryPrice := decimal.RequireFromString("101.23456789")

	testCases := []struct {
		name     string
		request  func() PlaceRequest
		mockFn   func(m wagerMocks)
		assertFn func(t *testing.T, w *wager.Wager, err error)
	}{
		{
			name: "zero amount is rejected",
			request: func() PlaceRequest {
				req := validRequest()
				req.Amount = decimal.Zero
				return req
			},
			mockFn: func(m wagerMocks) {},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.Error(t, err)
				assert.Nil(t, w)
				assert.Contains(t, err.Error(), "greater than zero")
			},
		},
		{
			name: "negative amount is rejected",
			request: func() PlaceRequest {
				req := validRequest()
				req.Amount = decimal.RequireFromString("-10")
				return req
			},
			mockFn: func(m wagerMocks) {},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.Error(t, err)
				assert.Nil(t, w)
			},
		},
		{
			name: "unknown direction is rejected",
			request: func() PlaceRequest {
				req := validRequest()
				req.Direction = wager.Direction("SIDEWAYS")
				return req
			},
			mockFn: func(m wagerMocks) {},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.Error(t, err)
				assert.Nil(t, w)
				assert.Contains(t, err.Error(), "UP or DOWN")
			},
		},
		{
			name:    "unknown instrument is rejected",
			request: validRequest,
			mockFn: func(m wagerMocks) {
				m.instruments.EXPECT().GetBySymbol(gomock.Any(), "SIM").Return(nil, nil)
			},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.Error(t, err)
				assert.Nil(t, w)
				assert.Contains(t, err.Error(), "unknown instrument")
			},
		},
		{
			name:    "no recorded price is rejected",
			request: validRequest,
			mockFn: func(m wagerMocks) {
				m.instruments.EXPECT().
					GetBySymbol(gomock.Any(), "SIM").
					Return(&instrument.Instrument{ID: "ins-1", Symbol: "SIM"}, nil)
				m.ticks.EXPECT().GetLatestBySymbol(gomock.Any(), "SIM").Return(nil, nil)
			},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.Error(t, err)
				assert.Nil(t, w)
				assert.Contains(t, err.Error(), "no price recorded")
			},
		},
		{
			name:    "insufficient funds rolls back and leaves no wager",
			request: validRequest,
			mockFn: func(m wagerMocks) {
				m.instruments.EXPECT().
					GetBySymbol(gomock.Any(), "SIM").
					Return(&instrument.Instrument{ID: "ins-1", Symbol: "SIM"}, nil)
				m.ticks.EXPECT().
					GetLatestBySymbol(gomock.Any(), "SIM").
					Return(&tick.Tick{Symbol: "SIM", Price: entryPrice, Timestamp: time.Now()}, nil)

				m.client.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.accounts.EXPECT().
					Debit(gomock.Any(), "acc-1", gomock.Any()).
					Return(false, nil)
				m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.Error(t, err)
				assert.Nil(t, w)
				assert.Contains(t, err.Error(), "balance too low")
			},
		},
		{
			name:    "debit and insert commit together",
			request: validRequest,
			mockFn: func(m wagerMocks) {
				m.instruments.EXPECT().
					GetBySymbol(gomock.Any(), "SIM").
					Return(&instrument.Instrument{ID: "ins-1", Symbol: "SIM"}, nil)
				m.ticks.EXPECT().
					GetLatestBySymbol(gomock.Any(), "SIM").
					Return(&tick.Tick{Symbol: "SIM", Price: entryPrice, Timestamp: time.Now()}, nil)

				m.client.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.accounts.EXPECT().
					Debit(gomock.Any(), "acc-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal) (bool, error) {
						assert.True(t, amount.Equal(decimal.RequireFromString("50")))
						return true, nil
					})
				m.wagers.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

				m.logger.EXPECT().InfoContext(gomock.Any(), "wager placed", gomock.Any())
			},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, w.ID)
				assert.Equal(t, "acc-1", w.AccountID)
				assert.Equal(t, wager.ResultPending, w.Result)
				assert.True(t, w.EntryPrice.Equal(entryPrice))
				assert.Equal(t, w.CreatedAt.Add(time.Minute), w.ExpiresAt)
			},
		},
		{
			name:    "insert failure rolls the debit back",
			request: validRequest,
			mockFn: func(m wagerMocks) {
				m.instruments.EXPECT().
					GetBySymbol(gomock.Any(), "SIM").
					Return(&instrument.Instrument{ID: "ins-1", Symbol: "SIM"}, nil)
				m.ticks.EXPECT().
					GetLatestBySymbol(gomock.Any(), "SIM").
					Return(&tick.Tick{Symbol: "SIM", Price: entryPrice, Timestamp: time.Now()}, nil)

				m.client.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.accounts.EXPECT().Debit(gomock.Any(), "acc-1", gomock.Any()).Return(true, nil)
				m.wagers.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
				m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, w *wager.Wager, err error) {
				assert.Error(t, err)
				assert.Nil(t, w)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := wagerMocks{
				client:      pgmock.NewMockPostgreSQLClient(ctrl),
				tx:          pgmock.NewMockTx(ctrl),
				wagers:      wagermock.NewMockRepository(ctrl),
				accounts:    accountmock.NewMockRepository(ctrl),
				instruments: instrumentmock.NewMockRepository(ctrl),
				ticks:       tickmock.NewMockRepository(ctrl),
				logger:      loggermock.NewMockInterface(ctrl),
			}
			tc.mockFn(m)

			uc := NewUsecase(m.client, m.wagers, m.accounts, m.instruments, m.ticks, m.logger)
			w, err := uc.Place(context.Background(), tc.request())
			tc.assertFn(t, w, err)
		})
	}
}

func TestUsecase_ListByAccount(t *testing.T) {
	t.Run("settling reads as pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		wagers := wagermock.NewMockRepository(ctrl)
		wagers.EXPECT().
			ListByAccount(gomock.Any(), "acc-1", 10).
			Return([]*wager.Wager{
				{ID: "w-1", Result: wager.ResultSettling},
				{ID: "w-2", Result: wager.ResultWin},
			}, nil)

		uc := NewUsecase(nil, wagers, nil, nil, nil, nil)
		out, err := uc.ListByAccount(context.Background(), "acc-1", 10)
		assert.NoError(t, err)
		assert.Equal(t, wager.ResultPending, out[0].Result)
		assert.Equal(t, wager.ResultWin, out[1].Result)
	})
}
