package tick

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/muhammadchandra19/marketsim/internal/domain/tick"
	mock "github.com/muhammadchandra19/marketsim/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRepository_Store(t *testing.T) {
	query := `INSERT INTO ticks (symbol, price, ts)
			  VALUES ($1, $2, $3)`

	testCases := []struct {
		name     string
		tick     *domain.Tick
		mockFn   func(tick *domain.Tick, client *mock.MockPostgreSQLClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			tick: &domain.Tick{
				Symbol:    "SIM",
				Price:     decimal.RequireFromString("100.00000000"),
				Timestamp: time.Now(),
			},
			mockFn: func(tick *domain.Tick, client *mock.MockPostgreSQLClient) {
				client.EXPECT().
					Exec(gomock.Any(), query, tick.Symbol, tick.Price, tick.Timestamp).
					Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			tick: &domain.Tick{
				Symbol:    "SIM",
				Price:     decimal.RequireFromString("100.00000000"),
				Timestamp: time.Now(),
			},
			mockFn: func(tick *domain.Tick, client *mock.MockPostgreSQLClient) {
				client.EXPECT().
					Exec(gomock.Any(), query, tick.Symbol, tick.Price, tick.Timestamp).
					Return(pgconn.CommandTag{}, errors.New("connection refused"))
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
			tc.mockFn(tc.tick, client)

			repo := NewRepository(client)
			err := repo.Store(context.Background(), tc.tick)
			tc.assertFn(t, err)
		})
	}
}

func TestRepository_GetLatestBySymbol(t *testing.T) {
	ts := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		mockFn   func(client *mock.MockPostgreSQLClient, row *mock.MockRow)
		assertFn func(t *testing.T, tick *domain.Tick, err error)
	}{
		{
			name: "success",
			mockFn: func(client *mock.MockPostgreSQLClient, row *mock.MockRow) {
				client.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), "SIM").
					Return(row)
				row.EXPECT().
					Scan(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(dest ...any) error {
						*dest[0].(*string) = "SIM"
						*dest[1].(*decimal.Decimal) = decimal.RequireFromString("101.50000000")
						*dest[2].(*time.Time) = ts
						return nil
					})
			},
			assertFn: func(t *testing.T, tick *domain.Tick, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "SIM", tick.Symbol)
				assert.True(t, tick.Price.Equal(decimal.RequireFromString("101.5")))
				assert.Equal(t, ts, tick.Timestamp)
			},
		},
		{
			name: "no tick yet",
			mockFn: func(client *mock.MockPostgreSQLClient, row *mock.MockRow) {
				client.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), "SIM").
					Return(row)
				row.EXPECT().
					Scan(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pgx.ErrNoRows)
			},
			assertFn: func(t *testing.T, tick *domain.Tick, err error) {
				assert.NoError(t, err)
				assert.Nil(t, tick)
			},
		},
		{
			name: "error",
			mockFn: func(client *mock.MockPostgreSQLClient, row *mock.MockRow) {
				client.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), "SIM").
					Return(row)
				row.EXPECT().
					Scan(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			assertFn: func(t *testing.T, tick *domain.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, tick)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockPostgreSQLClient(ctrl)
			row := mock.NewMockRow(ctrl)
			tc.mockFn(client, row)

			repo := NewRepository(client)
			tick, err := repo.GetLatestBySymbol(context.Background(), "SIM")
			tc.assertFn(t, tick, err)
		})
	}
}

func TestRepository_GetRecentBySymbol(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(client *mock.MockPostgreSQLClient, rows *mock.MockRowsInterface)
		assertFn func(t *testing.T, ticks []*domain.Tick, err error)
	}{
		{
			name: "success",
			mockFn: func(client *mock.MockPostgreSQLClient, rows *mock.MockRowsInterface) {
				client.EXPECT().
					Query(gomock.Any(), gomock.Any(), "SIM", 2).
					Return(rows, nil)

				prices := []string{"103.00000000", "105.00000000"}
				call := 0
				rows.EXPECT().Next().DoAndReturn(func() bool {
					return call < len(prices)
				}).Times(3)
				rows.EXPECT().
					Scan(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(dest ...any) error {
						*dest[0].(*string) = "SIM"
						*dest[1].(*decimal.Decimal) = decimal.RequireFromString(prices[call])
						*dest[2].(*time.Time) = time.Now()
						call++
						return nil
					}).Times(2)
				rows.EXPECT().Err().Return(nil)
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, ticks []*domain.Tick, err error) {
				assert.NoError(t, err)
				assert.Len(t, ticks, 2)
				assert.True(t, ticks[0].Price.Equal(decimal.RequireFromString("103")))
				assert.True(t, ticks[1].Price.Equal(decimal.RequireFromString("105")))
			},
		},
		{
			name: "query error",
			mockFn: func(client *mock.MockPostgreSQLClient, rows *mock.MockRowsInterface) {
				client.EXPECT().
					Query(gomock.Any(), gomock.Any(), "SIM", 2).
					Return(nil, errors.New("connection refused"))
			},
			assertFn: func(t *testing.T, ticks []*domain.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, ticks)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockPostgreSQLClient(ctrl)
			rows := mock.NewMockRowsInterface(ctrl)
			tc.mockFn(client, rows)

			repo := NewRepository(client)
			ticks, err := repo.GetRecentBySymbol(context.Background(), "SIM", 2)
			tc.assertFn(t, ticks, err)
		})
	}
}
