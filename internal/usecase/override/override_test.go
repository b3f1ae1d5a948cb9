package override

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	instrumentmock "github.com/muhammadchandra19/marketsim/internal/domain/instrument/mock"
	"github.com/muhammadchandra19/marketsim/internal/domain/override"
	overridemock "github.com/muhammadchandra19/marketsim/internal/domain/override/mock"
	loggermock "github.com/muhammadchandra19/marketsim/pkg/logger/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestUsecase_Record(t *testing.T) {
	sim := &instrument.Instrument{ID: "ins-1", Symbol: "SIM"}
	value := decimal.RequireFromString("123.45000000")

	testCases := []struct {
		name     string
		at       func(now time.Time) time.Time
		mockFn   func(repo *overridemock.MockRepository, instruments *instrumentmock.MockRepository, lg *loggermock.MockInterface)
		assertFn func(t *testing.T, o *override.Override, err error)
	}{
		{
			name: "recent past is accepted",
			at: func(now time.Time) time.Time {
				return now.Add(-time.Hour)
			},
			mockFn: func(repo *overridemock.MockRepository, instruments *instrumentmock.MockRepository, lg *loggermock.MockInterface) {
				instruments.EXPECT().GetBySymbol(gomock.Any(), "SIM").Return(sim, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				lg.EXPECT().InfoContext(gomock.Any(), "manual override recorded", gomock.Any())
			},
			assertFn: func(t *testing.T, o *override.Override, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, o.ID)
				assert.True(t, o.Value.Equal(value))
			},
		},
		{
			name: "slightly ahead of now is accepted",
			at: func(now time.Time) time.Time {
				return now.Add(30 * time.Second)
			},
			mockFn: func(repo *overridemock.MockRepository, instruments *instrumentmock.MockRepository, lg *loggermock.MockInterface) {
				instruments.EXPECT().GetBySymbol(gomock.Any(), "SIM").Return(sim, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				lg.EXPECT().InfoContext(gomock.Any(), "manual override recorded", gomock.Any())
			},
			assertFn: func(t *testing.T, o *override.Override, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "older than a day is rejected",
			at: func(now time.Time) time.Time {
				return now.Add(-25 * time.Hour)
			},
			mockFn: func(repo *overridemock.MockRepository, instruments *instrumentmock.MockRepository, lg *loggermock.MockInterface) {
				instruments.EXPECT().GetBySymbol(gomock.Any(), "SIM").Return(sim, nil)
			},
			assertFn: func(t *testing.T, o *override.Override, err error) {
				assert.Error(t, err)
				assert.Nil(t, o)
				assert.Contains(t, err.Error(), "outside accepted window")
			},
		},
		{
			name: "too far in the future is rejected",
			at: func(now time.Time) time.Time {
				return now.Add(5 * time.Minute)
			},
			mockFn: func(repo *overridemock.MockRepository, instruments *instrumentmock.MockRepository, lg *loggermock.MockInterface) {
				instruments.EXPECT().GetBySymbol(gomock.Any(), "SIM").Return(sim, nil)
			},
			assertFn: func(t *testing.T, o *override.Override, err error) {
				assert.Error(t, err)
				assert.Nil(t, o)
			},
		},
		{
			name: "unknown instrument is rejected",
			at: func(now time.Time) time.Time {
				return now
			},
			mockFn: func(repo *overridemock.MockRepository, instruments *instrumentmock.MockRepository, lg *loggermock.MockInterface) {
				instruments.EXPECT().GetBySymbol(gomock.Any(), "SIM").Return(nil, nil)
			},
			assertFn: func(t *testing.T, o *override.Override, err error) {
				assert.Error(t, err)
				assert.Nil(t, o)
				assert.Contains(t, err.Error(), "unknown instrument")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := overridemock.NewMockRepository(ctrl)
			instruments := instrumentmock.NewMockRepository(ctrl)
			lg := loggermock.NewMockInterface(ctrl)
			tc.mockFn(repo, instruments, lg)

			uc := NewUsecase(repo, instruments, lg, Config{})
			o, err := uc.Record(context.Background(), "SIM", tc.at(time.Now().UTC()), value)
			tc.assertFn(t, o, err)
		})
	}
}

func TestUsecase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := overridemock.NewMockRepository(ctrl)
	instruments := instrumentmock.NewMockRepository(ctrl)
	lg := loggermock.NewMockInterface(ctrl)

	repo.EXPECT().
		ListBySymbol(gomock.Any(), "SIM", 10).
		Return([]*override.Override{{ID: "ov-1", Symbol: "SIM"}}, nil)

	uc := NewUsecase(repo, instruments, lg, Config{})
	out, err := uc.List(context.Background(), "SIM", 10)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}
