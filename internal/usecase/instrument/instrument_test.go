package instrument

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadchandra19/marketsim/internal/domain/instrument"
	instrumentmock "github.com/muhammadchandra19/marketsim/internal/domain/instrument/mock"
	loggermock "github.com/muhammadchandra19/marketsim/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestUsecase_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := instrumentmock.NewMockRepository(ctrl)
		lg := loggermock.NewMockInterface(ctrl)

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ins *instrument.Instrument) error {
				assert.Equal(t, "SIM", ins.Symbol)
				assert.NotEmpty(t, ins.ID)
				return nil
			})
		lg.EXPECT().InfoContext(gomock.Any(), "instrument created", gomock.Any())

		uc := NewUsecase(repo, lg)
		ins, err := uc.Create(context.Background(), "SIM", "Simulated Coin")
		assert.NoError(t, err)
		assert.Equal(t, "Simulated Coin", ins.Name)
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := instrumentmock.NewMockRepository(ctrl)
		lg := loggermock.NewMockInterface(ctrl)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("duplicate key"))

		uc := NewUsecase(repo, lg)
		ins, err := uc.Create(context.Background(), "SIM", "Simulated Coin")
		assert.Error(t, err)
		assert.Nil(t, ins)
	})
}

func TestUsecase_Ensure(t *testing.T) {
	t.Run("creates the instrument when missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := instrumentmock.NewMockRepository(ctrl)
		lg := loggermock.NewMockInterface(ctrl)

		repo.EXPECT().GetBySymbol(gomock.Any(), "BTC-USD").Return(nil, nil)
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ins *instrument.Instrument) error {
				assert.Equal(t, "BTC-USD", ins.Symbol)
				return nil
			})
		lg.EXPECT().InfoContext(gomock.Any(), "instrument created", gomock.Any())

		uc := NewUsecase(repo, lg)
		ins, err := uc.Ensure(context.Background(), "BTC-USD", "Bitcoin / US Dollar")
		assert.NoError(t, err)
		assert.Equal(t, "BTC-USD", ins.Symbol)
	})

	t.Run("returns the existing instrument untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := instrumentmock.NewMockRepository(ctrl)
		lg := loggermock.NewMockInterface(ctrl)

		existing := &instrument.Instrument{ID: "ins-1", Symbol: "BTC-USD"}
		repo.EXPECT().GetBySymbol(gomock.Any(), "BTC-USD").Return(existing, nil)

		uc := NewUsecase(repo, lg)
		ins, err := uc.Ensure(context.Background(), "BTC-USD", "Bitcoin / US Dollar")
		assert.NoError(t, err)
		assert.Equal(t, existing, ins)
	})
}

func TestUsecase_GetBySymbol(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := instrumentmock.NewMockRepository(ctrl)
	lg := loggermock.NewMockInterface(ctrl)

	repo.EXPECT().GetBySymbol(gomock.Any(), "NOPE").Return(nil, nil)

	uc := NewUsecase(repo, lg)
	ins, err := uc.GetBySymbol(context.Background(), "NOPE")
	assert.NoError(t, err)
	assert.Nil(t, ins)
}
