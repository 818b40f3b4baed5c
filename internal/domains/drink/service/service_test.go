package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"arcade/config"
	"arcade/infras/otel/mocks"
	drinkMocks "arcade/internal/domains/drink/mocks"
	"arcade/internal/domains/drink/model"
	"arcade/internal/domains/drink/model/dto"
	"arcade/internal/domains/drink/service"
	cacheMocks "arcade/shared/cache/mocks"
	gDto "arcade/shared/dto"
	"arcade/shared/failure"
)

func newService(ctrl *gomock.Controller) (service.Drink, *drinkMocks.MockDrink, *cacheMocks.MockRedisCache) {
	mockRepo := drinkMocks.NewMockDrink(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache invalidation and saves run on goroutines that may outlive the call.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestDrinkService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateDrinkRequest
		setupMock func(repo *drinkMocks.MockDrink)
		wantErr   bool
	}{
		{
			name: "success",
			req:  dto.CreateDrinkRequest{Name: "Cola", Price: 5},
			setupMock: func(repo *drinkMocks.MockDrink) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, drink model.Drink) error {
						assert.NotEmpty(t, drink.ID)
						assert.Equal(t, "Cola", drink.Name)
						assert.Equal(t, 5, drink.Price)

						return nil
					})
			},
		},
		{
			name: "repository failure",
			req:  dto.CreateDrinkRequest{Name: "Cola", Price: 5},
			setupMock: func(repo *drinkMocks.MockDrink) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDrinkService_Get(t *testing.T) {
	const drinkID = "9f4f1c1a-5b2f-4a94-9c2f-0d1f4f6b7a01"

	tests := []struct {
		name      string
		setupMock func(repo *drinkMocks.MockDrink, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cache miss falls through to the repository",
			setupMock: func(repo *drinkMocks.MockDrink, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Drink{ID: drinkID, Name: "Cola", Price: 5}, nil)
			},
		},
		{
			name: "cache hit skips the repository",
			setupMock: func(repo *drinkMocks.MockDrink, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.DrinkResponse)
						require.True(t, ok)
						res.ID = drinkID
						res.Name = "Cola"

						return nil
					})
			},
		},
		{
			name: "unknown id",
			setupMock: func(repo *drinkMocks.MockDrink, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Drink{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockCache := newService(ctrl)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Get(context.Background(), drinkID)

			if tt.wantErr {
				require.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, drinkID, res.ID)
			assert.Equal(t, "Cola", res.Name)
		})
	}
}

func TestDrinkService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newService(ctrl)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Drink{
			{ID: "d-1", Name: "Cola", Price: 5},
			{ID: "d-2", Name: "Water", Price: 2},
		}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Len(t, res.Drinks, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
}

func TestDrinkService_Update(t *testing.T) {
	const drinkID = "9f4f1c1a-5b2f-4a94-9c2f-0d1f4f6b7a01"

	price := 7

	tests := []struct {
		name      string
		setupMock func(repo *drinkMocks.MockDrink)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(repo *drinkMocks.MockDrink) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown id",
			setupMock: func(repo *drinkMocks.MockDrink) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Update(context.Background(), dto.UpdateDrinkRequest{Name: "Cola Zero", Price: &price}, drinkID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDrinkService_Delete(t *testing.T) {
	const drinkID = "9f4f1c1a-5b2f-4a94-9c2f-0d1f4f6b7a01"

	tests := []struct {
		name      string
		setupMock func(repo *drinkMocks.MockDrink)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(repo *drinkMocks.MockDrink) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown id",
			setupMock: func(repo *drinkMocks.MockDrink) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Delete(context.Background(), drinkID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
