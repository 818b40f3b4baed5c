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
	customerMocks "arcade/internal/domains/customer/mocks"
	"arcade/internal/domains/customer/model"
	"arcade/internal/domains/customer/model/dto"
	"arcade/internal/domains/customer/service"
	cacheMocks "arcade/shared/cache/mocks"
	"arcade/shared/failure"
)

func newService(ctrl *gomock.Controller) (service.Customer, *customerMocks.MockCustomer, *cacheMocks.MockRedisCache) {
	mockRepo := customerMocks.NewMockCustomer(ctrl)
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

func TestCustomerService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateCustomerRequest
		setupMock func(repo *customerMocks.MockCustomer)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "success",
			req:  dto.CreateCustomerRequest{Name: "Alice", Phone: "+628111111111", Discount: 10},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, customer model.Customer) error {
						assert.NotEmpty(t, customer.ID)
						assert.Equal(t, "+628111111111", customer.Phone)
						assert.Equal(t, 10, customer.Discount)

						return nil
					})
			},
		},
		{
			name: "duplicate phone",
			req:  dto.CreateCustomerRequest{Name: "Alice", Phone: "+628111111111"},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository failure",
			req:  dto.CreateCustomerRequest{Name: "Alice", Phone: "+628111111111"},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

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
				require.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCustomerService_Get(t *testing.T) {
	const customerID = "3c7b0f7a-2f6e-4f87-b7e4-3f2d9a4c5e10"

	tests := []struct {
		name      string
		setupMock func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cache miss falls through to the repository",
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{ID: customerID, Name: "Alice", Phone: "+628111111111", Hours: 12}, nil)
			},
		},
		{
			name: "unknown id",
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil)
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

			res, err := svc.Get(context.Background(), customerID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, customerID, res.ID)
			assert.Equal(t, 12, res.Hours)
		})
	}
}

func TestCustomerService_GetByPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newService(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Customer{ID: "customer-1", Phone: "+628111111111"}, nil)

	res, err := svc.GetByPhone(context.Background(), "+628111111111")
	require.NoError(t, err)
	assert.Equal(t, "customer-1", res.ID)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Customer{}, nil)

	_, err = svc.GetByPhone(context.Background(), "+628999999999")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestCustomerService_Update(t *testing.T) {
	const customerID = "3c7b0f7a-2f6e-4f87-b7e4-3f2d9a4c5e10"

	discount := 15

	tests := []struct {
		name      string
		setupMock func(repo *customerMocks.MockCustomer)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(repo *customerMocks.MockCustomer) {
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
			setupMock: func(repo *customerMocks.MockCustomer) {
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

			err := svc.Update(context.Background(), dto.UpdateCustomerRequest{Discount: &discount}, customerID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCustomerService_Delete(t *testing.T) {
	const customerID = "3c7b0f7a-2f6e-4f87-b7e4-3f2d9a4c5e10"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newService(ctrl)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil)

	require.NoError(t, svc.Delete(context.Background(), customerID))

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	err := svc.Delete(context.Background(), customerID)
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
