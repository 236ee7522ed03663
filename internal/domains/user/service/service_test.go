package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"asteria/config"
	"asteria/infras/otel/mocks"
	userMocks "asteria/internal/domains/user/mocks"
	"asteria/internal/domains/user/model"
	"asteria/internal/domains/user/model/dto"
	"asteria/internal/domains/user/service"
	cacheMocks "asteria/shared/cache/mocks"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
	"asteria/shared/password"
)

type fixture struct {
	repo    *userMocks.MockUser
	cache   *cacheMocks.MockRedisCache
	service service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return fixture{
		repo:    mockRepo,
		cache:   mockCache,
		service: service.New(mockRepo, cfg, mockCache, mocks.NewOtel()),
	}
}

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{
		FullName: "Test Admin",
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     constant.RoleAdmin,
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful creation hashes the password",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.NotEqual(t, "supersecret", user.Password)
						assert.NoError(t, password.Verify("supersecret", user.Password))

						return nil
					})

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Create(context.Background(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{{ID: "test-id", Email: "admin@example.com", Role: constant.RoleAdmin}}, nil)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := f.service.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Users, 1)
}

func TestUserService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "cache miss, found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "test-id", Email: "admin@example.com"}, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.service.Get(context.Background(), "test-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func(f fixture)
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func(f fixture) {},
			wantErr:   true,
		},
		{
			name: "not found",
			req:  dto.UpdateUserRequest{FullName: "Renamed"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "email already taken by another user",
			req:  dto.UpdateUserRequest{Email: "taken@example.com"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
			wantMsg: "email already exists",
		},
		{
			name: "demoting the last admin is rejected",
			req:  dto.UpdateUserRequest{Role: constant.RoleUser},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					UpdateGuarded(gomock.Any(), gomock.Any(), "test-id").
					Return(false, nil)
			},
			wantErr: true,
			wantMsg: "cannot demote the last admin",
		},
		{
			name: "successful update",
			req:  dto.UpdateUserRequest{FullName: "Renamed"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					UpdateGuarded(gomock.Any(), gomock.Any(), "test-id").
					Return(true, nil)

				f.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Update(context.Background(), tt.req, "test-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	admin := model.User{ID: "test-id", Email: "admin@example.com", Role: constant.RoleAdmin}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
		wantMsg   string
	}{
		{
			name: "successful delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(admin, nil)

				f.repo.EXPECT().
					DeleteGuarded(gomock.Any(), "test-id").
					Return(true, nil)

				f.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "deleting the last admin is rejected",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(admin, nil)

				f.repo.EXPECT().
					DeleteGuarded(gomock.Any(), "test-id").
					Return(false, nil)
			},
			wantErr: true,
			wantMsg: "cannot delete the last admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Delete(context.Background(), "test-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
