package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"asteria/config"
	"asteria/infras/jwt"
	"asteria/infras/otel/mocks"
	"asteria/internal/domains/auth/model/dto"
	"asteria/internal/domains/auth/service"
	userMocks "asteria/internal/domains/user/mocks"
	userModel "asteria/internal/domains/user/model"
	"asteria/shared/constant"
	"asteria/shared/password"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 10080

	return cfg
}

func newService(t *testing.T) (service.Auth, *userMocks.MockUser) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)

	cfg := testConfig()

	return service.New(mockRepo, cfg, mocks.NewOtel(), jwt.New(cfg)), mockRepo
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		FullName: "Test User",
		Email:    "user@example.com",
		Password: "supersecret",
	}

	t.Run("successful registration creates a regular user", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RoleUser, user.Role)
				assert.NoError(t, password.Verify("supersecret", user.Password))

				return nil
			})

		assert.NoError(t, svc.Register(context.Background(), req))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		assert.Error(t, svc.Register(context.Background(), req))
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("supersecret")
	assert.NoError(t, err)

	stored := userModel.User{
		ID:       "test-id",
		FullName: "Test User",
		Email:    "user@example.com",
		Password: hashed,
		Role:     constant.RoleAdmin,
	}

	t.Run("successful login returns tokens and the user", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "user@example.com",
			Password: "supersecret",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Equal(t, constant.RoleAdmin, res.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "user@example.com",
			Password: "wrong-password",
		})

		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "supersecret",
		})

		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, errors.New("database error"))

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "user@example.com",
			Password: "supersecret",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		svc, mockRepo := newService(t)

		hashed, err := password.Hash("supersecret")
		assert.NoError(t, err)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{
				ID:       "test-id",
				Email:    "user@example.com",
				Password: hashed,
				Role:     constant.RoleUser,
			}, nil)

		login, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "user@example.com",
			Password: "supersecret",
		})
		assert.NoError(t, err)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: login.RefreshToken,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "not-a-token",
		})

		assert.EqualError(t, err, "invalid refresh token")
	})
}
