package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dwell/config"
	"dwell/infras/jwt"
	jwtMocks "dwell/infras/jwt/mocks"
	"dwell/infras/otel/mocks"
	"dwell/internal/domains/auth/model/dto"
	"dwell/internal/domains/auth/service"
	userMocks "dwell/internal/domains/user/mocks"
	userModel "dwell/internal/domains/user/model"
	"dwell/permissions"
	"dwell/shared/constant"
	"dwell/shared/password"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	req := dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "supersecret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	t.Run("successful registration creates a student", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RoleStudent, user.Role)
				assert.True(t, user.Active)
				assert.NotEqual(t, "supersecret", user.Password)

				return nil
			})

		assert.NoError(t, svc.Register(context.Background(), req))
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Register(context.Background(), req)
		assert.EqualError(t, err, "email already registered")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	hashed, err := password.Hash("supersecret")
	assert.NoError(t, err)

	user := userModel.User{
		ID:       "user-id",
		Email:    "user@example.com",
		Password: hashed,
		Role:     constant.RoleStudent,
		Active:   true,
	}

	req := dto.LoginRequest{Email: "user@example.com", Password: "supersecret"}

	t.Run("successful login", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		mockJWT.EXPECT().
			GenerateTokenPair("user-id", "user@example.com", constant.RoleStudent).
			Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil)

		res, err := svc.Login(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, "refresh", res.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("unknown email", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), req)
		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("deactivated account", func(t *testing.T) {
		inactive := user
		inactive.Active = false

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		_, err := svc.Login(context.Background(), req)
		assert.EqualError(t, err, "user account is deactivated")
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	t.Run("successful refresh", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 900}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})
		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("bad-token").
			Return(nil, errors.New("token expired"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-token"})
		assert.EqualError(t, err, "invalid refresh token")
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	hashed, err := password.Hash("oldsecret")
	assert.NoError(t, err)

	user := userModel.User{ID: "user-id", Email: "user@example.com", Password: hashed, Active: true}
	actor := permissions.Identity{UserID: "user-id", Email: "user@example.com", Role: constant.RoleStudent, Authenticated: true}

	t.Run("successful change", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		req := dto.ChangePasswordRequest{CurrentPassword: "oldsecret", NewPassword: "newsecret123"}
		assert.NoError(t, svc.ChangePassword(context.Background(), actor, req))
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		req := dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newsecret123"}
		err := svc.ChangePassword(context.Background(), actor, req)
		assert.EqualError(t, err, "current password is incorrect")
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		req := dto.ChangePasswordRequest{CurrentPassword: "oldsecret", NewPassword: "newsecret123"}
		err := svc.ChangePassword(context.Background(), permissions.Anonymous(), req)
		assert.Error(t, err)
	})
}
