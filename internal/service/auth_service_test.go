package service_test

import (
	"context"
	"testing"

	"github.com/inkhaus/backoffice-api/internal/auth"
	"github.com/inkhaus/backoffice-api/internal/config"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"github.com/inkhaus/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthService(t *testing.T) (*service.AuthService, *auth.TokenManager) {
	db := testutil.SetupTestDB(t)

	tokens, err := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret:      "test-secret-for-auth-service",
		AccessTokenTTL: 60,
		PinTokenTTL:    5,
	})
	require.NoError(t, err)

	hasher := auth.NewHasher(4)
	svc := service.NewAuthService(repository.NewUserRepository(db), tokens, hasher, zap.NewNop())
	return svc, tokens
}

func TestAuthService_Login_WithoutPIN(t *testing.T) {
	svc, tokens := setupAuthService(t)

	_, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Email:       "owner@example.com",
		DisplayName: "Owner",
		Password:    "correct-horse",
		Role:        domain.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.False(t, resp.PINRequired)
	assert.Equal(t, "owner@example.com", resp.User.Email)

	// Without a PIN configured the token is immediately a full session
	userCtx, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.True(t, userCtx.PINVerified)
	assert.Equal(t, domain.RoleAdmin, userCtx.Role)
}

func TestAuthService_Login_WithPIN(t *testing.T) {
	svc, tokens := setupAuthService(t)

	created, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Email:       "staff@example.com",
		DisplayName: "Staff",
		Password:    "correct-horse",
		PIN:         "4321",
		Role:        domain.RoleStaff,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "staff@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.True(t, resp.PINRequired)

	userCtx, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.False(t, userCtx.PINVerified)

	// Wrong PIN is rejected
	_, err = svc.VerifyPIN(context.Background(), created.ID, &domain.VerifyPINRequest{PIN: "0000"})
	assert.ErrorIs(t, err, service.ErrInvalidPIN)

	// Correct PIN upgrades the session
	upgraded, err := svc.VerifyPIN(context.Background(), created.ID, &domain.VerifyPINRequest{PIN: "4321"})
	require.NoError(t, err)
	assert.False(t, upgraded.PINRequired)

	userCtx, err = tokens.ValidateToken(upgraded.Token)
	require.NoError(t, err)
	assert.True(t, userCtx.PINVerified)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Email:       "owner@example.com",
		DisplayName: "Owner",
		Password:    "correct-horse",
		Role:        domain.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, _ := setupAuthService(t)

	created, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Email:       "former@example.com",
		DisplayName: "Former employee",
		Password:    "correct-horse",
		Role:        domain.RoleStaff,
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(context.Background(), created.ID, &domain.UpdateUserRequest{
		DisplayName: "Former employee",
		Role:        domain.RoleStaff,
		IsActive:    false,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "former@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, service.ErrUserInactive)
}

func TestAuthService_CreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	req := &domain.CreateUserRequest{
		Email:       "owner@example.com",
		DisplayName: "Owner",
		Password:    "correct-horse",
		Role:        domain.RoleAdmin,
	}
	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestAuthService_ChangePIN(t *testing.T) {
	svc, _ := setupAuthService(t)

	created, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Email:       "staff@example.com",
		DisplayName: "Staff",
		Password:    "correct-horse",
		PIN:         "4321",
		Role:        domain.RoleStaff,
	})
	require.NoError(t, err)

	// Changing the PIN requires the account password
	err = svc.ChangePIN(context.Background(), created.ID, &domain.ChangePINRequest{
		Password: "wrong-password",
		NewPIN:   "9999",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	err = svc.ChangePIN(context.Background(), created.ID, &domain.ChangePINRequest{
		Password: "correct-horse",
		NewPIN:   "9999",
	})
	require.NoError(t, err)

	_, err = svc.VerifyPIN(context.Background(), created.ID, &domain.VerifyPINRequest{PIN: "4321"})
	assert.ErrorIs(t, err, service.ErrInvalidPIN)

	_, err = svc.VerifyPIN(context.Background(), created.ID, &domain.VerifyPINRequest{PIN: "9999"})
	assert.NoError(t, err)
}
