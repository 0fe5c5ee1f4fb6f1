package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/auth"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
	hasher   *auth.Hasher
	logger   *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	tokens *auth.TokenManager,
	hasher *auth.Hasher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger,
	}
}

// Login verifies email and password. When the user has a PIN configured the
// returned token is a short-lived one that only /auth/verify-pin accepts;
// otherwise a full session token is issued directly.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a hash comparison so missing and wrong-password logins
			// take comparable time.
			s.hasher.Verify("$2a$12$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva", req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.logger.Warn("login failed", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	pinRequired := user.PINHash != ""
	token, err := s.tokens.IssueToken(user, !pinRequired)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if !pinRequired {
		if err := s.userRepo.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
			s.logger.Warn("failed to record last login", zap.Error(err))
		}
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.Bool("pin_required", pinRequired),
	)

	dto := mapper.ToUserDTO(user)
	return &domain.LoginResponse{
		Token:       token,
		PINRequired: pinRequired,
		User:        dto,
	}, nil
}

// VerifyPIN upgrades a password-only session to a full one
func (s *AuthService) VerifyPIN(ctx context.Context, userID uuid.UUID, req *domain.VerifyPINRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PINHash == "" || !s.hasher.Verify(user.PINHash, req.PIN) {
		s.logger.Warn("pin verification failed", zap.String("user_id", userID.String()))
		return nil, ErrInvalidPIN
	}

	token, err := s.tokens.IssueToken(user, true)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("failed to record last login", zap.Error(err))
	}

	dto := mapper.ToUserDTO(user)
	return &domain.LoginResponse{
		Token:       token,
		PINRequired: false,
		User:        dto,
	}, nil
}

// ChangePIN sets a new PIN after re-verifying the password
func (s *AuthService) ChangePIN(ctx context.Context, userID uuid.UUID, req *domain.ChangePINRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return ErrInvalidCredentials
	}

	pinHash, err := s.hasher.Hash(req.NewPIN)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}

	user.PINHash = pinHash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("pin changed", zap.String("user_id", userID.String()))
	return nil
}

// CreateUser provisions a new back-office user
func (s *AuthService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserDTO, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: passwordHash,
		Role:         req.Role,
		IsActive:     true,
	}

	if req.PIN != "" {
		pinHash, err := s.hasher.Hash(req.PIN)
		if err != nil {
			return nil, fmt.Errorf("failed to hash pin: %w", err)
		}
		user.PINHash = pinHash
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// UpdateUser changes a user's display name, role, or active flag
func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.UserDTO, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.DisplayName = req.DisplayName
	user.Role = req.Role
	user.IsActive = req.IsActive

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// ListUsers returns all back-office users
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.UserDTO, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]domain.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, mapper.ToUserDTO(&users[i]))
	}
	return dtos, nil
}
