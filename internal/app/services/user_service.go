package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/auth"
)

const tokenType = "Bearer"

// UserService handles accounts, sessions and passwords
type UserService struct {
	users   UserStore
	tokens  TokenIssuer
	revoker TokenRevoker
	logger  zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, tokens TokenIssuer, revoker TokenRevoker, logger zerolog.Logger) *UserService {
	return &UserService{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
		logger:  logger,
	}
}

// normalizeOptional trims an optional field and drops it when blank
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Register creates a user with a hashed password and returns its ID
func (s *UserService) Register(ctx context.Context, req *dto.CreateUserRequest) (int64, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return 0, apperrors.NewValidationError("username is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.users.Create(ctx, &models.User{
		RoleID:    req.RoleID,
		Username:  username,
		Password:  hash,
		Email:     normalizeOptional(req.Email),
		FirstName: normalizeOptional(req.FirstName),
		LastName:  normalizeOptional(req.LastName),
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("userID", id).Str("username", username).Msg("User registered")
	return id, nil
}

// Login verifies credentials and issues a session token. Unknown usernames and
// wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidLogin
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login rejected")
		return nil, apperrors.ErrInvalidLogin
	}

	token, expiresIn, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.TokenResponse{
		Token:     token,
		TokenType: tokenType,
		ExpiresIn: expiresIn,
	}, nil
}

// Logout revokes the token that authenticated the current request
func (s *UserService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// List returns every user
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update replaces a user's profile. The stored password is kept unless a new one is given.
func (s *UserService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return apperrors.NewValidationError("username is required")
	}

	user := &models.User{
		ID:        id,
		RoleID:    req.RoleID,
		Username:  username,
		Email:     normalizeOptional(req.Email),
		FirstName: normalizeOptional(req.FirstName),
		LastName:  normalizeOptional(req.LastName),
	}

	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hash
	}

	return s.users.Update(ctx, user)
}

// ChangePassword replaces the password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, id int64, req *dto.ChangePasswordRequest) error {
	current, err := s.users.GetPasswordHash(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	if !auth.CheckPassword(current, req.CurrentPassword) {
		return apperrors.ErrInvalidCurrentPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("Password changed")
	return nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
