package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/KushalZanzari/neuroq-backend/internal/auth"
	"github.com/KushalZanzari/neuroq-backend/internal/config"
	"github.com/KushalZanzari/neuroq-backend/internal/domain"
	"github.com/KushalZanzari/neuroq-backend/internal/repository"
	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. Registration against an email that already
// has an account is rejected.
func (s *AuthService) Register(ctx context.Context, email, password, fullName, username string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateAccount()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates an account and issues a session token. A missing
// account and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// UpdateProfile mutates only the provided (non-empty) fields. A call with no
// fields is a no-op that returns the profile unchanged; the row is written
// only when something actually changed. Email and password are not mutable
// through this path.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, fullName, username string) (*domain.User, error) {
	updated := false

	if fullName != "" && fullName != user.FullName {
		user.FullName = fullName
		updated = true
	}
	if username != "" && username != user.Username {
		user.Username = username
		updated = true
	}

	if updated {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
