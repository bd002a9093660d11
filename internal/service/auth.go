package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chirpyhq/chirpy/internal/auth"
	"github.com/chirpyhq/chirpy/internal/domain"
	"github.com/chirpyhq/chirpy/internal/repository"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

// refreshTokenTTL is how long a refresh token stays exchangeable.
const refreshTokenTTL = 60 * 24 * time.Hour

// AuthService implements login, token refresh and credential management.
type AuthService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	tokens           *auth.TokenManager
	ttlNegotiable    bool
	logger           *slog.Logger
}

// NewAuthService creates a new auth service. When ttlNegotiable is false,
// caller-requested access token lifetimes are ignored and every token gets
// the default lifetime.
func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	tokens *auth.TokenManager,
	ttlNegotiable bool,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		ttlNegotiable:    ttlNegotiable,
		logger:           logger,
	}
}

// LoginInput holds the parameters for user login. ExpiresIn is an optional
// caller-requested access token lifetime; it can only shorten the default.
type LoginInput struct {
	Email     string
	Password  string
	ExpiresIn time.Duration
}

// Login authenticates a user with email and password, returning the user
// plus a fresh access/refresh token pair. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperrors.Unauthorized("incorrect email or password")
	}

	if !auth.CheckPassword(input.Password, user.HashedPassword) {
		return nil, apperrors.Unauthorized("incorrect email or password")
	}

	requested := input.ExpiresIn
	if !s.ttlNegotiable {
		requested = 0
	}

	accessToken, err := s.tokens.Issue(user.ID, requested)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err := auth.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(refreshTokenTTL)
	if err := s.refreshTokenRepo.Create(ctx, refreshToken, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
	)

	return &domain.Session{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token with the
// default lifetime. The refresh token itself is untouched: it stays valid
// until it expires or is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	user, err := s.refreshTokenRepo.GetUserForToken(ctx, refreshToken)
	if err != nil {
		return "", apperrors.Unauthorized("invalid or expired refresh token")
	}

	accessToken, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return accessToken, nil
}

// Revoke marks a refresh token as revoked. Unknown and already-revoked
// tokens are absorbed so callers cannot probe for live tokens.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokenRepo.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

// UpdateCredentialsInput holds the parameters for replacing a user's email
// and password.
type UpdateCredentialsInput struct {
	Email    string
	Password string
}

// UpdateCredentials replaces the authenticated user's email and password.
// Existing refresh tokens stay valid.
func (s *AuthService) UpdateCredentials(ctx context.Context, userID string, input UpdateCredentialsInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.BadRequest("password is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Email = input.Email
	user.HashedPassword = hashedPassword

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "user credentials updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}
