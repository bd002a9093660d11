package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chirpyhq/chirpy/internal/auth"
	"github.com/chirpyhq/chirpy/internal/domain"
	"github.com/chirpyhq/chirpy/internal/event"
	"github.com/chirpyhq/chirpy/internal/repository"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

// UserService implements the business logic for user accounts.
type UserService struct {
	userRepo repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Email    string
	Password string
}

// Register creates a new user account with a hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.BadRequest("password is required")
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.New().String(),
		Email:          input.Email,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// UpgradeToChirpyRed marks the user as a Chirpy Red member. It is
// idempotent: upgrading an already-upgraded user succeeds.
func (s *UserService) UpgradeToChirpyRed(ctx context.Context, userID string) error {
	if err := s.userRepo.UpgradeToChirpyRed(ctx, userID); err != nil {
		return fmt.Errorf("upgrade user: %w", err)
	}

	if err := s.producer.PublishUserUpgraded(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.upgraded event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user upgraded to chirpy red",
		slog.String("user_id", userID),
	)

	return nil
}

// Reset wipes every user account along with their chirps and refresh
// tokens. Only the development platform exposes this.
func (s *UserService) Reset(ctx context.Context) error {
	if err := s.userRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset users: %w", err)
	}

	s.logger.WarnContext(ctx, "all users deleted")

	return nil
}
