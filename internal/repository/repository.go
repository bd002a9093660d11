package repository

import (
	"context"
	"time"

	"github.com/chirpyhq/chirpy/internal/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpgradeToChirpyRed(ctx context.Context, userID string) error
	DeleteAll(ctx context.Context) error
}

// ChirpRepository persists chirps.
type ChirpRepository interface {
	Create(ctx context.Context, chirp *domain.Chirp) error
	GetByID(ctx context.Context, id string) (*domain.Chirp, error)
	List(ctx context.Context, filter domain.ChirpFilter) ([]domain.Chirp, error)
	Delete(ctx context.Context, id string) error
}

// RefreshTokenRepository persists refresh tokens. GetUserForToken resolves
// only tokens that are unrevoked and unexpired; everything else is a miss.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token, userID string, expiresAt time.Time) error
	GetUserForToken(ctx context.Context, token string) (*domain.User, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
