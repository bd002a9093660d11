package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chirpyhq/chirpy/internal/domain"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

// RefreshTokenRepository implements repository.RefreshTokenRepository using PostgreSQL.
type RefreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository creates a new PostgreSQL-backed refresh token repository.
func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a new refresh token in the database.
func (r *RefreshTokenRepository) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO refresh_tokens (token, user_id, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, token, userID, expiresAt, now, now)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}

	return nil
}

// GetUserForToken resolves the owner of a refresh token. The validity
// predicate lives in the query: revoked or expired tokens never match, so
// callers see the same miss for unknown, revoked and expired tokens.
func (r *RefreshTokenRepository) GetUserForToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.hashed_password, u.is_chirpy_red, u.created_at, u.updated_at
		FROM refresh_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token = $1
		  AND rt.revoked_at IS NULL
		  AND rt.expires_at > now()`

	var u domain.User
	err := r.db.QueryRow(ctx, query, token).Scan(
		&u.ID,
		&u.Email,
		&u.HashedPassword,
		&u.IsChirpyRed,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan refresh token user: %w", err)
	}

	return &u, nil
}

// Revoke marks a refresh token as revoked. Unknown or already-revoked
// tokens are not an error.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	now := time.Now().UTC()

	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1, updated_at = $1
		WHERE token = $2 AND revoked_at IS NULL`

	if _, err := r.db.Exec(ctx, query, now, token); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllForUser revokes every live refresh token belonging to the user.
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1, updated_at = $1
		WHERE user_id = $2 AND revoked_at IS NULL`

	if _, err := r.db.Exec(ctx, query, now, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens by user: %w", err)
	}

	return nil
}
