package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chirpyhq/chirpy/internal/domain"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

// ChirpRepository implements repository.ChirpRepository using PostgreSQL.
type ChirpRepository struct {
	db DB
}

// NewChirpRepository creates a new PostgreSQL-backed chirp repository.
func NewChirpRepository(db DB) *ChirpRepository {
	return &ChirpRepository{db: db}
}

// Create inserts a new chirp into the database.
func (r *ChirpRepository) Create(ctx context.Context, c *domain.Chirp) error {
	query := `
		INSERT INTO chirps (id, body, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Body,
		c.UserID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chirp: %w", err)
	}

	return nil
}

// GetByID retrieves a chirp by its ID.
func (r *ChirpRepository) GetByID(ctx context.Context, id string) (*domain.Chirp, error) {
	query := `
		SELECT id, body, user_id, created_at, updated_at
		FROM chirps
		WHERE id = $1`

	var c domain.Chirp
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Body,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("chirp", id)
		}
		return nil, fmt.Errorf("scan chirp: %w", err)
	}

	return &c, nil
}

// List returns chirps ordered by creation time, optionally filtered by author.
// Sort defaults to ascending.
func (r *ChirpRepository) List(ctx context.Context, filter domain.ChirpFilter) ([]domain.Chirp, error) {
	query := `
		SELECT id, body, user_id, created_at, updated_at
		FROM chirps`

	var args []any
	if filter.AuthorID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, filter.AuthorID)
	}

	if filter.Sort == domain.ChirpSortDesc {
		query += ` ORDER BY created_at DESC`
	} else {
		query += ` ORDER BY created_at ASC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chirps: %w", err)
	}
	defer rows.Close()

	var chirps []domain.Chirp
	for rows.Next() {
		var c domain.Chirp
		if err := rows.Scan(
			&c.ID,
			&c.Body,
			&c.UserID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chirp row: %w", err)
		}
		chirps = append(chirps, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chirp rows: %w", err)
	}

	if chirps == nil {
		chirps = []domain.Chirp{}
	}

	return chirps, nil
}

// Delete removes a chirp from the database by its ID.
func (r *ChirpRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM chirps WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete chirp: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("chirp", id)
	}

	return nil
}
