package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpyhq/chirpy/internal/domain"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

func newChirpTestFixture(t *testing.T) (*ChirpRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewChirpRepository(mock)
	return repo, mock
}

func sampleChirp() *domain.Chirp {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Chirp{
		ID:        "c-1234",
		Body:      "I had something interesting for breakfast",
		UserID:    "u-1234",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func chirpColumns() []string {
	return []string{"id", "body", "user_id", "created_at", "updated_at"}
}

func chirpRow(c *domain.Chirp) *pgxmock.Rows {
	return pgxmock.NewRows(chirpColumns()).AddRow(
		c.ID, c.Body, c.UserID, c.CreatedAt, c.UpdatedAt,
	)
}

func TestChirpRepository_Create_Success(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	c := sampleChirp()

	mock.ExpectExec("INSERT INTO chirps").
		WithArgs(c.ID, c.Body, c.UserID, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChirpRepository_GetByID_Success(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	c := sampleChirp()

	mock.ExpectQuery("SELECT .+ FROM chirps WHERE id =").
		WithArgs(c.ID).
		WillReturnRows(chirpRow(c))

	got, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Body, got.Body)
	assert.Equal(t, c.UserID, got.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChirpRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM chirps WHERE id =").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChirpRepository_List_DefaultAscending(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	c1 := sampleChirp()
	c2 := sampleChirp()
	c2.ID = "c-5678"

	mock.ExpectQuery("SELECT .+ FROM chirps ORDER BY created_at ASC").
		WillReturnRows(pgxmock.NewRows(chirpColumns()).
			AddRow(c1.ID, c1.Body, c1.UserID, c1.CreatedAt, c1.UpdatedAt).
			AddRow(c2.ID, c2.Body, c2.UserID, c2.CreatedAt, c2.UpdatedAt))

	got, err := repo.List(context.Background(), domain.ChirpFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, c1.ID, got[0].ID)
	assert.Equal(t, c2.ID, got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChirpRepository_List_DescendingWithAuthor(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	c := sampleChirp()

	mock.ExpectQuery("SELECT .+ FROM chirps WHERE user_id = .+ ORDER BY created_at DESC").
		WithArgs(c.UserID).
		WillReturnRows(chirpRow(c))

	got, err := repo.List(context.Background(), domain.ChirpFilter{
		AuthorID: c.UserID,
		Sort:     domain.ChirpSortDesc,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChirpRepository_List_Empty(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM chirps ORDER BY created_at ASC").
		WillReturnRows(pgxmock.NewRows(chirpColumns()))

	got, err := repo.List(context.Background(), domain.ChirpFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChirpRepository_Delete_Success(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM chirps WHERE id =").
		WithArgs("c-1234").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "c-1234")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChirpRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newChirpTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM chirps WHERE id =").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing-id")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
