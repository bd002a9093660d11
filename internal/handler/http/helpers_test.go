package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chirpyhq/chirpy/internal/auth"
	"github.com/chirpyhq/chirpy/internal/domain"
	"github.com/chirpyhq/chirpy/internal/event"
	"github.com/chirpyhq/chirpy/internal/service"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
	"github.com/chirpyhq/chirpy/pkg/health"
	"github.com/chirpyhq/chirpy/pkg/httputil"
	pkgkafka "github.com/chirpyhq/chirpy/pkg/kafka"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) UpgradeToChirpyRed(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockChirpRepo struct {
	mock.Mock
}

func (m *mockChirpRepo) Create(ctx context.Context, chirp *domain.Chirp) error {
	args := m.Called(ctx, chirp)
	return args.Error(0)
}

func (m *mockChirpRepo) GetByID(ctx context.Context, id string) (*domain.Chirp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chirp), args.Error(1)
}

func (m *mockChirpRepo) List(ctx context.Context, filter domain.ChirpFilter) ([]domain.Chirp, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chirp), args.Error(1)
}

func (m *mockChirpRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	args := m.Called(ctx, token, userID, expiresAt)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) GetUserForToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ============================================================================
// Test Helpers
// ============================================================================

const (
	testUserID   = "550e8400-e29b-41d4-a716-446655440001"
	testChirpID  = "550e8400-e29b-41d4-a716-446655440002"
	testPolkaKey = "f271c81ff7084ee5b99a5091b42d486e"
)

// fakeVerifier accepts any token and returns a fixed user ID, or fails with
// err when set.
type fakeVerifier struct {
	userID string
	err    error
}

func (v fakeVerifier) Verify(string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.userID, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaCfg.Async = true
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

type testDeps struct {
	userRepo    *mockUserRepo
	chirpRepo   *mockChirpRepo
	refreshRepo *mockRefreshTokenRepo
	verifier    fakeVerifier
	development bool
	counter     *HitCounter
}

func newTestDeps() *testDeps {
	return &testDeps{
		userRepo:    new(mockUserRepo),
		chirpRepo:   new(mockChirpRepo),
		refreshRepo: new(mockRefreshTokenRepo),
		verifier:    fakeVerifier{userID: testUserID},
		development: true,
		counter:     NewHitCounter(),
	}
}

// newTestRouter builds the production router on top of mocked repositories.
func newTestRouter(t *testing.T, d *testDeps) http.Handler {
	t.Helper()
	logger := testLogger()
	producer := testEventProducer()

	manager := auth.NewTokenManager("test-secret-key-for-testing", time.Hour)
	tokens := service.NewAuthService(d.userRepo, d.refreshRepo, manager, true, logger)
	users := service.NewUserService(d.userRepo, producer, logger)
	chirps := service.NewChirpService(d.chirpRepo, producer, logger)

	return NewRouter(users, tokens, chirps, d.verifier, health.NewHandler(), d.counter, RouterConfig{
		StaticDir:   t.TempDir(),
		PolkaKey:    testPolkaKey,
		Development: d.development,
	}, logger)
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func sampleStoredUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:             testUserID,
		Email:          "test@example.com",
		HashedPassword: "$2a$12$hashedpassword",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func sampleStoredChirp() *domain.Chirp {
	now := time.Now().UTC()
	return &domain.Chirp{
		ID:        testChirpID,
		Body:      "I had something interesting for breakfast",
		UserID:    testUserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var errUnauthorizedToken = apperrors.Unauthorized("invalid or expired token")
