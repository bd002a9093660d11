package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/chirpyhq/chirpy/internal/domain"
	"github.com/chirpyhq/chirpy/internal/event"
	"github.com/chirpyhq/chirpy/internal/repository"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

// maxChirpLength is the maximum chirp body length in characters.
const maxChirpLength = 140

// profaneWords are masked in chirp bodies. Matching is case-insensitive
// and whole-word only, so punctuation-adjacent forms pass through.
var profaneWords = map[string]struct{}{
	"kerfuffle": {},
	"sharbert":  {},
	"fornax":    {},
}

// ChirpService implements the business logic for chirps.
type ChirpService struct {
	chirpRepo repository.ChirpRepository
	producer  *event.Producer
	logger    *slog.Logger
}

// NewChirpService creates a new chirp service.
func NewChirpService(
	chirpRepo repository.ChirpRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ChirpService {
	return &ChirpService{
		chirpRepo: chirpRepo,
		producer:  producer,
		logger:    logger,
	}
}

// CreateInput holds the parameters for posting a chirp.
type CreateInput struct {
	Body   string
	UserID string
}

// Create validates, cleans and stores a new chirp for the given author.
func (s *ChirpService) Create(ctx context.Context, input CreateInput) (*domain.Chirp, error) {
	if input.Body == "" {
		return nil, apperrors.BadRequest("body is required")
	}
	if utf8.RuneCountInString(input.Body) > maxChirpLength {
		return nil, apperrors.BadRequest("Chirp is too long")
	}

	now := time.Now().UTC()
	chirp := &domain.Chirp{
		ID:        uuid.New().String(),
		Body:      cleanBody(input.Body),
		UserID:    input.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.chirpRepo.Create(ctx, chirp); err != nil {
		return nil, fmt.Errorf("create chirp: %w", err)
	}

	if err := s.producer.PublishChirpCreated(ctx, chirp); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish chirp.created event",
			slog.String("chirp_id", chirp.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "chirp created",
		slog.String("chirp_id", chirp.ID),
		slog.String("user_id", chirp.UserID),
	)

	return chirp, nil
}

// Get returns a single chirp by ID.
func (s *ChirpService) Get(ctx context.Context, id string) (*domain.Chirp, error) {
	chirp, err := s.chirpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get chirp: %w", err)
	}

	return chirp, nil
}

// List returns chirps matching the filter, oldest first unless descending
// order is requested.
func (s *ChirpService) List(ctx context.Context, filter domain.ChirpFilter) ([]domain.Chirp, error) {
	chirps, err := s.chirpRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list chirps: %w", err)
	}

	return chirps, nil
}

// Delete removes a chirp. Only its author may delete it; anyone else gets
// a forbidden error. A missing chirp is reported before ownership is
// checked.
func (s *ChirpService) Delete(ctx context.Context, id, userID string) error {
	chirp, err := s.chirpRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get chirp: %w", err)
	}

	if chirp.UserID != userID {
		return apperrors.Forbidden("you can only delete your own chirps")
	}

	if err := s.chirpRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete chirp: %w", err)
	}

	s.logger.InfoContext(ctx, "chirp deleted",
		slog.String("chirp_id", id),
		slog.String("user_id", userID),
	)

	return nil
}

// cleanBody masks profane words with four asterisks. Words are split on
// spaces only; original spacing between words is preserved.
func cleanBody(body string) string {
	words := strings.Split(body, " ")
	for i, word := range words {
		if _, ok := profaneWords[strings.ToLower(word)]; ok {
			words[i] = "****"
		}
	}
	return strings.Join(words, " ")
}
