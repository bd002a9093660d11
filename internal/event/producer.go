package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chirpyhq/chirpy/internal/domain"
	pkgkafka "github.com/chirpyhq/chirpy/pkg/kafka"
)

// Kafka topic constants for chirpy domain events.
const (
	TopicUserRegistered = "chirpy.user.registered"
	TopicUserUpgraded   = "chirpy.user.upgraded"
	TopicChirpCreated   = "chirpy.chirp.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser  = "user"
	AggregateTypeChirp = "chirp"
)

// Source identifier for events originating from this service.
const SourceChirpy = "chirpy"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserUpgradedData is the payload for a user.upgraded event.
type UserUpgradedData struct {
	ID string `json:"id"`
}

// ChirpCreatedData is the payload for a chirp.created event.
type ChirpCreatedData struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Body   string `json:"body"`
}

// Producer publishes chirpy domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Email: user.Email,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceChirpy, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishUserUpgraded publishes a user.upgraded event.
func (p *Producer) PublishUserUpgraded(ctx context.Context, userID string) error {
	data := UserUpgradedData{ID: userID}

	event, err := pkgkafka.NewEvent(TopicUserUpgraded, userID, AggregateTypeUser, SourceChirpy, data)
	if err != nil {
		return fmt.Errorf("create user.upgraded event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserUpgraded, event); err != nil {
		return fmt.Errorf("publish user.upgraded event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.upgraded event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishChirpCreated publishes a chirp.created event.
func (p *Producer) PublishChirpCreated(ctx context.Context, chirp *domain.Chirp) error {
	data := ChirpCreatedData{
		ID:     chirp.ID,
		UserID: chirp.UserID,
		Body:   chirp.Body,
	}

	event, err := pkgkafka.NewEvent(TopicChirpCreated, chirp.ID, AggregateTypeChirp, SourceChirpy, data)
	if err != nil {
		return fmt.Errorf("create chirp.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicChirpCreated, event); err != nil {
		return fmt.Errorf("publish chirp.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published chirp.created event",
		slog.String("chirp_id", chirp.ID),
		slog.String("user_id", chirp.UserID),
	)

	return nil
}
