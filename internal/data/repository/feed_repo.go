package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

// FeedRepository appends and reads activity events. Rows are never updated.
type FeedRepository interface {
	Create(ctx context.Context, event *entity.FeedEvent) error
	FindByUserID(ctx context.Context, userID int64) ([]*entity.FeedEvent, error)
}

type feedRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFeedRepository(db database.Querier, log *zap.Logger) FeedRepository {
	return &feedRepository{
		db:  db,
		log: log.With(zap.String("repository", "feed")),
	}
}

func (r *feedRepository) Create(ctx context.Context, event *entity.FeedEvent) error {
	query := `
		INSERT INTO feed (entity_id, user_id, event_timestamp, event_type, operation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING event_id
	`

	err := r.db.QueryRow(ctx, query,
		event.EntityID,
		event.UserID,
		event.Timestamp,
		string(event.EventType),
		string(event.Operation),
	).Scan(&event.EventID)

	if err != nil {
		r.log.Error("Failed to create feed event",
			zap.Error(err),
			zap.Int64("user_id", event.UserID),
			zap.String("event_type", string(event.EventType)),
			zap.String("operation", string(event.Operation)),
		)
		return fmt.Errorf("create feed event: %w", err)
	}

	return nil
}

func (r *feedRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.FeedEvent, error) {
	query := `
		SELECT event_id, entity_id, user_id, event_timestamp, event_type, operation
		FROM feed
		WHERE user_id = $1
		ORDER BY event_timestamp ASC, event_id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find feed",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find feed of user %d: %w", userID, err)
	}
	defer rows.Close()

	events := make([]*entity.FeedEvent, 0)
	for rows.Next() {
		var (
			event     entity.FeedEvent
			eventType string
			operation string
		)
		err := rows.Scan(
			&event.EventID,
			&event.EntityID,
			&event.UserID,
			&event.Timestamp,
			&eventType,
			&operation,
		)
		if err != nil {
			return nil, fmt.Errorf("scan feed event: %w", err)
		}
		event.EventType = entity.EventType(eventType)
		event.Operation = entity.Operation(operation)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed: %w", err)
	}
	return events, nil
}
