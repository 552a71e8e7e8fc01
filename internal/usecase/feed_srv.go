package usecase

import (
	"context"
	"fmt"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/response"
	"filmorate/pkg/metrics"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type FeedService interface {
	// Record appends one event for actorID. The actor must exist.
	Record(ctx context.Context, entityID, actorID int64, eventType entity.EventType, op entity.Operation) (*entity.FeedEvent, error)
	// ByUser returns the user's events oldest first.
	ByUser(ctx context.Context, userID int64) ([]response.FeedEventResponse, error)
}

type feedService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewFeedService(repo *repository.Repository, log *zap.Logger) FeedService {
	return &feedService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "feed")),
	}
}

func (s *feedService) Record(ctx context.Context, entityID, actorID int64, eventType entity.EventType, op entity.Operation) (*entity.FeedEvent, error) {
	if err := requireUser(ctx, s.repo.User, actorID); err != nil {
		return nil, err
	}

	event := &entity.FeedEvent{
		EntityID:  entityID,
		UserID:    actorID,
		Timestamp: s.now().UnixMilli(),
		EventType: eventType,
		Operation: op,
	}

	if err := s.repo.Feed.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("record feed event: %w", err)
	}

	metrics.RecordFeedEvent(string(eventType))
	s.log.Debug("Feed event recorded",
		zap.Int64("event_id", event.EventID),
		zap.Int64("user_id", actorID),
		zap.Int64("entity_id", entityID),
		zap.String("event_type", string(eventType)),
		zap.String("operation", string(op)),
	)
	return event, nil
}

func (s *feedService) ByUser(ctx context.Context, userID int64) ([]response.FeedEventResponse, error) {
	if err := requireUser(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}

	events, err := s.repo.Feed.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get feed", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("get feed: %w", err)
	}

	return response.FeedToResponse(events), nil
}

// recordAfter writes the feed event of a mutation that already succeeded.
// A failure is returned as *utils.FeedWriteError.
func recordAfter(ctx context.Context, feed FeedService, log *zap.Logger, op string, entityID, actorID int64, eventType entity.EventType, operation entity.Operation) error {
	metrics.RecordMutation(string(eventType), string(operation))

	if _, err := feed.Record(ctx, entityID, actorID, eventType, operation); err != nil {
		metrics.RecordFeedWriteFailure()
		log.Error("Feed write failed after mutation",
			zap.String("op", op),
			zap.Int64("entity_id", entityID),
			zap.Int64("user_id", actorID),
			zap.Error(err),
		)
		return &utils.FeedWriteError{Op: op, Err: err}
	}
	return nil
}
