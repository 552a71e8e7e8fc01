package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/repository"
	"filmorate/internal/dto/response"
	"filmorate/pkg/metrics"

	"go.uber.org/zap"
)

type RecommendService interface {
	// Recommendations returns films the closest peer likes and userID does
	// not. No peer gives an empty list.
	Recommendations(ctx context.Context, userID int64) ([]response.FilmResponse, error)
}

type recommendService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRecommendService(repo *repository.Repository, log *zap.Logger) RecommendService {
	return &recommendService{
		repo: repo,
		log:  log.With(zap.String("service", "recommend")),
	}
}

func (s *recommendService) Recommendations(ctx context.Context, userID int64) ([]response.FilmResponse, error) {
	if err := requireUser(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}

	overlaps, err := s.repo.Like.Overlaps(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load like overlaps", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find peer: %w", err)
	}

	peerID, ok := pickPeer(userID, overlaps)
	if !ok {
		metrics.RecordRecommendation(metrics.OutcomeNoPeer)
		s.log.Debug("No peer for recommendations", zap.Int64("user_id", userID))
		return []response.FilmResponse{}, nil
	}
	metrics.RecordRecommendation(metrics.OutcomePeer)

	ids, err := s.repo.Like.RecommendedFilmIDs(ctx, userID, peerID)
	if err != nil {
		return nil, fmt.Errorf("get recommended films: %w", err)
	}

	films, err := s.repo.Film.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load recommended films: %w", err)
	}

	s.log.Debug("Recommendations built",
		zap.Int64("user_id", userID),
		zap.Int64("peer_id", peerID),
		zap.Int("count", len(films)),
	)
	return response.FilmsToResponse(films), nil
}
