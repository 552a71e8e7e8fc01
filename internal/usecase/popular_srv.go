package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/repository"
	"filmorate/internal/dto/response"
	"filmorate/pkg/cache"
	"filmorate/pkg/metrics"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type PopularService interface {
	Popular(ctx context.Context, q PopularQuery) ([]response.FilmResponse, error)
}

type popularService struct {
	repo  *repository.Repository
	cache cache.PopularCache
	log   *zap.Logger
}

func NewPopularService(repo *repository.Repository, popularCache cache.PopularCache, log *zap.Logger) PopularService {
	return &popularService{
		repo:  repo,
		cache: popularCache,
		log:   log.With(zap.String("service", "popular")),
	}
}

func (s *popularService) Popular(ctx context.Context, q PopularQuery) ([]response.FilmResponse, error) {
	if q.Count <= 0 {
		return nil, utils.BadRequest("count must be positive, got %d", q.Count)
	}

	key := cache.PopularKey{Count: q.Count, GenreID: q.GenreID, Year: q.Year}

	ids, version, hit := s.cache.Get(ctx, key)
	metrics.RecordPopularCache(hit)

	if !hit {
		ranking, err := s.repo.Like.Ranking(ctx)
		if err != nil {
			s.log.Error("Failed to load ranking", zap.Error(err))
			return nil, fmt.Errorf("get popular films: %w", err)
		}

		ids = rankPopular(ranking, q)
		s.cache.Set(ctx, key, version, ids)
	}

	films, err := s.repo.Film.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load popular films: %w", err)
	}
	return response.FilmsToResponse(films), nil
}
