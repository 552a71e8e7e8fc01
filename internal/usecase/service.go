package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/repository"
	"filmorate/pkg/cache"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User      UserService
	Graph     GraphService
	Recommend RecommendService
	Popular   PopularService
	Feed      FeedService
	Film      FilmService
	Director  DirectorService
	Review    ReviewService
	Catalog   CatalogService
}

func NewService(repo *repository.Repository, popularCache cache.PopularCache, validator *utils.Validator, log *zap.Logger) *Service {
	if popularCache == nil {
		popularCache = cache.Noop{}
	}

	feed := NewFeedService(repo, log)

	return &Service{
		User:      NewUserService(repo, popularCache, validator, log),
		Graph:     NewGraphService(repo, feed, popularCache, log),
		Recommend: NewRecommendService(repo, log),
		Popular:   NewPopularService(repo, popularCache, log),
		Feed:      feed,
		Film:      NewFilmService(repo, popularCache, validator, log),
		Director:  NewDirectorService(repo, validator, log),
		Review:    NewReviewService(repo, feed, validator, log),
		Catalog:   NewCatalogService(repo, log),
	}
}

// requireUser returns NotFound when id has no user row.
func requireUser(ctx context.Context, users repository.UserRepository, id int64) error {
	exists, err := users.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check user %d: %w", id, err)
	}
	if !exists {
		return utils.NotFound("user %d", id)
	}
	return nil
}

func requireFilm(ctx context.Context, films repository.FilmRepository, id int64) error {
	exists, err := films.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check film %d: %w", id, err)
	}
	if !exists {
		return utils.NotFound("film %d", id)
	}
	return nil
}
