package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/response"
	"filmorate/pkg/cache"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// GraphService mutates and queries the like and friendship edges.
type GraphService interface {
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	CommonFilms(ctx context.Context, userID, friendID int64) ([]response.FilmResponse, error)

	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	Friends(ctx context.Context, userID int64) ([]response.UserResponse, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]response.UserResponse, error)
}

type graphService struct {
	repo  *repository.Repository
	feed  FeedService
	cache cache.PopularCache
	log   *zap.Logger
}

func NewGraphService(repo *repository.Repository, feed FeedService, popularCache cache.PopularCache, log *zap.Logger) GraphService {
	return &graphService{
		repo:  repo,
		feed:  feed,
		cache: popularCache,
		log:   log.With(zap.String("service", "graph")),
	}
}

func (s *graphService) requireFilmAndUser(ctx context.Context, filmID, userID int64) error {
	if err := requireFilm(ctx, s.repo.Film, filmID); err != nil {
		return err
	}
	return requireUser(ctx, s.repo.User, userID)
}

func (s *graphService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}

	if err := s.repo.Like.Add(ctx, filmID, userID); err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	s.cache.Invalidate(ctx)

	s.log.Info("Like added", zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return recordAfter(ctx, s.feed, s.log, "add like", filmID, userID, entity.EventLike, entity.OperationAdd)
}

func (s *graphService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}

	if err := s.repo.Like.Remove(ctx, filmID, userID); err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	s.cache.Invalidate(ctx)

	s.log.Info("Like removed", zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return recordAfter(ctx, s.feed, s.log, "remove like", filmID, userID, entity.EventLike, entity.OperationRemove)
}

func (s *graphService) CommonFilms(ctx context.Context, userID, friendID int64) ([]response.FilmResponse, error) {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return nil, err
	}

	ids, err := s.repo.Like.CommonFilmIDs(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("get common films: %w", err)
	}

	films, err := s.repo.Film.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load common films: %w", err)
	}
	return response.FilmsToResponse(films), nil
}

func (s *graphService) requireUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if err := requireUser(ctx, s.repo.User, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *graphService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return utils.BadRequest("user %d cannot befriend themselves", userID)
	}
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}

	if err := s.repo.Friend.Add(ctx, userID, friendID); err != nil {
		return fmt.Errorf("add friend: %w", err)
	}

	s.log.Info("Friend added", zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
	return recordAfter(ctx, s.feed, s.log, "add friend", friendID, userID, entity.EventFriend, entity.OperationAdd)
}

func (s *graphService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return utils.BadRequest("user %d cannot unfriend themselves", userID)
	}
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}

	if err := s.repo.Friend.Remove(ctx, userID, friendID); err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}

	s.log.Info("Friend removed", zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
	return recordAfter(ctx, s.feed, s.log, "remove friend", friendID, userID, entity.EventFriend, entity.OperationRemove)
}

func (s *graphService) Friends(ctx context.Context, userID int64) ([]response.UserResponse, error) {
	if err := requireUser(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}

	friends, err := s.repo.Friend.FindFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get friends: %w", err)
	}
	return response.UsersToResponse(friends), nil
}

func (s *graphService) CommonFriends(ctx context.Context, userID, otherID int64) ([]response.UserResponse, error) {
	if err := s.requireUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}

	common, err := s.repo.Friend.FindCommon(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("get common friends: %w", err)
	}
	return response.UsersToResponse(common), nil
}
