package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// DefaultReviewCount caps review lists when no count is given.
const DefaultReviewCount = 10

type ReviewService interface {
	Create(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, reviewID int64, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, reviewID int64) error
	FindByID(ctx context.Context, reviewID int64) (*response.ReviewResponse, error)
	List(ctx context.Context, filmID *int64, count int) ([]response.ReviewResponse, error)

	// React applies (add=true) or withdraws a like/dislike from userID.
	React(ctx context.Context, reviewID, userID int64, reaction entity.ReviewReaction, add bool) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo      *repository.Repository
	feed      FeedService
	validator *utils.Validator
	log       *zap.Logger
}

func NewReviewService(repo *repository.Repository, feed FeedService, validator *utils.Validator, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:      repo,
		feed:      feed,
		validator: validator,
		log:       log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) Create(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := s.validator.Check(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	if err := requireUser(ctx, s.repo.User, req.UserID); err != nil {
		return nil, err
	}
	if err := requireFilm(ctx, s.repo.Film, req.FilmID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		Content:    req.Content,
		IsPositive: *req.IsPositive,
		UserID:     req.UserID,
		FilmID:     req.FilmID,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", review.UserID),
		zap.Int64("film_id", review.FilmID),
	)

	resp := response.ReviewToResponse(review)
	if err := recordAfter(ctx, s.feed, s.log, "create review", review.ID, review.UserID, entity.EventReview, entity.OperationAdd); err != nil {
		return &resp, err
	}
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, reviewID int64, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := s.validator.Check(req); err != nil {
		s.log.Warn("Update review validation failed", zap.Error(err))
		return nil, err
	}

	review := &entity.Review{
		ID:         reviewID,
		Content:    req.Content,
		IsPositive: *req.IsPositive,
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	if err := recordAfter(ctx, s.feed, s.log, "update review", review.ID, review.UserID, entity.EventReview, entity.OperationUpdate); err != nil {
		return &resp, err
	}
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, reviewID int64) error {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return utils.NotFound("review %d", reviewID)
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.log.Info("Review deleted", zap.Int64("review_id", reviewID))
	return recordAfter(ctx, s.feed, s.log, "delete review", review.ID, review.UserID, entity.EventReview, entity.OperationRemove)
}

func (s *reviewService) FindByID(ctx context.Context, reviewID int64) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, utils.NotFound("review %d", reviewID)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) List(ctx context.Context, filmID *int64, count int) ([]response.ReviewResponse, error) {
	if count <= 0 {
		return nil, utils.BadRequest("count must be positive, got %d", count)
	}

	reviews, err := s.repo.Review.List(ctx, filmID, count)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) React(ctx context.Context, reviewID, userID int64, reaction entity.ReviewReaction, add bool) (*response.ReviewResponse, error) {
	if reaction != entity.ReactionLike && reaction != entity.ReactionDislike {
		return nil, utils.BadRequest("unknown reaction %q", reaction)
	}
	if err := requireUser(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, utils.NotFound("review %d", reviewID)
	}

	useful, err := s.repo.Review.AdjustUseful(ctx, reviewID, reaction.Delta(add))
	if err != nil {
		return nil, err
	}
	review.Useful = useful

	s.log.Debug("Review reaction applied",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", userID),
		zap.String("reaction", string(reaction)),
		zap.Bool("add", add),
		zap.Int("useful", useful),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}
