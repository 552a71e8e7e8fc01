package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/repository"
	"filmorate/internal/dto/response"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// CatalogService reads the seeded genre and MPA tables.
type CatalogService interface {
	Genres(ctx context.Context) ([]response.GenreResponse, error)
	Genre(ctx context.Context, id int64) (*response.GenreResponse, error)
	MPAs(ctx context.Context) ([]response.MPAResponse, error)
	MPA(ctx context.Context, id int64) (*response.MPAResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) Genres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *catalogService) Genre(ctx context.Context, id int64) (*response.GenreResponse, error) {
	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if genre == nil {
		return nil, utils.NotFound("genre %d", id)
	}
	return &response.GenreResponse{ID: genre.ID, Name: genre.Name}, nil
}

func (s *catalogService) MPAs(ctx context.Context) ([]response.MPAResponse, error) {
	ratings, err := s.repo.MPA.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get mpa: %w", err)
	}
	return response.MPAsToResponse(ratings), nil
}

func (s *catalogService) MPA(ctx context.Context, id int64) (*response.MPAResponse, error) {
	mpa, err := s.repo.MPA.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get mpa: %w", err)
	}
	if mpa == nil {
		return nil, utils.NotFound("mpa %d", id)
	}
	resp := response.MPAToResponse(mpa)
	return &resp, nil
}
