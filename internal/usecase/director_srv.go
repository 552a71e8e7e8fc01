package usecase

import (
	"context"
	"fmt"
	"strings"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type DirectorService interface {
	Create(ctx context.Context, req *request.DirectorRequest) (*response.DirectorResponse, error)
	Update(ctx context.Context, directorID int64, req *request.DirectorRequest) (*response.DirectorResponse, error)
	FindByID(ctx context.Context, directorID int64) (*response.DirectorResponse, error)
	FindAll(ctx context.Context) ([]response.DirectorResponse, error)
	Delete(ctx context.Context, directorID int64) error
}

type directorService struct {
	directorRepo repository.DirectorRepository
	validator    *utils.Validator
	log          *zap.Logger
}

func NewDirectorService(repo *repository.Repository, validator *utils.Validator, log *zap.Logger) DirectorService {
	return &directorService{
		directorRepo: repo.Director,
		validator:    validator,
		log:          log.With(zap.String("service", "director")),
	}
}

func (s *directorService) toDirector(req *request.DirectorRequest) (*entity.Director, error) {
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.BadRequest("director name must not be blank")
	}
	return &entity.Director{Name: name}, nil
}

func (s *directorService) Create(ctx context.Context, req *request.DirectorRequest) (*response.DirectorResponse, error) {
	director, err := s.toDirector(req)
	if err != nil {
		return nil, err
	}

	if err := s.directorRepo.Create(ctx, director); err != nil {
		return nil, fmt.Errorf("create director: %w", err)
	}

	s.log.Info("Director created", zap.Int64("director_id", director.ID))
	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func (s *directorService) Update(ctx context.Context, directorID int64, req *request.DirectorRequest) (*response.DirectorResponse, error) {
	director, err := s.toDirector(req)
	if err != nil {
		return nil, err
	}
	director.ID = directorID

	if err := s.directorRepo.Update(ctx, director); err != nil {
		return nil, err
	}

	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func (s *directorService) FindByID(ctx context.Context, directorID int64) (*response.DirectorResponse, error) {
	director, err := s.directorRepo.FindByID(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("get director: %w", err)
	}
	if director == nil {
		return nil, utils.NotFound("director %d", directorID)
	}

	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func (s *directorService) FindAll(ctx context.Context) ([]response.DirectorResponse, error) {
	directors, err := s.directorRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get directors: %w", err)
	}
	return response.DirectorsToResponse(directors), nil
}

func (s *directorService) Delete(ctx context.Context, directorID int64) error {
	return s.directorRepo.Delete(ctx, directorID)
}
