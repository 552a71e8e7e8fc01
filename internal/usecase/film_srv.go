package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/cache"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type FilmService interface {
	Create(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error)
	Update(ctx context.Context, filmID int64, req *request.FilmRequest) (*response.FilmResponse, error)
	FindByID(ctx context.Context, filmID int64) (*response.FilmResponse, error)
	FindAll(ctx context.Context) ([]response.FilmResponse, error)
	Delete(ctx context.Context, filmID int64) error

	// ByDirector orders by "year" (default) or "likes".
	ByDirector(ctx context.Context, directorID int64, sortBy string) ([]response.FilmResponse, error)
	// Search matches query in titles and/or director names depending on by.
	Search(ctx context.Context, query, by string) ([]response.FilmResponse, error)
}

type filmService struct {
	repo      *repository.Repository
	cache     cache.PopularCache
	validator *utils.Validator
	log       *zap.Logger
}

func NewFilmService(repo *repository.Repository, popularCache cache.PopularCache, validator *utils.Validator, log *zap.Logger) FilmService {
	return &filmService{
		repo:      repo,
		cache:     popularCache,
		validator: validator,
		log:       log.With(zap.String("service", "film")),
	}
}

// toFilm validates req and checks that every referenced row exists before
// anything is written.
func (s *filmService) toFilm(ctx context.Context, req *request.FilmRequest) (*entity.Film, error) {
	if err := s.validator.Check(req); err != nil {
		s.log.Warn("Film validation failed", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	releaseDate, err := time.Parse(utils.DateLayout, req.ReleaseDate)
	if err != nil {
		return nil, utils.BadRequest("invalid releaseDate %q", req.ReleaseDate)
	}

	mpa, err := s.repo.MPA.FindByID(ctx, req.MPA.ID)
	if err != nil {
		return nil, fmt.Errorf("check mpa: %w", err)
	}
	if mpa == nil {
		return nil, utils.NotFound("mpa %d", req.MPA.ID)
	}

	film := &entity.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Duration:    req.Duration,
		MPA:         *mpa,
		Genres:      []entity.Genre{},
		Directors:   []entity.Director{},
	}

	for _, id := range distinctIDs(req.Genres) {
		film.Genres = append(film.Genres, entity.Genre{ID: id})
	}
	for _, id := range distinctIDs(req.Directors) {
		film.Directors = append(film.Directors, entity.Director{ID: id})
	}

	missing, err := s.repo.Genre.FindMissing(ctx, film.GenreIDs())
	if err != nil {
		return nil, fmt.Errorf("check genres: %w", err)
	}
	if len(missing) > 0 {
		return nil, utils.NotFound("genres %v", missing)
	}

	missing, err = s.repo.Director.FindMissing(ctx, film.DirectorIDs())
	if err != nil {
		return nil, fmt.Errorf("check directors: %w", err)
	}
	if len(missing) > 0 {
		return nil, utils.NotFound("directors %v", missing)
	}

	return film, nil
}

// distinctIDs keeps the first occurrence of every id.
func distinctIDs(refs []request.IDRef) []int64 {
	seen := make(map[int64]struct{}, len(refs))
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}
	return ids
}

func (s *filmService) Create(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error) {
	film, err := s.toFilm(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Film.Create(ctx, film); err != nil {
		return nil, fmt.Errorf("create film: %w", err)
	}
	s.cache.Invalidate(ctx)

	s.log.Info("Film created", zap.Int64("film_id", film.ID), zap.String("name", film.Name))
	return s.FindByID(ctx, film.ID)
}

func (s *filmService) Update(ctx context.Context, filmID int64, req *request.FilmRequest) (*response.FilmResponse, error) {
	if err := requireFilm(ctx, s.repo.Film, filmID); err != nil {
		return nil, err
	}

	film, err := s.toFilm(ctx, req)
	if err != nil {
		return nil, err
	}
	film.ID = filmID

	if err := s.repo.Film.Update(ctx, film); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	s.log.Info("Film updated", zap.Int64("film_id", film.ID))
	return s.FindByID(ctx, film.ID)
}

func (s *filmService) FindByID(ctx context.Context, filmID int64) (*response.FilmResponse, error) {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("get film: %w", err)
	}
	if film == nil {
		return nil, utils.NotFound("film %d", filmID)
	}

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) FindAll(ctx context.Context) ([]response.FilmResponse, error) {
	films, err := s.repo.Film.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get films: %w", err)
	}
	return response.FilmsToResponse(films), nil
}

func (s *filmService) Delete(ctx context.Context, filmID int64) error {
	if err := s.repo.Film.Delete(ctx, filmID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *filmService) ByDirector(ctx context.Context, directorID int64, sortBy string) ([]response.FilmResponse, error) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	if sortBy == "" {
		sortBy = repository.SortByYear
	}
	if sortBy != repository.SortByYear && sortBy != repository.SortByLikes {
		return nil, utils.BadRequest("sortBy must be %q or %q, got %q", repository.SortByYear, repository.SortByLikes, sortBy)
	}

	director, err := s.repo.Director.FindByID(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("get director: %w", err)
	}
	if director == nil {
		return nil, utils.NotFound("director %d", directorID)
	}

	films, err := s.repo.Film.FindByDirector(ctx, directorID, sortBy)
	if err != nil {
		return nil, fmt.Errorf("get films by director: %w", err)
	}
	return response.FilmsToResponse(films), nil
}

// parseSearchMode accepts title, director or both in either order.
func parseSearchMode(by string) (byTitle, byDirector bool, err error) {
	parts := strings.Split(by, ",")
	if len(parts) > 2 {
		return false, false, utils.BadRequest("invalid search mode %q", by)
	}

	for _, part := range parts {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "title":
			if byTitle {
				return false, false, utils.BadRequest("invalid search mode %q", by)
			}
			byTitle = true
		case "director":
			if byDirector {
				return false, false, utils.BadRequest("invalid search mode %q", by)
			}
			byDirector = true
		default:
			return false, false, utils.BadRequest("invalid search mode %q", by)
		}
	}
	return byTitle, byDirector, nil
}

func (s *filmService) Search(ctx context.Context, query, by string) ([]response.FilmResponse, error) {
	byTitle, byDirector, err := parseSearchMode(by)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.BadRequest("search query must not be blank")
	}

	films, err := s.repo.Film.Search(ctx, query, byTitle, byDirector)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}

	s.log.Debug("Films searched",
		zap.String("query", query),
		zap.String("by", by),
		zap.Int("count", len(films)),
	)
	return response.FilmsToResponse(films), nil
}
