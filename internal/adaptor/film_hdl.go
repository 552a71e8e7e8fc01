package adaptor

import (
	"net/http"

	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type FilmHandler struct {
	films   usecase.FilmService
	graph   usecase.GraphService
	popular usecase.PopularService
	log     *zap.Logger
}

func NewFilmHandler(service *usecase.Service, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		films:   service.Film,
		graph:   service.Graph,
		popular: service.Popular,
		log:     log.With(zap.String("handler", "film")),
	}
}

// GetFilms handles GET /api/films
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.FindAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get films")
		return
	}
	utils.ResponseSuccess(w, "Films retrieved successfully", films)
}

// GetFilm handles GET /api/films/{id}
func (h *FilmHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get film")
		return
	}

	film, err := h.films.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get film")
		return
	}
	utils.ResponseSuccess(w, "Film retrieved successfully", film)
}

// CreateFilm handles POST /api/films
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create film")
		return
	}

	film, err := h.films.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create film")
		return
	}
	utils.ResponseCreated(w, "Film created successfully", film)
}

// UpdateFilm handles PUT /api/films/{id}
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update film")
		return
	}

	var req request.FilmRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update film")
		return
	}

	film, err := h.films.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update film")
		return
	}
	utils.ResponseSuccess(w, "Film updated successfully", film)
}

// DeleteFilm handles DELETE /api/films/{id}
func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "delete film")
		return
	}

	if err := h.films.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete film")
		return
	}
	utils.ResponseSuccess(w, "Film deleted successfully", nil)
}

func (h *FilmHandler) likeIDs(r *http.Request) (filmID, userID int64, err error) {
	if filmID, err = pathID(r, "id"); err != nil {
		return 0, 0, err
	}
	if userID, err = pathID(r, "userId"); err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}

// AddLike handles PUT /api/films/{id}/like/{userId}
func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, err := h.likeIDs(r)
	if err == nil {
		err = h.graph.AddLike(r.Context(), filmID, userID)
	}
	if err != nil {
		handleServiceError(w, h.log, err, "add like")
		return
	}
	utils.ResponseSuccess(w, "Like added successfully", nil)
}

// RemoveLike handles DELETE /api/films/{id}/like/{userId}
func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, err := h.likeIDs(r)
	if err == nil {
		err = h.graph.RemoveLike(r.Context(), filmID, userID)
	}
	if err != nil {
		handleServiceError(w, h.log, err, "remove like")
		return
	}
	utils.ResponseSuccess(w, "Like removed successfully", nil)
}

// GetPopular handles GET /api/films/popular?count&genreId&year
func (h *FilmHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	count, err := queryCount(r, "count", usecase.DefaultPopularCount)
	if err != nil {
		handleServiceError(w, h.log, err, "get popular films")
		return
	}
	genreID, err := utils.ParseOptionalInt(query.Get("genreId"), "genreId")
	if err != nil {
		handleServiceError(w, h.log, err, "get popular films")
		return
	}
	year, err := utils.ParseOptionalInt(query.Get("year"), "year")
	if err != nil {
		handleServiceError(w, h.log, err, "get popular films")
		return
	}

	films, err := h.popular.Popular(r.Context(), usecase.PopularQuery{
		Count:   count,
		GenreID: genreID,
		Year:    year,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "get popular films")
		return
	}
	utils.ResponseSuccess(w, "Popular films retrieved successfully", films)
}

// GetCommon handles GET /api/films/common?userId&friendId
func (h *FilmHandler) GetCommon(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID, err := utils.ParseID(query.Get("userId"), "userId")
	if err != nil {
		handleServiceError(w, h.log, err, "get common films")
		return
	}
	friendID, err := utils.ParseID(query.Get("friendId"), "friendId")
	if err != nil {
		handleServiceError(w, h.log, err, "get common films")
		return
	}

	films, err := h.graph.CommonFilms(r.Context(), userID, friendID)
	if err != nil {
		handleServiceError(w, h.log, err, "get common films")
		return
	}
	utils.ResponseSuccess(w, "Common films retrieved successfully", films)
}

// Search handles GET /api/films/search?query&by
func (h *FilmHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	films, err := h.films.Search(r.Context(), query.Get("query"), query.Get("by"))
	if err != nil {
		handleServiceError(w, h.log, err, "search films")
		return
	}
	utils.ResponseSuccess(w, "Films found", films)
}

// GetByDirector handles GET /api/films/director/{directorId}?sortBy=year|likes
func (h *FilmHandler) GetByDirector(w http.ResponseWriter, r *http.Request) {
	directorID, err := pathID(r, "directorId")
	if err != nil {
		handleServiceError(w, h.log, err, "get films by director")
		return
	}

	films, err := h.films.ByDirector(r.Context(), directorID, r.URL.Query().Get("sortBy"))
	if err != nil {
		handleServiceError(w, h.log, err, "get films by director")
		return
	}
	utils.ResponseSuccess(w, "Films retrieved successfully", films)
}
