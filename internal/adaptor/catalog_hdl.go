package adaptor

import (
	"net/http"

	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// CatalogHandler serves the read-only genre and MPA lists.
type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetGenres handles GET /api/genres
func (h *CatalogHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.Genres(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}
	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

// GetGenre handles GET /api/genres/{id}
func (h *CatalogHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get genre")
		return
	}

	genre, err := h.service.Genre(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get genre")
		return
	}
	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}

// GetMPAs handles GET /api/mpa
func (h *CatalogHandler) GetMPAs(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.MPAs(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get mpa ratings")
		return
	}
	utils.ResponseSuccess(w, "MPA ratings retrieved successfully", ratings)
}

// GetMPA handles GET /api/mpa/{id}
func (h *CatalogHandler) GetMPA(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get mpa rating")
		return
	}

	rating, err := h.service.MPA(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get mpa rating")
		return
	}
	utils.ResponseSuccess(w, "MPA rating retrieved successfully", rating)
}
