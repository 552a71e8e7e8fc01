package adaptor

import (
	"net/http"

	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type DirectorHandler struct {
	service usecase.DirectorService
	log     *zap.Logger
}

func NewDirectorHandler(service usecase.DirectorService, log *zap.Logger) *DirectorHandler {
	return &DirectorHandler{
		service: service,
		log:     log.With(zap.String("handler", "director")),
	}
}

// GetDirectors handles GET /api/directors
func (h *DirectorHandler) GetDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.service.FindAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get directors")
		return
	}
	utils.ResponseSuccess(w, "Directors retrieved successfully", directors)
}

// GetDirector handles GET /api/directors/{id}
func (h *DirectorHandler) GetDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get director")
		return
	}

	director, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get director")
		return
	}
	utils.ResponseSuccess(w, "Director retrieved successfully", director)
}

// CreateDirector handles POST /api/directors
func (h *DirectorHandler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var req request.DirectorRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create director")
		return
	}

	director, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create director")
		return
	}
	utils.ResponseCreated(w, "Director created successfully", director)
}

// UpdateDirector handles PUT /api/directors/{id}
func (h *DirectorHandler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update director")
		return
	}

	var req request.DirectorRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update director")
		return
	}

	director, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update director")
		return
	}
	utils.ResponseSuccess(w, "Director updated successfully", director)
}

// DeleteDirector handles DELETE /api/directors/{id}
func (h *DirectorHandler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "delete director")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete director")
		return
	}
	utils.ResponseSuccess(w, "Director deleted successfully", nil)
}
