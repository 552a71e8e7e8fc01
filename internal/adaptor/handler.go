package adaptor

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	User     *UserHandler
	Film     *FilmHandler
	Director *DirectorHandler
	Review   *ReviewHandler
	Catalog  *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:     NewUserHandler(service, log),
		Film:     NewFilmHandler(service, log),
		Director: NewDirectorHandler(service.Director, log),
		Review:   NewReviewHandler(service.Review, log),
		Catalog:  NewCatalogHandler(service.Catalog, log),
	}
}

// handleServiceError maps service errors to HTTP responses. A feed write
// failure is checked first since the mutation it follows was committed.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case utils.IsFeedWriteError(err):
		log.Error(operation+" failed - feed write",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, operation+" succeeded but the feed event was not recorded")

	case errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, utils.ErrBadRequest):
		log.Warn(operation+" failed - bad request",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// pathID reads a positive id from the chi route parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	return utils.ParseID(chi.URLParam(r, name), name)
}

// queryCount parses a positive count query parameter, def when absent.
func queryCount(r *http.Request, name string, def int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return def, nil
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, utils.BadRequest("invalid %s: %q", name, value)
	}
	if count <= 0 {
		return 0, utils.BadRequest("%s must be positive, got %d", name, count)
	}
	return count, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := utils.DecodeJSON(r, dst); err != nil {
		return utils.BadRequest("invalid request body: %v", err)
	}
	return nil
}
