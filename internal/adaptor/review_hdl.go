package adaptor

import (
	"net/http"

	"filmorate/internal/data/entity"
	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetReviews handles GET /api/reviews?filmId&count
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	filmID, err := utils.ParseOptionalInt(r.URL.Query().Get("filmId"), "filmId")
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews")
		return
	}
	count, err := queryCount(r, "count", usecase.DefaultReviewCount)
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews")
		return
	}

	reviews, err := h.service.List(r.Context(), filmID, count)
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews")
		return
	}
	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// GetReview handles GET /api/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	review, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}
	utils.ResponseSuccess(w, "Review retrieved successfully", review)
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	review, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}
	utils.ResponseCreated(w, "Review created successfully", review)
}

// UpdateReview handles PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	var req request.UpdateReviewRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	review, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}
	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}
	utils.ResponseSuccess(w, "Review deleted successfully", nil)
}

// React returns a handler for PUT or DELETE /api/reviews/{id}/{like|dislike}/{userId}.
func (h *ReviewHandler) React(reaction entity.ReviewReaction, add bool) http.HandlerFunc {
	operation := "add review " + string(reaction)
	if !add {
		operation = "remove review " + string(reaction)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := pathID(r, "id")
		if err != nil {
			handleServiceError(w, h.log, err, operation)
			return
		}
		userID, err := pathID(r, "userId")
		if err != nil {
			handleServiceError(w, h.log, err, operation)
			return
		}

		review, err := h.service.React(r.Context(), reviewID, userID, reaction, add)
		if err != nil {
			handleServiceError(w, h.log, err, operation)
			return
		}
		utils.ResponseSuccess(w, "Review reaction updated", review)
	}
}
