package wire

import (
	"filmorate/internal/adaptor"
	"filmorate/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.GetReviews)
		r.Post("/", reviewHandler.CreateReview)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", reviewHandler.GetReview)
			r.Put("/", reviewHandler.UpdateReview)
			r.Delete("/", reviewHandler.DeleteReview)

			r.Put("/like/{userId}", reviewHandler.React(entity.ReactionLike, true))
			r.Delete("/like/{userId}", reviewHandler.React(entity.ReactionLike, false))
			r.Put("/dislike/{userId}", reviewHandler.React(entity.ReactionDislike, true))
			r.Delete("/dislike/{userId}", reviewHandler.React(entity.ReactionDislike, false))
		})
	})
}
