package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)
		r.Post("/", userHandler.CreateUser)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", userHandler.GetUser)
			r.Put("/", userHandler.UpdateUser)
			r.Delete("/", userHandler.DeleteUser)

			// friendship edges are directed: id -> friendId
			r.Get("/friends", userHandler.GetFriends)
			r.Put("/friends/{friendId}", userHandler.AddFriend)
			r.Delete("/friends/{friendId}", userHandler.RemoveFriend)
			r.Get("/friends/common/{otherId}", userHandler.GetCommonFriends)

			r.Get("/feed", userHandler.GetFeed)
			r.Get("/recommendations", userHandler.GetRecommendations)
		})
	})
}
