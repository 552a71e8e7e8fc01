package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFilm(r chi.Router, filmHandler *adaptor.FilmHandler) {
	r.Route("/api/films", func(r chi.Router) {
		r.Get("/", filmHandler.GetFilms)
		r.Post("/", filmHandler.CreateFilm)

		// static segments win over {id} in chi
		r.Get("/popular", filmHandler.GetPopular)
		r.Get("/common", filmHandler.GetCommon)
		r.Get("/search", filmHandler.Search)
		r.Get("/director/{directorId}", filmHandler.GetByDirector)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", filmHandler.GetFilm)
			r.Put("/", filmHandler.UpdateFilm)
			r.Delete("/", filmHandler.DeleteFilm)

			r.Put("/like/{userId}", filmHandler.AddLike)
			r.Delete("/like/{userId}", filmHandler.RemoveLike)
		})
	})
}

func wireDirector(r chi.Router, directorHandler *adaptor.DirectorHandler) {
	r.Route("/api/directors", func(r chi.Router) {
		r.Get("/", directorHandler.GetDirectors)
		r.Post("/", directorHandler.CreateDirector)
		r.Get("/{id}", directorHandler.GetDirector)
		r.Put("/{id}", directorHandler.UpdateDirector)
		r.Delete("/{id}", directorHandler.DeleteDirector)
	})
}

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/api/genres", catalogHandler.GetGenres)
	r.Get("/api/genres/{id}", catalogHandler.GetGenre)
	r.Get("/api/mpa", catalogHandler.GetMPAs)
	r.Get("/api/mpa/{id}", catalogHandler.GetMPA)
}
