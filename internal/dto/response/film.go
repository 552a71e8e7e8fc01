package response

import (
	"filmorate/internal/data/entity"
	"filmorate/pkg/utils"
)

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MPAResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DirectorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FilmResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ReleaseDate string             `json:"releaseDate"`
	Duration    int                `json:"duration"`
	MPA         MPAResponse        `json:"mpa"`
	Genres      []GenreResponse    `json:"genres"`
	Directors   []DirectorResponse `json:"directors"`
}

func FilmToResponse(film *entity.Film) FilmResponse {
	genres := make([]GenreResponse, 0, len(film.Genres))
	for _, g := range film.Genres {
		genres = append(genres, GenreResponse{ID: g.ID, Name: g.Name})
	}

	directors := make([]DirectorResponse, 0, len(film.Directors))
	for _, d := range film.Directors {
		directors = append(directors, DirectorResponse{ID: d.ID, Name: d.Name})
	}

	return FilmResponse{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate.Format(utils.DateLayout),
		Duration:    film.Duration,
		MPA:         MPAToResponse(&film.MPA),
		Genres:      genres,
		Directors:   directors,
	}
}

func FilmsToResponse(films []*entity.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, FilmToResponse(f))
	}
	return out
}

func MPAToResponse(mpa *entity.MPA) MPAResponse {
	return MPAResponse{ID: mpa.ID, Name: mpa.Name, Description: mpa.Description}
}

func MPAsToResponse(ratings []*entity.MPA) []MPAResponse {
	out := make([]MPAResponse, 0, len(ratings))
	for _, m := range ratings {
		out = append(out, MPAToResponse(m))
	}
	return out
}

func GenresToResponse(genres []*entity.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreResponse{ID: g.ID, Name: g.Name})
	}
	return out
}

func DirectorToResponse(director *entity.Director) DirectorResponse {
	return DirectorResponse{ID: director.ID, Name: director.Name}
}

func DirectorsToResponse(directors []*entity.Director) []DirectorResponse {
	out := make([]DirectorResponse, 0, len(directors))
	for _, d := range directors {
		out = append(out, DirectorToResponse(d))
	}
	return out
}
