package entity

import "time"

type Film struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	ReleaseDate time.Time  `db:"release_date"`
	Duration    int        `db:"duration"`
	MPA         MPA        `db:"mpa_id"`
	Genres      []Genre    `db:"-"`
	Directors   []Director `db:"-"`
}

// GenreIDs returns the genre ids in stored order.
func (f *Film) GenreIDs() []int64 {
	ids := make([]int64, len(f.Genres))
	for i, g := range f.Genres {
		ids[i] = g.ID
	}
	return ids
}

func (f *Film) DirectorIDs() []int64 {
	ids := make([]int64, len(f.Directors))
	for i, d := range f.Directors {
		ids[i] = d.ID
	}
	return ids
}

// FilmRank is one row of the global popularity ranking.
type FilmRank struct {
	FilmID      int64   `db:"id"`
	Likes       int64   `db:"likes"`
	ReleaseYear int     `db:"release_year"`
	GenreIDs    []int64 `db:"genre_ids"`
}

// HasGenre reports whether genreID is among the ranked film's genres.
func (r FilmRank) HasGenre(genreID int64) bool {
	for _, id := range r.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
