package request

// IDRef references an existing catalog row by id, e.g. {"id": 1}.
type IDRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type FilmRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"description"`
	ReleaseDate string  `json:"releaseDate" validate:"required,datetime=2006-01-02,releasedate"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	MPA         *IDRef  `json:"mpa" validate:"required"`
	Genres      []IDRef `json:"genres,omitempty" validate:"dive"`
	Directors   []IDRef `json:"directors,omitempty" validate:"dive"`
}

type DirectorRequest struct {
	Name string `json:"name" validate:"required"`
}
