package request

type CreateReviewRequest struct {
	Content    string `json:"content" validate:"required"`
	IsPositive *bool  `json:"isPositive" validate:"required"`
	UserID     int64  `json:"userId" validate:"required,gt=0"`
	FilmID     int64  `json:"filmId" validate:"required,gt=0"`
}

// UpdateReviewRequest replaces content and sentiment; author and film stay.
type UpdateReviewRequest struct {
	Content    string `json:"content" validate:"required"`
	IsPositive *bool  `json:"isPositive" validate:"required"`
}
