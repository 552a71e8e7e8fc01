package entity

type Review struct {
	ID         int64  `db:"id"`
	Content    string `db:"content"`
	IsPositive bool   `db:"is_positive"`
	UserID     int64  `db:"user_id"`
	FilmID     int64  `db:"film_id"`
	Useful     int    `db:"useful"` // no floor, may go negative
}

// ReviewReaction is a like or dislike applied to a review's useful score.
type ReviewReaction string

const (
	ReactionLike    ReviewReaction = "like"
	ReactionDislike ReviewReaction = "dislike"
)

// Delta returns the useful-score change for adding (add=true) or removing the reaction.
func (r ReviewReaction) Delta(add bool) int {
	delta := 1
	if r == ReactionDislike {
		delta = -1
	}
	if !add {
		delta = -delta
	}
	return delta
}
