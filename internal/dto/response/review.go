package response

import "filmorate/internal/data/entity"

type ReviewResponse struct {
	ReviewID   int64  `json:"reviewId"`
	Content    string `json:"content"`
	IsPositive bool   `json:"isPositive"`
	UserID     int64  `json:"userId"`
	FilmID     int64  `json:"filmId"`
	Useful     int    `json:"useful"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ReviewID:   review.ID,
		Content:    review.Content,
		IsPositive: review.IsPositive,
		UserID:     review.UserID,
		FilmID:     review.FilmID,
		Useful:     review.Useful,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewToResponse(r))
	}
	return out
}
