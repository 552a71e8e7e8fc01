package usecase

import "filmorate/internal/data/entity"

// DefaultPopularCount is used when the caller gives no count.
const DefaultPopularCount = 10

// PopularQuery selects a popular-films list. Nil filters are not applied.
type PopularQuery struct {
	Count   int
	GenreID *int64
	Year    *int64
}

func (q PopularQuery) filtered() bool {
	return q.GenreID != nil || q.Year != nil
}

func (q PopularQuery) matches(rank entity.FilmRank) bool {
	if q.GenreID != nil && !rank.HasGenre(*q.GenreID) {
		return false
	}
	if q.Year != nil && int64(rank.ReleaseYear) != *q.Year {
		return false
	}
	return true
}

// rankPopular keeps at most q.Count ids from ranking, which must be ordered
// by likes DESC then film id ASC. Filters keep that order. Zero-like films
// fill the list only when no filter is set.
func rankPopular(ranking []entity.FilmRank, q PopularQuery) []int64 {
	ids := make([]int64, 0, min(q.Count, len(ranking)))
	for _, rank := range ranking {
		if len(ids) == q.Count {
			break
		}
		if rank.Likes == 0 && q.filtered() {
			break
		}
		if q.matches(rank) {
			ids = append(ids, rank.FilmID)
		}
	}
	return ids
}

// pickPeer chooses the user sharing the most liked films with userID, lowest
// id on ties. ok is false when nobody qualifies.
func pickPeer(userID int64, overlaps []entity.Overlap) (peerID int64, ok bool) {
	var best entity.Overlap
	for _, o := range overlaps {
		if o.UserID == userID || o.Shared <= 0 {
			continue
		}
		if !ok || o.Shared > best.Shared || (o.Shared == best.Shared && o.UserID < best.UserID) {
			best = o
			ok = true
		}
	}
	return best.UserID, ok
}
