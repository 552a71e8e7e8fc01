package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// LikeRepository is the film side of the like graph.
type LikeRepository interface {
	Add(ctx context.Context, filmID, userID int64) error
	Remove(ctx context.Context, filmID, userID int64) error

	// Overlaps lists every other user sharing at least one liked film with
	// userID, by shared count DESC then user id ASC.
	Overlaps(ctx context.Context, userID int64) ([]entity.Overlap, error)
	// RecommendedFilmIDs returns films peerID likes and userID does not.
	RecommendedFilmIDs(ctx context.Context, userID, peerID int64) ([]int64, error)
	// CommonFilmIDs returns films both users like, most liked first.
	CommonFilmIDs(ctx context.Context, userID, friendID int64) ([]int64, error)
	// Ranking returns every film with its like count, most liked first.
	Ranking(ctx context.Context) ([]entity.FilmRank, error)
}

type likeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewLikeRepository(db database.Querier, log *zap.Logger) LikeRepository {
	return &likeRepository{
		db:  db,
		log: log.With(zap.String("repository", "like")),
	}
}

func (r *likeRepository) Add(ctx context.Context, filmID, userID int64) error {
	query := `
		INSERT INTO likes_by_users (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (film_id, user_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, filmID, userID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NotFound("film %d or user %d", filmID, userID)
		}
		r.log.Error("Failed to add like",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Int64("user_id", userID),
		)
		return fmt.Errorf("add like film %d user %d: %w", filmID, userID, err)
	}

	return nil
}

func (r *likeRepository) Remove(ctx context.Context, filmID, userID int64) error {
	query := `DELETE FROM likes_by_users WHERE film_id = $1 AND user_id = $2`

	if _, err := r.db.Exec(ctx, query, filmID, userID); err != nil {
		r.log.Error("Failed to remove like",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Int64("user_id", userID),
		)
		return fmt.Errorf("remove like film %d user %d: %w", filmID, userID, err)
	}

	return nil
}

func (r *likeRepository) Overlaps(ctx context.Context, userID int64) ([]entity.Overlap, error) {
	query := `
		SELECT other.user_id, COUNT(*) AS shared
		FROM likes_by_users mine
		JOIN likes_by_users other
		  ON other.film_id = mine.film_id AND other.user_id <> mine.user_id
		WHERE mine.user_id = $1
		GROUP BY other.user_id
		ORDER BY shared DESC, other.user_id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find like overlaps",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find overlaps for user %d: %w", userID, err)
	}
	defer rows.Close()

	overlaps := make([]entity.Overlap, 0)
	for rows.Next() {
		var o entity.Overlap
		if err := rows.Scan(&o.UserID, &o.Shared); err != nil {
			return nil, fmt.Errorf("scan overlap: %w", err)
		}
		overlaps = append(overlaps, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlaps: %w", err)
	}
	return overlaps, nil
}

func (r *likeRepository) RecommendedFilmIDs(ctx context.Context, userID, peerID int64) ([]int64, error) {
	query := `
		SELECT p.film_id
		FROM likes_by_users p
		WHERE p.user_id = $2
		  AND NOT EXISTS (
		      SELECT 1 FROM likes_by_users u
		      WHERE u.user_id = $1 AND u.film_id = p.film_id
		  )
		ORDER BY p.film_id
	`

	rows, err := r.db.Query(ctx, query, userID, peerID)
	if err != nil {
		r.log.Error("Failed to find recommended films",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("peer_id", peerID),
		)
		return nil, fmt.Errorf("find recommendations for user %d: %w", userID, err)
	}

	return collectIDs(rows)
}

func (r *likeRepository) CommonFilmIDs(ctx context.Context, userID, friendID int64) ([]int64, error) {
	query := `
		SELECT a.film_id
		FROM likes_by_users a
		JOIN likes_by_users b ON b.film_id = a.film_id AND b.user_id = $2
		JOIN (
			SELECT film_id, COUNT(*) AS likes FROM likes_by_users GROUP BY film_id
		) l ON l.film_id = a.film_id
		WHERE a.user_id = $1
		ORDER BY l.likes DESC, a.film_id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, friendID)
	if err != nil {
		r.log.Error("Failed to find common films",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("friend_id", friendID),
		)
		return nil, fmt.Errorf("find common films of %d and %d: %w", userID, friendID, err)
	}

	return collectIDs(rows)
}

func (r *likeRepository) Ranking(ctx context.Context) ([]entity.FilmRank, error) {
	query := `
		SELECT f.id,
		       COALESCE(l.likes, 0) AS likes,
		       EXTRACT(YEAR FROM f.release_date)::int AS release_year,
		       ARRAY(
		           SELECT fg.genre_id FROM film_genres fg
		           WHERE fg.film_id = f.id
		           ORDER BY fg.position
		       ) AS genre_ids
		FROM films f
		LEFT JOIN (
			SELECT film_id, COUNT(*) AS likes FROM likes_by_users GROUP BY film_id
		) l ON l.film_id = f.id
		ORDER BY likes DESC, f.id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load film ranking", zap.Error(err))
		return nil, fmt.Errorf("load ranking: %w", err)
	}
	defer rows.Close()

	ranking := make([]entity.FilmRank, 0)
	for rows.Next() {
		var rank entity.FilmRank
		if err := rows.Scan(&rank.FilmID, &rank.Likes, &rank.ReleaseYear, &rank.GenreIDs); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		ranking = append(ranking, rank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranking: %w", err)
	}
	return ranking, nil
}
