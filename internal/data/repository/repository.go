package repository

import (
	"context"
	"fmt"

	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Friend   FriendRepository
	Film     FilmRepository
	Genre    GenreRepository
	MPA      MPARepository
	Director DirectorRepository
	Like     LikeRepository
	Review   ReviewRepository
	Feed     FeedRepository
}

func NewRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Friend:   NewFriendRepository(db, log),
		Film:     NewFilmRepository(db, log),
		Genre:    NewGenreRepository(db, log),
		MPA:      NewMPARepository(db, log),
		Director: NewDirectorRepository(db, log),
		Like:     NewLikeRepository(db, log),
		Review:   NewReviewRepository(db, log),
		Feed:     NewFeedRepository(db, log),
	}
}

// findMissing returns the ids with no row in table, ascending. table must be
// a trusted identifier.
func findMissing(ctx context.Context, db database.Querier, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT t.id
		FROM unnest($1::bigint[]) AS t(id)
		WHERE NOT EXISTS (SELECT 1 FROM %s x WHERE x.id = t.id)
		ORDER BY t.id
	`, table)

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("find missing %s: %w", table, err)
	}

	missing, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("find missing %s: %w", table, err)
	}
	return missing, nil
}

// collectIDs drains a single bigint column.
func collectIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}
