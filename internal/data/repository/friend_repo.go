package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// FriendRepository stores directed friendship edges user -> friend.
type FriendRepository interface {
	Add(ctx context.Context, userID, friendID int64) error
	Remove(ctx context.Context, userID, friendID int64) error
	FindFriends(ctx context.Context, userID int64) ([]*entity.User, error)
	FindCommon(ctx context.Context, userID, otherID int64) ([]*entity.User, error)
}

type friendRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFriendRepository(db database.Querier, log *zap.Logger) FriendRepository {
	return &friendRepository{
		db:  db,
		log: log.With(zap.String("repository", "friend")),
	}
}

// Add inserts the edge; an existing edge is left untouched.
func (r *friendRepository) Add(ctx context.Context, userID, friendID int64) error {
	query := `
		INSERT INTO friends (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, userID, friendID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NotFound("user %d or %d", userID, friendID)
		}
		r.log.Error("Failed to add friend",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("friend_id", friendID),
		)
		return fmt.Errorf("add friend %d for user %d: %w", friendID, userID, err)
	}

	return nil
}

// Remove deletes the edge if present.
func (r *friendRepository) Remove(ctx context.Context, userID, friendID int64) error {
	query := `DELETE FROM friends WHERE user_id = $1 AND friend_id = $2`

	result, err := r.db.Exec(ctx, query, userID, friendID)
	if err != nil {
		r.log.Error("Failed to remove friend",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("friend_id", friendID),
		)
		return fmt.Errorf("remove friend %d for user %d: %w", friendID, userID, err)
	}

	r.log.Debug("Friend removed",
		zap.Int64("user_id", userID),
		zap.Int64("friend_id", friendID),
		zap.Int64("rows", result.RowsAffected()),
	)
	return nil
}

func (r *friendRepository) FindFriends(ctx context.Context, userID int64) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN friends f ON f.friend_id = u.id
		WHERE f.user_id = $1
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find friends",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find friends of user %d: %w", userID, err)
	}

	return collectUsers(rows)
}

// FindCommon intersects the outbound friend sets of both users.
func (r *friendRepository) FindCommon(ctx context.Context, userID, otherID int64) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN friends f ON f.friend_id = u.id AND f.user_id = $1
		JOIN friends o ON o.friend_id = u.id AND o.user_id = $2
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, userID, otherID)
	if err != nil {
		r.log.Error("Failed to find common friends",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("other_id", otherID),
		)
		return nil, fmt.Errorf("find common friends of %d and %d: %w", userID, otherID, err)
	}

	return collectUsers(rows)
}
