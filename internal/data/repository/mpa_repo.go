package repository

import (
	"context"
	"errors"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MPARepository interface {
	FindAll(ctx context.Context) ([]*entity.MPA, error)
	FindByID(ctx context.Context, id int64) (*entity.MPA, error)
}

type mpaRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMPARepository(db database.Querier, log *zap.Logger) MPARepository {
	return &mpaRepository{
		db:  db,
		log: log.With(zap.String("repository", "mpa")),
	}
}

func (r *mpaRepository) FindAll(ctx context.Context) ([]*entity.MPA, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM mpa ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to find mpa ratings", zap.Error(err))
		return nil, fmt.Errorf("find mpa: %w", err)
	}
	defer rows.Close()

	ratings := make([]*entity.MPA, 0)
	for rows.Next() {
		var mpa entity.MPA
		if err := rows.Scan(&mpa.ID, &mpa.Name, &mpa.Description); err != nil {
			return nil, fmt.Errorf("scan mpa: %w", err)
		}
		ratings = append(ratings, &mpa)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mpa: %w", err)
	}
	return ratings, nil
}

func (r *mpaRepository) FindByID(ctx context.Context, id int64) (*entity.MPA, error) {
	var mpa entity.MPA
	err := r.db.QueryRow(ctx, `SELECT id, name, description FROM mpa WHERE id = $1`, id).Scan(
		&mpa.ID,
		&mpa.Name,
		&mpa.Description,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find mpa by ID",
			zap.Error(err),
			zap.Int64("mpa_id", id),
		)
		return nil, fmt.Errorf("find mpa by id: %w", err)
	}

	return &mpa, nil
}
