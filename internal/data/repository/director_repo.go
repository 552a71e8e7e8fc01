package repository

import (
	"context"
	"errors"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"
	"filmorate/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DirectorRepository interface {
	Create(ctx context.Context, director *entity.Director) error
	FindByID(ctx context.Context, id int64) (*entity.Director, error)
	FindAll(ctx context.Context) ([]*entity.Director, error)
	Update(ctx context.Context, director *entity.Director) error
	Delete(ctx context.Context, id int64) error
	FindMissing(ctx context.Context, ids []int64) ([]int64, error)
}

type directorRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewDirectorRepository(db database.Querier, log *zap.Logger) DirectorRepository {
	return &directorRepository{
		db:  db,
		log: log.With(zap.String("repository", "director")),
	}
}

func (r *directorRepository) Create(ctx context.Context, director *entity.Director) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO directors (name) VALUES ($1) RETURNING id`,
		director.Name,
	).Scan(&director.ID)

	if err != nil {
		r.log.Error("Failed to create director",
			zap.Error(err),
			zap.String("name", director.Name),
		)
		return fmt.Errorf("create director %q: %w", director.Name, err)
	}

	return nil
}

func (r *directorRepository) FindByID(ctx context.Context, id int64) (*entity.Director, error) {
	var director entity.Director
	err := r.db.QueryRow(ctx, `SELECT id, name FROM directors WHERE id = $1`, id).Scan(
		&director.ID,
		&director.Name,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find director by ID",
			zap.Error(err),
			zap.Int64("director_id", id),
		)
		return nil, fmt.Errorf("find director by id %d: %w", id, err)
	}

	return &director, nil
}

func (r *directorRepository) FindAll(ctx context.Context) ([]*entity.Director, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM directors ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to find directors", zap.Error(err))
		return nil, fmt.Errorf("find directors: %w", err)
	}
	defer rows.Close()

	directors := make([]*entity.Director, 0)
	for rows.Next() {
		var director entity.Director
		if err := rows.Scan(&director.ID, &director.Name); err != nil {
			return nil, fmt.Errorf("scan director: %w", err)
		}
		directors = append(directors, &director)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate directors: %w", err)
	}
	return directors, nil
}

func (r *directorRepository) Update(ctx context.Context, director *entity.Director) error {
	result, err := r.db.Exec(ctx,
		`UPDATE directors SET name = $2 WHERE id = $1`,
		director.ID,
		director.Name,
	)
	if err != nil {
		r.log.Error("Failed to update director",
			zap.Error(err),
			zap.Int64("director_id", director.ID),
		)
		return fmt.Errorf("update director %d: %w", director.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("director %d", director.ID)
	}
	return nil
}

// Delete unlinks the director from its films before removing the row.
func (r *directorRepository) Delete(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM film_directors WHERE director_id = $1`, id); err != nil {
			return fmt.Errorf("unlink director: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM directors WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete director: %w", err)
		}
		if result.RowsAffected() == 0 {
			return utils.NotFound("director %d", id)
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			r.log.Error("Failed to delete director",
				zap.Error(err),
				zap.Int64("director_id", id),
			)
		}
		return err
	}

	r.log.Info("Director deleted", zap.Int64("director_id", id))
	return nil
}

func (r *directorRepository) FindMissing(ctx context.Context, ids []int64) ([]int64, error) {
	missing, err := findMissing(ctx, r.db, "directors", ids)
	if err != nil {
		r.log.Error("Failed to check directors", zap.Error(err), zap.Int64s("director_ids", ids))
		return nil, err
	}
	return missing, nil
}
