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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	// List returns up to limit reviews, optionally of one film, most useful first.
	List(ctx context.Context, filmID *int64, limit int) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id int64) error

	// AdjustUseful adds delta to the useful score and returns the new value.
	AdjustUseful(ctx context.Context, id int64, delta int) (int, error)
}

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.Querier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, content, is_positive, user_id, film_id, useful`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.Content,
		&review.IsPositive,
		&review.UserID,
		&review.FilmID,
		&review.Useful,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (content, is_positive, user_id, film_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, useful
	`

	err := r.db.QueryRow(ctx, query,
		review.Content,
		review.IsPositive,
		review.UserID,
		review.FilmID,
	).Scan(&review.ID, &review.Useful)

	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NotFound("user %d or film %d", review.UserID, review.FilmID)
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.Int64("film_id", review.FilmID),
		)
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review by id %d: %w", id, err)
	}

	return review, nil
}

func (r *reviewRepository) List(ctx context.Context, filmID *int64, limit int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE ($1::bigint IS NULL OR film_id = $1)
		ORDER BY useful DESC, id ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, filmID, limit)
	if err != nil {
		r.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*entity.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

// Update replaces content and is_positive and reloads the stored row, so
// review carries the real author, film and useful score afterwards.
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET content = $2, is_positive = $3
		WHERE id = $1
		RETURNING ` + reviewColumns

	updated, err := scanReview(r.db.QueryRow(ctx, query, review.ID, review.Content, review.IsPositive))
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFound("review %d", review.ID)
	}
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}

	*review = *updated
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("review %d", id)
	}
	return nil
}

func (r *reviewRepository) AdjustUseful(ctx context.Context, id int64, delta int) (int, error) {
	var useful int
	err := r.db.QueryRow(ctx,
		`UPDATE reviews SET useful = useful + $2 WHERE id = $1 RETURNING useful`,
		id, delta,
	).Scan(&useful)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, utils.NotFound("review %d", id)
	}
	if err != nil {
		r.log.Error("Failed to adjust review useful score",
			zap.Error(err),
			zap.Int64("review_id", id),
			zap.Int("delta", delta),
		)
		return 0, fmt.Errorf("adjust useful of review %d: %w", id, err)
	}

	return useful, nil
}
