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

// Director film orderings accepted by FindByDirector.
const (
	SortByYear  = "year"
	SortByLikes = "likes"
)

type FilmRepository interface {
	// CRUD Film
	Create(ctx context.Context, film *entity.Film) error
	FindByID(ctx context.Context, id int64) (*entity.Film, error)
	FindAll(ctx context.Context) ([]*entity.Film, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Film, error)
	Update(ctx context.Context, film *entity.Film) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)

	// Catalog queries
	FindByDirector(ctx context.Context, directorID int64, sortBy string) ([]*entity.Film, error)
	Search(ctx context.Context, query string, byTitle, byDirector bool) ([]*entity.Film, error)
}

type filmRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFilmRepository(db database.Querier, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

const filmSelect = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration,
	       m.id, m.name, m.description
	FROM films f
	JOIN mpa m ON m.id = f.mpa_id
`

func scanFilm(row pgx.Row) (*entity.Film, error) {
	film := entity.Film{
		Genres:    []entity.Genre{},
		Directors: []entity.Director{},
	}
	err := row.Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&film.ReleaseDate,
		&film.Duration,
		&film.MPA.ID,
		&film.MPA.Name,
		&film.MPA.Description,
	)
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// Create inserts the film with its genre and director links in one transaction.
func (r *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			film.Name,
			film.Description,
			film.ReleaseDate,
			film.Duration,
			film.MPA.ID,
		).Scan(&film.ID)
		if err != nil {
			return fmt.Errorf("insert film: %w", err)
		}
		return r.writeLinks(ctx, tx, film)
	})

	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NotFound("film references unknown mpa, genre or director")
		}
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("name", film.Name),
		)
		return fmt.Errorf("create film %q: %w", film.Name, err)
	}

	return nil
}

// Update replaces the film row and all of its links.
func (r *filmRepository) Update(ctx context.Context, film *entity.Film) error {
	query := `
		UPDATE films
		SET name = $2, description = $3, release_date = $4, duration = $5, mpa_id = $6
		WHERE id = $1
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query,
			film.ID,
			film.Name,
			film.Description,
			film.ReleaseDate,
			film.Duration,
			film.MPA.ID,
		)
		if err != nil {
			return fmt.Errorf("update film: %w", err)
		}
		if result.RowsAffected() == 0 {
			return utils.NotFound("film %d", film.ID)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
			return fmt.Errorf("clear film genres: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM film_directors WHERE film_id = $1`, film.ID); err != nil {
			return fmt.Errorf("clear film directors: %w", err)
		}
		return r.writeLinks(ctx, tx, film)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrNotFound):
		return err
	case database.IsForeignKeyViolation(err):
		return utils.NotFound("film references unknown mpa, genre or director")
	}

	r.log.Error("Failed to update film",
		zap.Error(err),
		zap.Int64("film_id", film.ID),
	)
	return fmt.Errorf("update film %d: %w", film.ID, err)
}

// writeLinks stores genres keeping their order and the director set.
func (r *filmRepository) writeLinks(ctx context.Context, tx pgx.Tx, film *entity.Film) error {
	if genreIDs := film.GenreIDs(); len(genreIDs) > 0 {
		query := `
			INSERT INTO film_genres (film_id, genre_id, position)
			SELECT $1, t.genre_id, t.position
			FROM unnest($2::bigint[]) WITH ORDINALITY AS t(genre_id, position)
			ON CONFLICT (film_id, genre_id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, query, film.ID, genreIDs); err != nil {
			return fmt.Errorf("insert film genres: %w", err)
		}
	}

	if directorIDs := film.DirectorIDs(); len(directorIDs) > 0 {
		query := `
			INSERT INTO film_directors (film_id, director_id)
			SELECT $1, t.director_id
			FROM unnest($2::bigint[]) AS t(director_id)
			ON CONFLICT (film_id, director_id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, query, film.ID, directorIDs); err != nil {
			return fmt.Errorf("insert film directors: %w", err)
		}
	}

	return nil
}

func (r *filmRepository) FindByID(ctx context.Context, id int64) (*entity.Film, error) {
	film, err := scanFilm(r.db.QueryRow(ctx, filmSelect+` WHERE f.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.Int64("film_id", id),
		)
		return nil, fmt.Errorf("find film by ID %d: %w", id, err)
	}

	if err := r.attachLinks(ctx, []*entity.Film{film}); err != nil {
		return nil, err
	}
	return film, nil
}

func (r *filmRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	return r.findFilms(ctx, "find all films", filmSelect+` ORDER BY f.id`)
}

// FindByIDs loads the films and returns them in the order of ids. Unknown
// ids are skipped.
func (r *filmRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Film, error) {
	if len(ids) == 0 {
		return []*entity.Film{}, nil
	}

	films, err := r.findFilms(ctx, "find films by ids", filmSelect+` WHERE f.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*entity.Film, len(films))
	for _, film := range films {
		byID[film.ID] = film
	}

	ordered := make([]*entity.Film, 0, len(films))
	for _, id := range ids {
		if film, ok := byID[id]; ok {
			ordered = append(ordered, film)
			delete(byID, id)
		}
	}
	return ordered, nil
}

// Delete removes the film; likes, links and reviews cascade.
func (r *filmRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete film",
			zap.Error(err),
			zap.Int64("film_id", id),
		)
		return fmt.Errorf("delete film %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("film %d", id)
	}

	r.log.Info("Film deleted", zap.Int64("film_id", id))
	return nil
}

func (r *filmRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM films WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check film existence",
			zap.Error(err),
			zap.Int64("film_id", id),
		)
		return false, fmt.Errorf("check film %d: %w", id, err)
	}
	return exists, nil
}

func (r *filmRepository) FindByDirector(ctx context.Context, directorID int64, sortBy string) ([]*entity.Film, error) {
	var order string
	switch sortBy {
	case SortByYear:
		order = `ORDER BY EXTRACT(YEAR FROM f.release_date) ASC, f.id ASC`
	case SortByLikes:
		order = `ORDER BY COALESCE(l.likes, 0) DESC, f.id ASC`
	default:
		return nil, utils.BadRequest("unsupported sortBy %q", sortBy)
	}

	query := filmSelect + `
		JOIN film_directors fd ON fd.film_id = f.id
		LEFT JOIN (
			SELECT film_id, COUNT(*) AS likes FROM likes_by_users GROUP BY film_id
		) l ON l.film_id = f.id
		WHERE fd.director_id = $1
	` + order

	return r.findFilms(ctx, "find films by director", query, directorID)
}

// Search matches the query case-insensitively against titles, director names
// or both. Newest films come first.
func (r *filmRepository) Search(ctx context.Context, query string, byTitle, byDirector bool) ([]*entity.Film, error) {
	sql := filmSelect + `
		WHERE ($2 AND strpos(lower(f.name), lower($1)) > 0)
		   OR ($3 AND EXISTS (
		          SELECT 1
		          FROM film_directors fd
		          JOIN directors d ON d.id = fd.director_id
		          WHERE fd.film_id = f.id AND strpos(lower(d.name), lower($1)) > 0
		      ))
		ORDER BY f.id DESC
	`

	return r.findFilms(ctx, "search films", sql, query, byTitle, byDirector)
}

// findFilms runs a filmSelect based query and attaches links to every row.
func (r *filmRepository) findFilms(ctx context.Context, op, query string, args ...any) ([]*entity.Film, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query films", zap.String("op", op), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	films := make([]*entity.Film, 0)
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			r.log.Error("Failed to scan film", zap.String("op", op), zap.Error(err))
			return nil, fmt.Errorf("%s: scan film: %w", op, err)
		}
		films = append(films, film)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate films: %w", op, err)
	}
	rows.Close()

	if err := r.attachLinks(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// attachLinks loads genres and directors for all films in two queries.
func (r *filmRepository) attachLinks(ctx context.Context, films []*entity.Film) error {
	if len(films) == 0 {
		return nil
	}

	ids := make([]int64, len(films))
	byID := make(map[int64]*entity.Film, len(films))
	for i, film := range films {
		ids[i] = film.ID
		byID[film.ID] = film
	}

	genreQuery := `
		SELECT fg.film_id, g.id, g.name
		FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY fg.film_id, fg.position
	`
	rows, err := r.db.Query(ctx, genreQuery, ids)
	if err != nil {
		r.log.Error("Failed to load film genres", zap.Error(err))
		return fmt.Errorf("load film genres: %w", err)
	}
	for rows.Next() {
		var filmID int64
		var genre entity.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			rows.Close()
			return fmt.Errorf("scan film genre: %w", err)
		}
		byID[filmID].Genres = append(byID[filmID].Genres, genre)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate film genres: %w", err)
	}

	directorQuery := `
		SELECT fd.film_id, d.id, d.name
		FROM film_directors fd
		JOIN directors d ON d.id = fd.director_id
		WHERE fd.film_id = ANY($1)
		ORDER BY fd.film_id, d.id
	`
	rows, err = r.db.Query(ctx, directorQuery, ids)
	if err != nil {
		r.log.Error("Failed to load film directors", zap.Error(err))
		return fmt.Errorf("load film directors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int64
		var director entity.Director
		if err := rows.Scan(&filmID, &director.ID, &director.Name); err != nil {
			return fmt.Errorf("scan film director: %w", err)
		}
		byID[filmID].Directors = append(byID[filmID].Directors, director)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate film directors: %w", err)
	}
	return nil
}
