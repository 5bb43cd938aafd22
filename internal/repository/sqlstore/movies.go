package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
)

const movieColumns = "id, title, release_year, genre, actors_json, image_url"

// MovieStore implements repository.MovieRepository.
type MovieStore struct {
	db *sql.DB
}

// NewMovieStore creates a new MovieStore.
func NewMovieStore(db *sql.DB) *MovieStore {
	return &MovieStore{db: db}
}

func scanMovie(row scanner) (models.Movie, error) {
	var movie models.Movie
	var genre, actorsJSON, imageURL sql.NullString
	var year sql.NullInt64

	err := row.Scan(&movie.ID, &movie.Title, &year, &genre, &actorsJSON, &imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Movie{}, repository.ErrNotFound
		}
		return models.Movie{}, err
	}

	movie.ReleaseYear = int(year.Int64)
	movie.Genre = models.Genre(genre.String)
	movie.ImageURL = imageURL.String
	if actorsJSON.String != "" {
		if err := json.Unmarshal([]byte(actorsJSON.String), &movie.Actors); err != nil {
			return models.Movie{}, fmt.Errorf("decode actors of movie %s: %w", movie.ID, err)
		}
	}
	return movie, nil
}

func (s *MovieStore) query(ctx context.Context, query string, args ...interface{}) ([]models.Movie, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// List returns all movies in insertion order.
func (s *MovieStore) List(ctx context.Context) ([]models.Movie, error) {
	return s.query(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY rowid")
}

// FindByID retrieves a single movie by id.
func (s *MovieStore) FindByID(ctx context.Context, id string) (models.Movie, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id)
	return scanMovie(row)
}

// FindByTitle retrieves a single movie by its exact title.
func (s *MovieStore) FindByTitle(ctx context.Context, title string) (models.Movie, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE title = ?", title)
	return scanMovie(row)
}

// Create inserts a movie with a fresh id.
func (s *MovieStore) Create(ctx context.Context, movie models.Movie) (models.Movie, error) {
	movie.ID = uuid.New().String()
	actorsJSON, err := json.Marshal(movie.Actors)
	if err != nil {
		return models.Movie{}, err
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO movies(id, title, release_year, genre, actors_json, image_url)
		VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Movie{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, movie.ID, movie.Title, movie.ReleaseYear, string(movie.Genre), string(actorsJSON), movie.ImageURL)
	if err != nil {
		return models.Movie{}, fmt.Errorf("insert movie: %w", translate(err))
	}
	return movie, nil
}

// Update replaces every field of an existing movie.
func (s *MovieStore) Update(ctx context.Context, movie models.Movie) (models.Movie, error) {
	actorsJSON, err := json.Marshal(movie.Actors)
	if err != nil {
		return models.Movie{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE movies SET title = ?, release_year = ?, genre = ?, actors_json = ?, image_url = ?
		WHERE id = ?`,
		movie.Title, movie.ReleaseYear, string(movie.Genre), string(actorsJSON), movie.ImageURL, movie.ID,
	)
	if err != nil {
		return models.Movie{}, fmt.Errorf("update movie %s: %w", movie.ID, translate(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Movie{}, repository.ErrNotFound
	}
	return s.FindByID(ctx, movie.ID)
}

// Delete removes a movie. Its reviews are left in place.
func (s *MovieStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Search returns movies whose title or any actor name contains query, ignoring case.
// The cast lives in a JSON column, so matching happens after the scan.
func (s *MovieStore) Search(ctx context.Context, query string) ([]models.Movie, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Movie{}
	for _, m := range all {
		if m.Matches(query) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}
