package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/reelreview-be/internal/models"
)

const reviewColumns = "id, movie_id, username, rating, review_text, created_at"

// ReviewStore implements repository.ReviewRepository.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

func (s *ReviewStore) query(ctx context.Context, query string, args ...interface{}) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.MovieID, &r.Username, &r.Rating, &r.ReviewText, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Create inserts a review with a fresh id.
func (s *ReviewStore) Create(ctx context.Context, review models.Review) (models.Review, error) {
	review.ID = uuid.New().String()

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO reviews(id, movie_id, username, rating, review_text) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Review{}, err
	}
	defer stmt.Close()

	if _, err = stmt.ExecContext(ctx, review.ID, review.MovieID, review.Username, review.Rating, review.ReviewText); err != nil {
		return models.Review{}, fmt.Errorf("insert review: %w", translate(err))
	}

	reviews, err := s.query(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = ?", review.ID)
	if err != nil {
		return models.Review{}, err
	}
	if len(reviews) == 1 {
		return reviews[0], nil
	}
	return review, nil
}

// List returns every review in insertion order.
func (s *ReviewStore) List(ctx context.Context) ([]models.Review, error) {
	return s.query(ctx, "SELECT "+reviewColumns+" FROM reviews ORDER BY rowid")
}

// ListByMovieIDs returns the reviews referencing any of movieIDs, in insertion order.
func (s *ReviewStore) ListByMovieIDs(ctx context.Context, movieIDs ...string) ([]models.Review, error) {
	if len(movieIDs) == 0 {
		return []models.Review{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(movieIDs)), ", ")
	args := make([]interface{}, len(movieIDs))
	for i, id := range movieIDs {
		args[i] = id
	}
	return s.query(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE movie_id IN ("+placeholders+") ORDER BY rowid", args...)
}
