// Package repository declares the storage accessors for users, movies and reviews.
// Implementations live in mongostore (document store) and sqlstore (embedded SQLite).
package repository

import (
	"context"
	"errors"

	"github.com/isdelr/reelreview-be/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository stores accounts. Usernames are unique.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// MovieRepository stores movies. Titles are unique.
// List and Search return movies in insertion order.
type MovieRepository interface {
	List(ctx context.Context) ([]models.Movie, error)
	FindByID(ctx context.Context, id string) (models.Movie, error)
	FindByTitle(ctx context.Context, title string) (models.Movie, error)
	Create(ctx context.Context, movie models.Movie) (models.Movie, error)
	Update(ctx context.Context, movie models.Movie) (models.Movie, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]models.Movie, error)
}

// ReviewRepository stores reviews. It does not check that the movie exists.
type ReviewRepository interface {
	Create(ctx context.Context, review models.Review) (models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	ListByMovieIDs(ctx context.Context, movieIDs ...string) ([]models.Review, error)
}
