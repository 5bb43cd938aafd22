package services

import (
	"context"
	"errors"

	"github.com/isdelr/reelreview-be/internal/apperr"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
)

// MovieServiceProvider defines the interface for movie services.
type MovieServiceProvider interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (models.Movie, error)
	GetMovieByTitle(ctx context.Context, title string) (models.Movie, error)
	CreateMovie(ctx context.Context, movie models.Movie) (models.Movie, error)
	UpdateMovie(ctx context.Context, id string, patch models.MoviePatch) (models.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
	SearchMovies(ctx context.Context, query string) ([]models.Movie, error)
}

// MovieService provides business logic for the movie catalog.
type MovieService struct {
	movies repository.MovieRepository
}

// NewMovieService creates a new MovieService.
func NewMovieService(movies repository.MovieRepository) *MovieService {
	return &MovieService{movies: movies}
}

func movieLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("movie not found")
	}
	return apperr.Internal(err, "failed to load movie")
}

func movieWriteError(err error, title string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("a movie titled %q already exists", title)
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("movie not found")
	}
	return apperr.Internal(err, "failed to save movie")
}

// ListMovies returns every movie.
func (s *MovieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list movies")
	}
	return movies, nil
}

// GetMovie retrieves a single movie by its ID.
func (s *MovieService) GetMovie(ctx context.Context, id string) (models.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return models.Movie{}, movieLookupError(err)
	}
	return movie, nil
}

// GetMovieByTitle retrieves a single movie by its exact title.
func (s *MovieService) GetMovieByTitle(ctx context.Context, title string) (models.Movie, error) {
	movie, err := s.movies.FindByTitle(ctx, title)
	if err != nil {
		return models.Movie{}, movieLookupError(err)
	}
	return movie, nil
}

// CreateMovie validates and stores a new movie. Titles must be unique.
func (s *MovieService) CreateMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	movie.ID = ""
	if err := checkStruct(movie); err != nil {
		return models.Movie{}, err
	}

	created, err := s.movies.Create(ctx, movie)
	if err != nil {
		return models.Movie{}, movieWriteError(err, movie.Title)
	}
	return created, nil
}

// UpdateMovie applies a partial update. The merged movie must still be valid,
// so an update cannot clear the cast or the title.
func (s *MovieService) UpdateMovie(ctx context.Context, id string, patch models.MoviePatch) (models.Movie, error) {
	current, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return models.Movie{}, movieLookupError(err)
	}

	merged := patch.Apply(current)
	if err := checkStruct(merged); err != nil {
		return models.Movie{}, err
	}

	updated, err := s.movies.Update(ctx, merged)
	if err != nil {
		return models.Movie{}, movieWriteError(err, merged.Title)
	}
	return updated, nil
}

// DeleteMovie removes a movie. Reviews that reference it are kept.
func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("movie not found")
		}
		return apperr.Internal(err, "failed to delete movie")
	}
	return nil
}

// SearchMovies returns the movies whose title or any actor name contains query,
// ignoring case. An empty query matches every movie.
func (s *MovieService) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	movies, err := s.movies.Search(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err, "failed to search movies")
	}
	return movies, nil
}
