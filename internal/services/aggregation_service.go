package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/isdelr/reelreview-be/internal/apperr"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
)

// AggregationServiceProvider defines the interface for the movie/review join.
type AggregationServiceProvider interface {
	ListMoviesWithRatings(ctx context.Context, sortByRating bool) ([]models.MovieWithRatings, error)
	GetMovieWithRatings(ctx context.Context, movieID string) (models.MovieWithRatings, error)
	CreateReview(ctx context.Context, input models.ReviewInput, username string) (models.Review, error)
	ListReviewsForMovie(ctx context.Context, movieID string) ([]models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
}

// AggregationService is the only component that relates reviews to movies.
// Joins are computed on every call and never stored.
type AggregationService struct {
	movies  repository.MovieRepository
	reviews repository.ReviewRepository
}

// NewAggregationService creates a new AggregationService.
func NewAggregationService(movies repository.MovieRepository, reviews repository.ReviewRepository) *AggregationService {
	return &AggregationService{movies: movies, reviews: reviews}
}

// ListMoviesWithRatings joins every movie with its reviews. When sortByRating is set
// the result is ordered by average rating, highest first; movies without reviews
// come last and equal averages keep the repository order.
func (s *AggregationService) ListMoviesWithRatings(ctx context.Context, sortByRating bool) ([]models.MovieWithRatings, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list movies")
	}

	// One scan regardless of catalog size; reviews of deleted movies drop out in the join.
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list reviews")
	}

	joined := joinReviews(movies, reviews)
	if sortByRating {
		sortByAverageDesc(joined)
	}
	return joined, nil
}

// GetMovieWithRatings joins a single movie with its reviews.
func (s *AggregationService) GetMovieWithRatings(ctx context.Context, movieID string) (models.MovieWithRatings, error) {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return models.MovieWithRatings{}, movieLookupError(err)
	}

	reviews, err := s.reviews.ListByMovieIDs(ctx, movie.ID)
	if err != nil {
		return models.MovieWithRatings{}, apperr.Internal(err, "failed to list reviews")
	}
	return joinReviews([]models.Movie{movie}, reviews)[0], nil
}

// CreateReview stores a review by username for an existing movie.
//
// The movie lookup and the insert are separate store operations: a movie deleted
// in between leaves an orphaned review, which joins ignore.
func (s *AggregationService) CreateReview(ctx context.Context, input models.ReviewInput, username string) (models.Review, error) {
	if username == "" {
		return models.Review{}, apperr.Authentication("missing identity")
	}
	input.MovieID = strings.TrimSpace(input.MovieID)
	if input.MovieID == "" {
		return models.Review{}, apperr.Validation("movieId is required")
	}

	if _, err := s.movies.FindByID(ctx, input.MovieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Review{}, apperr.Referential("movie %s does not exist", input.MovieID)
		}
		return models.Review{}, apperr.Internal(err, "failed to load movie")
	}

	if err := checkStruct(input); err != nil {
		return models.Review{}, err
	}

	review, err := s.reviews.Create(ctx, models.Review{
		MovieID:    input.MovieID,
		Username:   username,
		Rating:     *input.Rating,
		ReviewText: input.ReviewText,
	})
	if err != nil {
		return models.Review{}, apperr.Internal(err, "failed to save review")
	}
	return review, nil
}

// ListReviewsForMovie returns the reviews referencing movieID.
// An id that matches no movie yields an empty list rather than an error.
func (s *AggregationService) ListReviewsForMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	reviews, err := s.reviews.ListByMovieIDs(ctx, movieID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list reviews")
	}
	return reviews, nil
}

// ListReviews returns every stored review.
func (s *AggregationService) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list reviews")
	}
	return reviews, nil
}

// joinReviews left-joins reviews onto movies, preserving the order of both inputs.
func joinReviews(movies []models.Movie, reviews []models.Review) []models.MovieWithRatings {
	byMovie := make(map[string][]models.Review, len(movies))
	for _, r := range reviews {
		byMovie[r.MovieID] = append(byMovie[r.MovieID], r)
	}

	out := make([]models.MovieWithRatings, len(movies))
	for i, m := range movies {
		matched := byMovie[m.ID]
		if matched == nil {
			matched = []models.Review{}
		}
		out[i] = models.MovieWithRatings{
			Movie:     m,
			Reviews:   matched,
			AvgRating: averageRating(matched),
		}
	}
	return out
}

// averageRating returns the arithmetic mean, or nil for no reviews.
func averageRating(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := sum / float64(len(reviews))
	return &avg
}

func sortByAverageDesc(movies []models.MovieWithRatings) {
	sort.SliceStable(movies, func(i, j int) bool {
		a, b := movies[i].AvgRating, movies[j].AvgRating
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
}
