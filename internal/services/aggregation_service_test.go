package services

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/reelreview-be/internal/apperr"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newAggregation(t *testing.T) (*AggregationService, *MovieService) {
	t.Helper()
	repos := newTestRepos(t)
	return NewAggregationService(repos.movies, repos.reviews), NewMovieService(repos.movies)
}

func review(movieID string, rating float64) models.ReviewInput {
	return models.ReviewInput{MovieID: movieID, Rating: ptr(rating), ReviewText: "seen it"}
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	agg, movies := newAggregation(t)

	heat, err := movies.CreateMovie(ctx, sampleMovie("Heat"))
	assert.NilError(t, err)

	created, err := agg.CreateReview(ctx, review(heat.ID, 4), "alice")
	assert.NilError(t, err)
	assert.Assert(t, created.ID != "")
	assert.Equal(t, created.Username, "alice")
	assert.Equal(t, created.MovieID, heat.ID)
	assert.Equal(t, created.Rating, 4.0)

	zero, err := agg.CreateReview(ctx, review(heat.ID, 0), "bob")
	assert.NilError(t, err)
	assert.Equal(t, zero.Rating, 0.0)
}

func TestCreateReviewErrors(t *testing.T) {
	ctx := context.Background()
	agg, movies := newAggregation(t)

	heat, err := movies.CreateMovie(ctx, sampleMovie("Heat"))
	assert.NilError(t, err)

	cases := []struct {
		name  string
		input models.ReviewInput
		kind  apperr.Kind
	}{
		{"missing movie id", review("", 3), apperr.KindValidation},
		{"unknown movie", review("missing", 3), apperr.KindReferential},
		{"unknown movie checked before rating", review("missing", 9), apperr.KindReferential},
		{"rating above range", review(heat.ID, 5.5), apperr.KindValidation},
		{"negative rating", review(heat.ID, -1), apperr.KindValidation},
		{"missing rating", models.ReviewInput{MovieID: heat.ID, ReviewText: "meh"}, apperr.KindValidation},
		{"missing text", models.ReviewInput{MovieID: heat.ID, Rating: ptr(3.0)}, apperr.KindValidation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := agg.CreateReview(ctx, c.input, "alice")
			assert.Equal(t, apperr.KindOf(err), c.kind)
		})
	}

	_, err = agg.CreateReview(ctx, review(heat.ID, 3), "")
	assert.Equal(t, apperr.KindOf(err), apperr.KindAuthentication)

	all, err := agg.ListReviews(ctx)
	assert.NilError(t, err)
	assert.Check(t, is.Len(all, 0))
}

func TestGetMovieWithRatings(t *testing.T) {
	ctx := context.Background()
	agg, movies := newAggregation(t)

	heat, err := movies.CreateMovie(ctx, sampleMovie("Heat"))
	assert.NilError(t, err)

	empty, err := agg.GetMovieWithRatings(ctx, heat.ID)
	assert.NilError(t, err)
	assert.Check(t, is.Len(empty.Reviews, 0))
	assert.Check(t, is.Nil(empty.AvgRating))

	for _, rating := range []float64{3, 4, 5} {
		_, err := agg.CreateReview(ctx, review(heat.ID, rating), "alice")
		assert.NilError(t, err)
	}

	rated, err := agg.GetMovieWithRatings(ctx, heat.ID)
	assert.NilError(t, err)
	assert.Equal(t, rated.Title, "Heat")
	assert.Check(t, is.Len(rated.Reviews, 3))
	assert.Assert(t, rated.AvgRating != nil)
	assert.Equal(t, *rated.AvgRating, 4.0)

	_, err = agg.GetMovieWithRatings(ctx, "missing")
	assert.Equal(t, apperr.KindOf(err), apperr.KindNotFound)
}

func TestListMoviesWithRatingsSorted(t *testing.T) {
	ctx := context.Background()
	agg, movies := newAggregation(t)

	ratings := []struct {
		title   string
		ratings []float64
	}{
		{"Unrated", nil},
		{"Four A", []float64{3, 4, 5}},
		{"Three", []float64{3}},
		{"Four And A Half", []float64{4, 5}},
		{"Four B", []float64{4}},
	}
	for _, r := range ratings {
		m, err := movies.CreateMovie(ctx, sampleMovie(r.title))
		assert.NilError(t, err)
		for _, rating := range r.ratings {
			_, err := agg.CreateReview(ctx, review(m.ID, rating), "alice")
			assert.NilError(t, err)
		}
	}

	unsorted, err := agg.ListMoviesWithRatings(ctx, false)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(unsorted), []string{"Unrated", "Four A", "Three", "Four And A Half", "Four B"})

	sorted, err := agg.ListMoviesWithRatings(ctx, true)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(sorted), []string{"Four And A Half", "Four A", "Four B", "Three", "Unrated"})
	assert.Equal(t, *sorted[0].AvgRating, 4.5)
	assert.Check(t, is.Nil(sorted[4].AvgRating))
	assert.Check(t, sorted[4].Reviews != nil)
}

func TestListReviewsForMovie(t *testing.T) {
	ctx := context.Background()
	agg, movies := newAggregation(t)

	heat, err := movies.CreateMovie(ctx, sampleMovie("Heat"))
	assert.NilError(t, err)
	ronin, err := movies.CreateMovie(ctx, sampleMovie("Ronin"))
	assert.NilError(t, err)

	_, err = agg.CreateReview(ctx, review(heat.ID, 5), "alice")
	assert.NilError(t, err)
	_, err = agg.CreateReview(ctx, review(ronin.ID, 2), "bob")
	assert.NilError(t, err)

	forHeat, err := agg.ListReviewsForMovie(ctx, heat.ID)
	assert.NilError(t, err)
	assert.Check(t, is.Len(forHeat, 1))
	assert.Equal(t, forHeat[0].Username, "alice")

	unknown, err := agg.ListReviewsForMovie(ctx, "missing")
	assert.NilError(t, err)
	assert.Check(t, unknown != nil)
	assert.Check(t, is.Len(unknown, 0))

	// Deleting a movie keeps its reviews but drops them from joins.
	assert.NilError(t, movies.DeleteMovie(ctx, heat.ID))
	all, err := agg.ListReviews(ctx)
	assert.NilError(t, err)
	assert.Check(t, is.Len(all, 2))
	joined, err := agg.ListMoviesWithRatings(ctx, false)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(joined), []string{"Ronin"})
}

func TestJoinReviewsIgnoresOrphans(t *testing.T) {
	movies := []models.Movie{{ID: "m1", Title: "One"}, {ID: "m2", Title: "Two"}}
	reviews := []models.Review{
		{ID: "r1", MovieID: "m2", Rating: 2},
		{ID: "r2", MovieID: "gone", Rating: 5},
		{ID: "r3", MovieID: "m2", Rating: 3},
	}

	joined := joinReviews(movies, reviews)
	assert.Check(t, is.Len(joined, 2))
	assert.Check(t, is.Len(joined[0].Reviews, 0))
	assert.Check(t, is.Nil(joined[0].AvgRating))
	assert.Equal(t, joined[1].Reviews[0].ID, "r1")
	assert.Equal(t, joined[1].Reviews[1].ID, "r3")
	assert.Equal(t, *joined[1].AvgRating, 2.5)
}

func TestSortByAverageDescIsStable(t *testing.T) {
	avg := func(v float64) *float64 { return &v }
	list := []models.MovieWithRatings{
		{Movie: models.Movie{Title: "a"}},
		{Movie: models.Movie{Title: "b"}, AvgRating: avg(3)},
		{Movie: models.Movie{Title: "c"}},
		{Movie: models.Movie{Title: "d"}, AvgRating: avg(3)},
		{Movie: models.Movie{Title: "e"}, AvgRating: avg(0)},
	}
	sortByAverageDesc(list)
	assert.DeepEqual(t, titles(list), []string{"b", "d", "e", "a", "c"})
}

func titles(list []models.MovieWithRatings) []string {
	out := make([]string, len(list))
	for i, m := range list {
		out[i] = m.Title
	}
	return out
}

// boundedReviews fails bulk id lookups the way a backend with a bind-variable limit does.
type boundedReviews struct {
	repository.ReviewRepository
	maxIDs int
}

func (b boundedReviews) ListByMovieIDs(ctx context.Context, movieIDs ...string) ([]models.Review, error) {
	if len(movieIDs) > b.maxIDs {
		return nil, errors.New("too many SQL variables")
	}
	return b.ReviewRepository.ListByMovieIDs(ctx, movieIDs...)
}

func TestListMoviesWithRatingsDoesNotBindEveryMovieID(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	movies := NewMovieService(repos.movies)
	agg := NewAggregationService(repos.movies, boundedReviews{ReviewRepository: repos.reviews, maxIDs: 1})

	for _, title := range []string{"Heat", "Ronin", "Thief"} {
		m, err := movies.CreateMovie(ctx, sampleMovie(title))
		assert.NilError(t, err)
		_, err = agg.CreateReview(ctx, review(m.ID, 3), "alice")
		assert.NilError(t, err)
	}

	joined, err := agg.ListMoviesWithRatings(ctx, true)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(joined), []string{"Heat", "Ronin", "Thief"})
	for _, m := range joined {
		assert.Check(t, is.Len(m.Reviews, 1))
	}
}
