package services

import (
	"testing"

	"github.com/isdelr/reelreview-be/internal/database"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository/sqlstore"
	"gotest.tools/v3/assert"
)

type testRepos struct {
	users   *sqlstore.UserStore
	movies  *sqlstore.MovieStore
	reviews *sqlstore.ReviewStore
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	db, err := database.NewSQLite(database.MemoryDSN)
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })
	assert.NilError(t, database.MigrateSQLite(db))
	return testRepos{
		users:   sqlstore.NewUserStore(db),
		movies:  sqlstore.NewMovieStore(db),
		reviews: sqlstore.NewReviewStore(db),
	}
}

func sampleMovie(title string) models.Movie {
	return models.Movie{
		Title:       title,
		ReleaseYear: 2001,
		Genre:       models.GenreAction,
		Actors:      []models.Actor{{ActorName: "Jane Doe", CharacterName: "The Lead"}},
	}
}

func ptr[T any](v T) *T { return &v }
