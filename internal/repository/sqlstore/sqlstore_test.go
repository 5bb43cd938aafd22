package sqlstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/isdelr/reelreview-be/internal/database"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewSQLite(database.MemoryDSN)
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })
	assert.NilError(t, database.MigrateSQLite(db))
	return db
}

func heat() models.Movie {
	return models.Movie{
		Title:       "Heat",
		ReleaseYear: 1995,
		Genre:       models.GenreThriller,
		Actors: []models.Actor{
			{ActorName: "Al Pacino", CharacterName: "Vincent Hanna"},
			{ActorName: "Robert De Niro", CharacterName: "Neil McCauley"},
		},
	}
}

func TestUserStoreUniqueUsername(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(openTestDB(t))

	created, err := users.Create(ctx, models.User{Name: "Alice", Username: "alice", PasswordHash: "hash"})
	assert.NilError(t, err)
	assert.Assert(t, created.ID != "")

	_, err = users.Create(ctx, models.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// Usernames are case-sensitive.
	_, err = users.Create(ctx, models.User{Username: "Alice", PasswordHash: "hash"})
	assert.NilError(t, err)

	found, err := users.FindByUsername(ctx, "alice")
	assert.NilError(t, err)
	assert.Equal(t, found.ID, created.ID)
	assert.Equal(t, found.PasswordHash, "hash")
	assert.Equal(t, found.Name, "Alice")

	_, err = users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMovieStoreCRUD(t *testing.T) {
	ctx := context.Background()
	movies := NewMovieStore(openTestDB(t))

	created, err := movies.Create(ctx, heat())
	assert.NilError(t, err)

	got, err := movies.FindByID(ctx, created.ID)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, created)

	byTitle, err := movies.FindByTitle(ctx, "Heat")
	assert.NilError(t, err)
	assert.Equal(t, byTitle.ID, created.ID)

	_, err = movies.Create(ctx, heat())
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	created.ReleaseYear = 1996
	created.Actors = created.Actors[:1]
	updated, err := movies.Update(ctx, created)
	assert.NilError(t, err)
	assert.Equal(t, updated.ReleaseYear, 1996)
	assert.Check(t, is.Len(updated.Actors, 1))

	_, err = movies.Update(ctx, models.Movie{ID: "missing", Title: "Nope"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NilError(t, movies.Delete(ctx, created.ID))
	assert.ErrorIs(t, movies.Delete(ctx, created.ID), repository.ErrNotFound)
	_, err = movies.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMovieStoreListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	movies := NewMovieStore(openTestDB(t))

	for _, title := range []string{"Zodiac", "Alien", "Memento"} {
		m := heat()
		m.Title = title
		_, err := movies.Create(ctx, m)
		assert.NilError(t, err)
	}

	all, err := movies.List(ctx)
	assert.NilError(t, err)
	assert.Check(t, is.Len(all, 3))
	assert.Equal(t, all[0].Title, "Zodiac")
	assert.Equal(t, all[1].Title, "Alien")
	assert.Equal(t, all[2].Title, "Memento")

	found, err := movies.Search(ctx, "DE NIRO")
	assert.NilError(t, err)
	assert.Check(t, is.Len(found, 3))

	found, err = movies.Search(ctx, "lie")
	assert.NilError(t, err)
	assert.Check(t, is.Len(found, 1))
	assert.Equal(t, found[0].Title, "Alien")
}

func TestReviewStoreListByMovieIDs(t *testing.T) {
	ctx := context.Background()
	reviews := NewReviewStore(openTestDB(t))

	for _, r := range []models.Review{
		{MovieID: "m1", Username: "alice", Rating: 3, ReviewText: "fine"},
		{MovieID: "m2", Username: "alice", Rating: 5, ReviewText: "great"},
		{MovieID: "m1", Username: "bob", Rating: 4.5, ReviewText: "good"},
	} {
		created, err := reviews.Create(ctx, r)
		assert.NilError(t, err)
		assert.Assert(t, created.ID != "")
	}

	m1, err := reviews.ListByMovieIDs(ctx, "m1")
	assert.NilError(t, err)
	assert.Check(t, is.Len(m1, 2))
	assert.Equal(t, m1[0].Username, "alice")
	assert.Equal(t, m1[1].Rating, 4.5)

	none, err := reviews.ListByMovieIDs(ctx)
	assert.NilError(t, err)
	assert.Check(t, is.Len(none, 0))

	all, err := reviews.List(ctx)
	assert.NilError(t, err)
	assert.Check(t, is.Len(all, 3))
}
