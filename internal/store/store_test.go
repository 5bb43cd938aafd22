package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/isdelr/reelreview-be/internal/config"
	"github.com/isdelr/reelreview-be/internal/models"
	"gotest.tools/v3/assert"
)

func TestOpenSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreDriver:  config.DriverSQLite,
		DatabasePath: filepath.Join(t.TempDir(), "reelreview.db"),
	}

	s, err := Open(ctx, cfg)
	assert.NilError(t, err)
	created, err := s.Users.Create(ctx, models.User{Username: "alice", PasswordHash: "hash"})
	assert.NilError(t, err)
	assert.NilError(t, s.Close(ctx))

	reopened, err := Open(ctx, cfg)
	assert.NilError(t, err)
	defer reopened.Close(ctx)

	found, err := reopened.Users.FindByUsername(ctx, "alice")
	assert.NilError(t, err)
	assert.Equal(t, found.ID, created.ID)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "postgres"})
	assert.ErrorContains(t, err, "unknown store driver")
}
