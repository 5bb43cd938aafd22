// Package store opens the configured backend and exposes its repositories.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/reelreview-be/internal/config"
	"github.com/isdelr/reelreview-be/internal/database"
	"github.com/isdelr/reelreview-be/internal/repository"
	"github.com/isdelr/reelreview-be/internal/repository/mongostore"
	"github.com/isdelr/reelreview-be/internal/repository/sqlstore"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Store bundles the repositories of one backend.
type Store struct {
	Users   repository.UserRepository
	Movies  repository.MovieRepository
	Reviews repository.ReviewRepository

	close func(ctx context.Context) error
}

// Open connects to the backend selected by cfg.StoreDriver and prepares its
// schema or indexes.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")
		return newMongo(client, db), nil

	case config.DriverSQLite:
		db, err := database.NewSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("path", cfg.DatabasePath).Msg("Opened SQLite database")
		return NewSQLite(db), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func newMongo(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:   mongostore.NewUserStore(db),
		Movies:  mongostore.NewMovieStore(db),
		Reviews: mongostore.NewReviewStore(db),
		close:   client.Disconnect,
	}
}

// NewSQLite wraps an already migrated SQLite handle.
func NewSQLite(db *sql.DB) *Store {
	return &Store{
		Users:   sqlstore.NewUserStore(db),
		Movies:  sqlstore.NewMovieStore(db),
		Reviews: sqlstore.NewReviewStore(db),
		close:   func(context.Context) error { return db.Close() },
	}
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
