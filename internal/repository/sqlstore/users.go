package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
)

// UserStore implements repository.UserRepository.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	var name sql.NullString
	err := row.Scan(&user.ID, &name, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, repository.ErrNotFound
		}
		return models.User{}, err
	}
	user.Name = name.String
	return user, nil
}

// Create inserts a user with a fresh id.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	user.ID = uuid.New().String()

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO users(id, name, username, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.ExecContext(ctx, user.ID, user.Name, user.Username, user.PasswordHash); err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", translate(err))
	}
	return s.FindByID(ctx, user.ID)
}

// FindByUsername retrieves a user, including the password hash.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, username, password_hash, created_at FROM users WHERE username = ?", username)
	return scanUser(row)
}

// FindByID retrieves a single user by id.
func (s *UserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, username, password_hash, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}
