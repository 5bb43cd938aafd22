package services

import (
	"context"
	"errors"

	"github.com/isdelr/reelreview-be/internal/apperr"
	"github.com/isdelr/reelreview-be/internal/auth"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// errInvalidCredentials is the single answer for unknown users and wrong passwords.
var errInvalidCredentials = apperr.Authentication("invalid credentials")

// dummyHash keeps sign-in for unknown usernames as slow as for known ones.
var dummyHash, _ = auth.HashPassword("reelreview-timing-equalizer")

type signup struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, name, username, password string) (string, error)
	VerifyCredentials(ctx context.Context, username, password string) (models.Identity, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides signup and credential verification.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUser registers a new account and returns its id.
func (s *UserService) CreateUser(ctx context.Context, name, username, password string) (string, error) {
	if err := checkStruct(signup{Username: username, Password: password}); err != nil {
		return "", err
	}
	if len(password) > auth.MaxPasswordBytes {
		return "", apperr.Validation("password must be at most %d bytes", auth.MaxPasswordBytes)
	}

	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return "", apperr.Conflict("username already taken")
	case !errors.Is(err, repository.ErrNotFound):
		return "", apperr.Internal(err, "failed to look up user")
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation("password must be at most %d bytes", auth.MaxPasswordBytes)
	}
	if err != nil {
		return "", apperr.Internal(err, "failed to hash password")
	}

	user, err := s.users.Create(ctx, models.User{Name: name, Username: username, PasswordHash: hash})
	if err != nil {
		// A concurrent signup can pass the lookup; the unique index decides.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", apperr.Conflict("username already taken")
		}
		return "", apperr.Internal(err, "failed to create user")
	}
	return user.ID, nil
}

// VerifyCredentials checks a username/password pair and returns the user's identity.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (models.Identity, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return models.Identity{}, apperr.Internal(err, "failed to look up user")
		}
		auth.CheckPassword(dummyHash, password)
		log.Debug().Str("username", username).Msg("Sign-in for unknown username")
		return models.Identity{}, errInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		log.Debug().Str("username", username).Msg("Sign-in with wrong password")
		return models.Identity{}, errInvalidCredentials
	}
	return user.Identity(), nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, apperr.NotFound("user not found")
		}
		return models.User{}, apperr.Internal(err, "failed to load user")
	}
	return user, nil
}
