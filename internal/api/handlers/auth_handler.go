package handlers

import (
	"net/http"

	"github.com/isdelr/reelreview-be/internal/apperr"
	"github.com/isdelr/reelreview-be/internal/auth"
	"github.com/isdelr/reelreview-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles signup, signin and the current-user lookup.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// SignupPayload is the body of POST /auth/signup.
type SignupPayload struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SigninPayload is the body of POST /auth/signin.
type SigninPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.users.CreateUser(r.Context(), payload.Name, payload.Username, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", id).Str("username", payload.Username).Msg("User signed up")
	writeJSON(w, http.StatusCreated, map[string]string{"userId": id})
}

// Signin verifies credentials and issues a bearer token.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var payload SigninPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	identity, err := h.users.VerifyCredentials(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAuthentication {
			log.Warn().Str("username", payload.Username).Msg("Failed sign-in attempt")
		}
		writeError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(identity)
	if err != nil {
		writeError(w, r, apperr.Internal(err, "failed to issue token"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Authentication("missing identity"))
		return
	}

	user, err := h.users.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
