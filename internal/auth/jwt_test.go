package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/reelreview-be/internal/models"
	"gotest.tools/v3/assert"
)

var alice = models.Identity{UserID: "u-1", Username: "alice"}

// fixedClock returns a manager whose clock reads the value pointed to by now.
func fixedClock(secret string, ttl time.Duration, now *time.Time) *Manager {
	m := NewManager(secret, ttl)
	m.now = func() time.Time { return *now }
	return m
}

func TestIssueValidateRoundTrip(t *testing.T) {
	m := NewManager("secret", 0)
	assert.Equal(t, m.ttl, DefaultTokenTTL)

	token, err := m.Issue(alice)
	assert.NilError(t, err)

	got, err := m.Validate(token)
	assert.NilError(t, err)
	assert.Equal(t, got, alice)

	again, err := m.Validate(token)
	assert.NilError(t, err)
	assert.Equal(t, again, got)
}

func TestValidateExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuedAt := now
	m := fixedClock("secret", time.Hour, &now)

	token, err := m.Issue(alice)
	assert.NilError(t, err)

	now = issuedAt.Add(time.Hour - time.Second)
	_, err = m.Validate(token)
	assert.NilError(t, err)

	now = issuedAt.Add(time.Hour)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	now = issuedAt.Add(48 * time.Hour)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsForgeries(t *testing.T) {
	m := NewManager("secret", time.Hour)

	foreign, err := NewManager("other-secret", time.Hour).Issue(alice)
	assert.NilError(t, err)
	_, err = m.Validate(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims := &Claims{
		UserID:   alice.UserID,
		Username: alice.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NilError(t, err)
	_, err = m.Validate(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	assert.NilError(t, err)
	_, err = m.Validate(otherAlg)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "u-1", Username: "alice"}).SignedString([]byte("secret"))
	assert.NilError(t, err)
	_, err = m.Validate(noExpiry)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, err := m.Issue(alice)
	assert.NilError(t, err)

	var seen models.Identity
	protected := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		assert.Assert(t, ok)
		seen = identity
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"no header", "", http.StatusUnauthorized, "missing token"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "bad header format"},
		{"lowercase scheme", "bearer " + token, http.StatusUnauthorized, "bad header format"},
		{"scheme only", "Bearer", http.StatusUnauthorized, "bad header format"},
		{"extra part", "Bearer " + token + " extra", http.StatusUnauthorized, "bad header format"},
		{"double space", "Bearer  " + token, http.StatusUnauthorized, "bad header format"},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized, "invalid or expired token"},
		{"valid", "Bearer " + token, http.StatusNoContent, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, rec.Code, c.status)
			if c.message != "" {
				var body map[string]string
				assert.NilError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, body["message"], c.message)
			}
		})
	}
	assert.Equal(t, seen, alice)
}
