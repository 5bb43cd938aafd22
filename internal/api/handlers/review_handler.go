package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/reelreview-be/internal/apperr"
	"github.com/isdelr/reelreview-be/internal/auth"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/services"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	ratings services.AggregationServiceProvider
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(ratings services.AggregationServiceProvider) *ReviewHandler {
	return &ReviewHandler{ratings: ratings}
}

// Create stores a review written by the authenticated user.
// Any username in the body is ignored.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Authentication("missing identity"))
		return
	}

	var input models.ReviewInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	review, err := h.ratings.CreateReview(r.Context(), input, identity.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// GetAll lists every review.
func (h *ReviewHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.ratings.ListReviews(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// GetForMovie lists the reviews of one movie.
func (h *ReviewHandler) GetForMovie(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.ratings.ListReviewsForMovie(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
