package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/services"
	"github.com/rs/zerolog/log"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	movies  services.MovieServiceProvider
	ratings services.AggregationServiceProvider
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movies services.MovieServiceProvider, ratings services.AggregationServiceProvider) *MovieHandler {
	return &MovieHandler{movies: movies, ratings: ratings}
}

// SearchPayload is the body of POST /movies/search.
type SearchPayload struct {
	Query string `json:"query"`
}

// withReviews reports whether the caller asked for the joined view.
func withReviews(r *http.Request) bool {
	return r.URL.Query().Get("reviews") == "true"
}

// GetAll lists movies. With ?reviews=true each movie carries its reviews and
// average rating, and the list is sorted by that average.
func (h *MovieHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if withReviews(r) {
		movies, err := h.ratings.ListMoviesWithRatings(r.Context(), true)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, movies)
		return
	}

	movies, err := h.movies.ListMovies(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Get returns one movie, joined with its reviews when ?reviews=true.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if withReviews(r) {
		movie, err := h.ratings.GetMovieWithRatings(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, movie)
		return
	}

	movie, err := h.movies.GetMovie(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// GetByTitle returns the movie with the exact title.
func (h *MovieHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, leaving the parameter escaped.
	title := chi.URLParam(r, "title")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(title); err == nil {
			title = unescaped
		}
	}

	movie, err := h.movies.GetMovieByTitle(r.Context(), title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// Create adds a movie to the catalog.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := decodeJSON(w, r, &movie); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.movies.CreateMovie(r.Context(), movie)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("movie_id", created.ID).Str("title", created.Title).Msg("Movie created")
	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a movie.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.MoviePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.movies.UpdateMovie(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a movie.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.movies.DeleteMovie(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("movie_id", id).Msg("Movie deleted")
	writeJSON(w, http.StatusOK, messageResponse{Message: "movie deleted"})
}

// Search filters movies by title or actor name.
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload SearchPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	movies, err := h.movies.SearchMovies(r.Context(), payload.Query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}
