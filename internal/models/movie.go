package models

import "strings"

// Genre is one of a fixed set of movie genres.
type Genre string

const (
	GenreAction         Genre = "Action"
	GenreAdventure      Genre = "Adventure"
	GenreComedy         Genre = "Comedy"
	GenreDrama          Genre = "Drama"
	GenreFantasy        Genre = "Fantasy"
	GenreHorror         Genre = "Horror"
	GenreMystery        Genre = "Mystery"
	GenreThriller       Genre = "Thriller"
	GenreWestern        Genre = "Western"
	GenreScienceFiction Genre = "Science Fiction"
)

// Genres lists every accepted genre.
var Genres = []Genre{
	GenreAction, GenreAdventure, GenreComedy, GenreDrama, GenreFantasy,
	GenreHorror, GenreMystery, GenreThriller, GenreWestern, GenreScienceFiction,
}

// Valid reports whether g is one of Genres.
func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

// Actor is a cast entry.
type Actor struct {
	ActorName     string `json:"actorName" validate:"required"`
	CharacterName string `json:"characterName" validate:"required"`
}

// Movie represents a catalog entry.
type Movie struct {
	ID          string  `json:"id"`
	Title       string  `json:"title" validate:"required"`
	ReleaseYear int     `json:"releaseYear" validate:"gte=1900,lte=2100"`
	Genre       Genre   `json:"genre" validate:"genre"`
	Actors      []Actor `json:"actors" validate:"required,min=1,dive"`
	ImageURL    string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// MoviePatch holds the fields of a partial update. Nil fields are left unchanged.
type MoviePatch struct {
	Title       *string  `json:"title"`
	ReleaseYear *int     `json:"releaseYear"`
	Genre       *Genre   `json:"genre"`
	Actors      *[]Actor `json:"actors"`
	ImageURL    *string  `json:"imageUrl"`
}

// Apply returns a copy of m with the patch applied.
func (p MoviePatch) Apply(m Movie) Movie {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Actors != nil {
		m.Actors = append([]Actor(nil), (*p.Actors)...)
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
	return m
}

// Matches reports whether query occurs, ignoring case, in the title or in any actor name.
// An empty query matches every movie.
func (m Movie) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(m.Title), q) {
		return true
	}
	for _, a := range m.Actors {
		if strings.Contains(strings.ToLower(a.ActorName), q) {
			return true
		}
	}
	return false
}

// MovieWithRatings is a movie joined with its reviews. It is computed per request.
type MovieWithRatings struct {
	Movie
	Reviews   []Review `json:"reviews"`
	AvgRating *float64 `json:"avgRating"` // nil when there are no reviews
}
