package models

import "time"

// Review is a user's rating of a single movie.
type Review struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movieId"`
	Username   string    `json:"username"` // always taken from the token
	Rating     float64   `json:"rating"`   // 0 to 5 inclusive
	ReviewText string    `json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewInput is the client-supplied part of a review.
type ReviewInput struct {
	MovieID    string   `json:"movieId"`
	Rating     *float64 `json:"rating" validate:"required,gte=0,lte=5"`
	ReviewText string   `json:"reviewText" validate:"required"`
}
