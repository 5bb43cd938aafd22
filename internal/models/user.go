package models

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the authenticated subject carried by a token.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Identity returns the stable identity of u.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}
