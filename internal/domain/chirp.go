package domain

import "time"

// Chirp is a short message posted by a user. Bodies are at most 140
// characters and have profanity masked before storage.
type Chirp struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChirpSort orders a chirp listing by creation time.
type ChirpSort string

const (
	ChirpSortAsc  ChirpSort = "asc"
	ChirpSortDesc ChirpSort = "desc"
)

// ChirpFilter narrows a chirp listing.
type ChirpFilter struct {
	AuthorID string
	Sort     ChirpSort
}
