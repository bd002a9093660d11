package domain

import "time"

// User is an account holder. HashedPassword never leaves the server.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	IsChirpyRed    bool      `json:"is_chirpy_red"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Session is the token pair handed out on login: a short-lived JWT and a
// long-lived opaque refresh token.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
}

// RefreshToken is a stored, revocable credential that can be exchanged for
// fresh access tokens until it expires or is revoked.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid reports whether the token can still be exchanged at time now.
func (t RefreshToken) Valid(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}
