package domain

import "time"

// User is a registered account. PasswordHash is an opaque encoded secret.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a user from an already hashed password.
func NewUser(id, username, email, passwordHash string, createdAt time.Time) User {
	return User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
}

// String returns the username for display purposes.
func (u User) String() string {
	return u.Username
}

// Principal identifies the authenticated actor carried by a token or request.
type Principal struct {
	UserID   string
	Username string
}
