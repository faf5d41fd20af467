package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
//
// There is no profile mutation in the API surface, so a User is immutable
// once created.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique login name chosen at registration.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored or logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewUser builds a User with a fresh ID and creation timestamp.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
