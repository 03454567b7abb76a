// Package models defines the persisted entities of the vault server.
// Structures are plain data; invariants are enforced in services and
// repositories, not by tags or annotations.
package models

import "time"

// User is the root entity: every stored record is owned by exactly one user.
// PasswordHash always holds a bcrypt hash, never the plaintext.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

// PublicUser is the externally visible projection of a User. It never
// carries the password hash.
type PublicUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Public returns the caller-facing view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}
