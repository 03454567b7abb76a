package models

import "time"

// Credential is a stored vault record: a (title, username, secret, url,
// notes) tuple owned by one user. UserID is set at creation and never
// changes. The secret value is stored as provided; it is not hashed or
// encrypted at rest. The database is the trust boundary.
type Credential struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Secret    string    `json:"password"`
	URL       string    `json:"url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Strength  int       `json:"strength"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
