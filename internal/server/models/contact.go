package models

import "time"

// Contact is an address-book entry owned by one user. Like the vault record
// types, the owner is fixed at creation. Only FirstName is mandatory.
type Contact struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Mobile    string    `json:"mobile,omitempty"`
	Company   string    `json:"company,omitempty"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	Website   string    `json:"website,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Category  string    `json:"category,omitempty"`
	Favorite  bool      `json:"isFavorite"`
	Emergency bool      `json:"isEmergency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
