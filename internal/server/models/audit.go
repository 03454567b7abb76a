package models

import "time"

// AuditEvent is an append-only record of a user action against the vault.
// Events are written best-effort: a failed insert is logged, never surfaced
// to the caller.
type AuditEvent struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId,omitempty"`
	Success   bool      `json:"success"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
