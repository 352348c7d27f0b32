package models

import "github.com/google/uuid"

// Role is the closed set of actor roles. There is no third value: every
// authenticated request is either the agency (admin) or a portal client.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Actor is the authenticated identity behind a request. ClientID is set
// iff Role is RoleClient.
type Actor struct {
	UserID   uuid.UUID `json:"user_id"`
	Role     Role      `json:"role"`
	ClientID uuid.UUID `json:"client_id,omitempty"`
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
