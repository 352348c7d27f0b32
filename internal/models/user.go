package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a portal login bound 1:1 to an identity in the hosted auth
// provider; ID is the provider-issued identity id. ClientID is set iff
// Role is RoleClient.
type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Role      Role       `json:"role" db:"role"`
	ClientID  *uuid.UUID `json:"client_id" db:"client_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
