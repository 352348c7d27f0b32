package models

import (
	"time"

	"github.com/google/uuid"
)

// ServicePackage maps a project type name to its list price. Used by the
// invitation flow to seed a new project's total value; a missing package
// is not an error, the value just defaults to zero.
type ServicePackage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
