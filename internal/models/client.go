package models

import (
	"time"

	"github.com/google/uuid"
)

// Client statuses form a closed lifecycle enum.
const (
	ClientStatusLead     = "lead"
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusArchived = "archived"
)

// Client is the tenant root. Projects, file records, and invoices are all
// scoped to exactly one client.
type Client struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PrimaryContact string    `json:"primary_contact" db:"primary_contact"`
	Email          string    `json:"email" db:"email"`
	CompanyName    *string   `json:"company_name" db:"company_name"`
	Phone          *string   `json:"phone" db:"phone"`
	Status         string    `json:"status" db:"status"`
	BrandColors    *string   `json:"brand_colors" db:"brand_colors"`
	Notes          *string   `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ValidClientStatus reports whether status is a member of the client
// lifecycle enum.
func ValidClientStatus(status string) bool {
	switch status {
	case ClientStatusLead, ClientStatusActive, ClientStatusInactive, ClientStatusArchived:
		return true
	}
	return false
}
