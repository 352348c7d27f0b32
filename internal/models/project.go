package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusReview     = "review"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCancelled  = "cancelled"
)

// Project always belongs to exactly one client.
type Project struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ClientID    uuid.UUID `json:"client_id" db:"client_id"`
	Name        string    `json:"name" db:"name"`
	ProjectType *string   `json:"project_type" db:"project_type"`
	Status      string    `json:"status" db:"status"`
	TotalValue  float64   `json:"total_value" db:"total_value"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ValidProjectStatus reports whether status is a member of the project
// lifecycle enum.
func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusReview,
		ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}
