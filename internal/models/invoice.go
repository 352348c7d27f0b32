package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice is an access-controlled resource only; billing arithmetic lives
// outside this service.
type Invoice struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ClientID      uuid.UUID  `json:"client_id" db:"client_id"`
	ProjectID     *uuid.UUID `json:"project_id" db:"project_id"`
	InvoiceNumber string     `json:"invoice_number" db:"invoice_number"`
	TotalAmount   float64    `json:"total_amount" db:"total_amount"`
	Status        string     `json:"status" db:"status"`
	IssuedDate    time.Time  `json:"issued_date" db:"issued_date"`
	DueDate       time.Time  `json:"due_date" db:"due_date"`
	PaidDate      *time.Time `json:"paid_date" db:"paid_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
