package models

import (
	"time"

	"github.com/google/uuid"
)

// FileRecord is the metadata row paired 1:1 with a blob in object storage.
// The pairing is the core consistency invariant: neither side may outlive
// the other beyond the duration of a single provisioning or deletion call.
type FileRecord struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	ClientID         uuid.UUID  `json:"client_id" db:"client_id"`
	ProjectID        *uuid.UUID `json:"project_id" db:"project_id"`
	StorageKey       string     `json:"storage_key" db:"storage_key"`
	OriginalFilename string     `json:"original_filename" db:"original_filename"`
	FileType         string     `json:"file_type" db:"file_type"`
	FileSize         int64      `json:"file_size" db:"file_size"`
	IsPublic         bool       `json:"is_public" db:"is_public"`
	UploadedBy       Role       `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}
