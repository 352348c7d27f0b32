package repositories

import (
	"context"

	"clientdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FileRepository interface {
	Create(ctx context.Context, record *models.FileRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FileRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*models.FileRecord, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.FileRecord, error)
}

type fileRepo struct {
	db Database
}

func NewFileRepo(db Database) FileRepository {
	return &fileRepo{db: db}
}

const fileColumns = `id, client_id, project_id, storage_key, original_filename, file_type, file_size, is_public, uploaded_by, created_at`

func (r *fileRepo) Create(ctx context.Context, record *models.FileRecord) error {
	query := `
		INSERT INTO file_records (id, client_id, project_id, storage_key, original_filename, file_type, file_size, is_public, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.ClientID, record.ProjectID,
		record.StorageKey, record.OriginalFilename, record.FileType, record.FileSize,
		record.IsPublic, record.UploadedBy)
	return mapError("create file record", err)
}

func (r *fileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FileRecord, error) {
	record := &models.FileRecord{}
	query := `SELECT ` + fileColumns + ` FROM file_records WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&record.ID, &record.ClientID, &record.ProjectID,
		&record.StorageKey, &record.OriginalFilename, &record.FileType, &record.FileSize,
		&record.IsPublic, &record.UploadedBy, &record.CreatedAt)
	if err != nil {
		return nil, mapError("get file record", err)
	}
	return record, nil
}

func (r *fileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM file_records WHERE id = $1`, id)
	if err != nil {
		return mapError("delete file record", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("delete file record", errNoRowsAffected)
	}
	return nil
}

func (r *fileRepo) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*models.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM file_records WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, mapError("list file records", err)
	}
	defer rows.Close()
	return scanFileRecords(rows)
}

func (r *fileRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM file_records ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError("list file records", err)
	}
	defer rows.Close()
	return scanFileRecords(rows)
}

func scanFileRecords(rows pgx.Rows) ([]*models.FileRecord, error) {
	var records []*models.FileRecord
	for rows.Next() {
		record := &models.FileRecord{}
		if err := rows.Scan(&record.ID, &record.ClientID, &record.ProjectID, &record.StorageKey,
			&record.OriginalFilename, &record.FileType, &record.FileSize, &record.IsPublic,
			&record.UploadedBy, &record.CreatedAt); err != nil {
			return nil, mapError("scan file record", err)
		}
		records = append(records, record)
	}
	return records, mapError("list file records", rows.Err())
}
