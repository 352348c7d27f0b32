package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clientdesk/internal/authz"
	"clientdesk/internal/metrics"
	"clientdesk/internal/models"
	"clientdesk/internal/repositories"
	"clientdesk/internal/saga"
	"clientdesk/internal/storage"
)

// Default role-specific upload ceilings, in bytes.
const (
	AdminMaxUploadBytes  = 100 << 20
	ClientMaxUploadBytes = 50 << 20
)

// UploadLimits carries the configured per-role size ceilings. Zero or
// negative values fall back to the package defaults.
type UploadLimits struct {
	AdminMaxBytes  int64
	ClientMaxBytes int64
}

func (l UploadLimits) withDefaults() UploadLimits {
	if l.AdminMaxBytes <= 0 {
		l.AdminMaxBytes = AdminMaxUploadBytes
	}
	if l.ClientMaxBytes <= 0 {
		l.ClientMaxBytes = ClientMaxUploadBytes
	}
	return l
}

// clientUploadTypePrefixes and clientUploadTypes form the MIME allow-list
// for client-initiated uploads. Admin uploads skip the list entirely.
var clientUploadTypePrefixes = []string{"image/", "video/", "audio/", "text/"}

var clientUploadTypes = map[string]bool{
	"application/pdf":               true,
	"application/zip":               true,
	"application/json":              true,
	"application/xml":               true,
	"application/msword":            true,
	"application/vnd.ms-excel":      true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
}

// previewTypePrefixes restricts inline preview to renderable types.
var previewTypePrefixes = []string{"image/", "text/"}

type UploadFileInput struct {
	Actor       models.Actor
	ClientID    uuid.UUID
	ProjectID   *uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
	// IsPublic is honoured for admin uploads only; client uploads are
	// always public so the tenant can see their own files.
	IsPublic bool
}

// FileDownload couples a record with its blob stream.
type FileDownload struct {
	Record  *models.FileRecord
	Content io.ReadCloser
}

type FileService interface {
	Upload(ctx context.Context, input UploadFileInput) (*models.FileRecord, error)
	Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error
	Download(ctx context.Context, actor models.Actor, id uuid.UUID) (*FileDownload, error)
	PreviewURL(ctx context.Context, actor models.Actor, id uuid.UUID) (string, error)
	ListByClient(ctx context.Context, actor models.Actor, clientID uuid.UUID, limit, offset int) ([]*models.FileRecord, error)
}

type fileService struct {
	coordinator *saga.Coordinator
	fileRepo    repositories.FileRepository
	blobs       storage.BlobStore
	limits      UploadLimits
	log         zerolog.Logger
}

func NewFileService(coordinator *saga.Coordinator, fileRepo repositories.FileRepository, blobs storage.BlobStore, limits UploadLimits, log zerolog.Logger) FileService {
	return &fileService{
		coordinator: coordinator,
		fileRepo:    fileRepo,
		blobs:       blobs,
		limits:      limits.withDefaults(),
		log:         log,
	}
}

const fileSagaName = "file-provisioning"

// Upload validates, writes the blob, then the metadata row. A row insert
// failure deletes the just-written blob so the two systems never diverge
// past the duration of this call.
func (s *fileService) Upload(ctx context.Context, input UploadFileInput) (*models.FileRecord, error) {
	if !authz.CanAccess(input.Actor, authz.ResourceFile, input.ClientID, authz.VisibilityPublic) {
		metrics.AccessDeniedTotal.WithLabelValues(string(authz.ResourceFile), "upload").Inc()
		return nil, ErrForbidden
	}

	if err := s.validateUpload(input); err != nil {
		metrics.SagaRunsTotal.WithLabelValues(fileSagaName, "rejected").Inc()
		return nil, err
	}

	isPublic := input.IsPublic
	if input.Actor.Role == models.RoleClient {
		isPublic = true
	}

	key := storageKey(input.ClientID, input.ProjectID, input.Filename)
	record := &models.FileRecord{
		ID:               uuid.New(),
		ClientID:         input.ClientID,
		ProjectID:        input.ProjectID,
		StorageKey:       key,
		OriginalFilename: input.Filename,
		FileType:         input.ContentType,
		FileSize:         input.Size,
		IsPublic:         isPublic,
		UploadedBy:       input.Actor.Role,
	}

	steps := []saga.Step{
		{
			Name: "put-blob",
			Do: func(ctx context.Context) error {
				return s.blobs.Put(ctx, key, input.Content, input.Size, input.ContentType)
			},
			Undo: func(ctx context.Context) error {
				return s.blobs.Delete(ctx, key)
			},
		},
		{
			Name: "insert-file-record",
			Do: func(ctx context.Context) error {
				return s.fileRepo.Create(ctx, record)
			},
			Undo: func(ctx context.Context) error {
				return s.fileRepo.Delete(ctx, record.ID)
			},
		},
	}

	if err := s.coordinator.Run(ctx, fileSagaName, steps); err != nil {
		metrics.SagaRunsTotal.WithLabelValues(fileSagaName, "compensated").Inc()
		recordCompensationFailures(fileSagaName, err)
		return nil, err
	}

	metrics.SagaRunsTotal.WithLabelValues(fileSagaName, "success").Inc()
	return record, nil
}

// Delete removes the blob first, then the row. Blob deletion failure is
// logged and deliberately non-fatal: a possible orphaned blob beats a row
// pointing at nothing. Row deletion failure is fatal since that row
// breaks the pairing invariant.
func (s *fileService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	record, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanAccessFile(actor, record) {
		metrics.AccessDeniedTotal.WithLabelValues(string(authz.ResourceFile), "delete").Inc()
		return ErrForbidden
	}

	if err := s.blobs.Delete(ctx, record.StorageKey); err != nil {
		metrics.ConsistencyWarningsTotal.WithLabelValues("orphaned_blob").Inc()
		s.log.Warn().Err(err).
			Str("file_id", record.ID.String()).
			Str("storage_key", record.StorageKey).
			Msg("blob deletion failed, continuing with row deletion")
	}

	return s.fileRepo.Delete(ctx, record.ID)
}

func (s *fileService) Download(ctx context.Context, actor models.Actor, id uuid.UUID) (*FileDownload, error) {
	record, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanAccessFile(actor, record) {
		metrics.AccessDeniedTotal.WithLabelValues(string(authz.ResourceFile), "download").Inc()
		return nil, ErrForbidden
	}

	content, err := s.blobs.Get(ctx, record.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			metrics.ConsistencyWarningsTotal.WithLabelValues("missing_blob").Inc()
			s.log.Error().
				Str("file_id", record.ID.String()).
				Str("storage_key", record.StorageKey).
				Msg("file record points at missing blob")
		}
		return nil, err
	}
	return &FileDownload{Record: record, Content: content}, nil
}

// PreviewURL returns a short-lived presigned URL for inline rendering.
func (s *fileService) PreviewURL(ctx context.Context, actor models.Actor, id uuid.UUID) (string, error) {
	record, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !authz.CanAccessFile(actor, record) {
		metrics.AccessDeniedTotal.WithLabelValues(string(authz.ResourceFile), "preview").Inc()
		return "", ErrForbidden
	}

	if !previewable(record.FileType) {
		return "", newValidationError("file_type", "is not previewable inline")
	}

	return s.blobs.PresignedURL(ctx, record.StorageKey, 15*time.Minute)
}

// ListByClient returns a client's files. Client actors see only their own
// public files; admins see everything.
func (s *fileService) ListByClient(ctx context.Context, actor models.Actor, clientID uuid.UUID, limit, offset int) ([]*models.FileRecord, error) {
	if !authz.CanAccess(actor, authz.ResourceFile, clientID, authz.VisibilityPublic) {
		metrics.AccessDeniedTotal.WithLabelValues(string(authz.ResourceFile), "list").Inc()
		return nil, ErrForbidden
	}

	records, err := s.fileRepo.ListByClient(ctx, clientID, limit, offset)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() {
		return records, nil
	}

	visible := make([]*models.FileRecord, 0, len(records))
	for _, record := range records {
		if authz.CanAccessFile(actor, record) {
			visible = append(visible, record)
		}
	}
	return visible, nil
}

func (s *fileService) validateUpload(input UploadFileInput) error {
	if input.Filename == "" {
		return newValidationError("filename", "is required")
	}
	if input.Size <= 0 {
		return newValidationError("file_size", "must be positive")
	}

	ceiling := s.limits.AdminMaxBytes
	if input.Actor.Role == models.RoleClient {
		ceiling = s.limits.ClientMaxBytes
	}
	if input.Size > ceiling {
		return newValidationError("file_size", fmt.Sprintf("exceeds the %d MB limit", ceiling>>20))
	}

	// Admin uploads skip the type allow-list.
	if input.Actor.Role == models.RoleClient && !allowedClientType(input.ContentType) {
		return newValidationError("file_type", fmt.Sprintf("%q is not an allowed upload type", input.ContentType))
	}
	return nil
}

func allowedClientType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, prefix := range clientUploadTypePrefixes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return clientUploadTypes[ct]
}

func previewable(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, prefix := range previewTypePrefixes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return ct == "application/pdf"
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// storageKey derives a collision-resistant object key from the tenant,
// the project (or "general"), a timestamp, fresh entropy, and the
// sanitized original filename.
func storageKey(clientID uuid.UUID, projectID *uuid.UUID, filename string) string {
	segment := "general"
	if projectID != nil {
		segment = projectID.String()
	}
	return fmt.Sprintf("%s/%s/%d-%s-%s",
		clientID, segment, time.Now().UnixNano(), uuid.NewString()[:8], sanitizeFilename(filename))
}

// sanitizeFilename strips path components and anything outside a safe
// character set so user input never shapes the key structure.
func sanitizeFilename(name string) string {
	// Keep only the base name regardless of separator style.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = unsafeKeyChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	if len(name) > 128 {
		name = name[len(name)-128:]
	}
	return name
}
