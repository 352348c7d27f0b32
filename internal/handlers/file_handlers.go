package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clientdesk/internal/common"
	"clientdesk/internal/services"
)

type FileHandlers struct {
	files services.FileService
}

func NewFileHandlers(files services.FileService) *FileHandlers {
	return &FileHandlers{files: files}
}

// Upload handles POST /v1/files (multipart). Client actors may only
// target their own tenant; the service enforces it.
func (h *FileHandlers) Upload(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.FormValue("client_id"), "client_id")
	if err != nil {
		return common.SendValidationError(c, "client_id", err.Error())
	}

	var projectID *uuid.UUID
	if raw := c.FormValue("project_id"); raw != "" {
		id, err := common.ValidateUUID(raw, "project_id")
		if err != nil {
			return common.SendValidationError(c, "project_id", err.Error())
		}
		projectID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer src.Close()

	record, err := h.files.Upload(c.Request().Context(), services.UploadFileInput{
		Actor:       actor,
		ClientID:    clientID,
		ProjectID:   projectID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     src,
		IsPublic:    c.FormValue("is_public") == "true",
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, record)
}

// Delete handles DELETE /v1/files/:id.
func (h *FileHandlers) Delete(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.files.Delete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Download handles GET /v1/files/:id/download, streaming the blob.
func (h *FileHandlers) Download(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	download, err := h.files.Download(c.Request().Context(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	defer download.Content.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+download.Record.OriginalFilename+`"`)
	return c.Stream(http.StatusOK, download.Record.FileType, download.Content)
}

// Preview handles GET /v1/files/:id/preview, returning a short-lived URL
// for inline-renderable types.
func (h *FileHandlers) Preview(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	url, err := h.files.PreviewURL(c.Request().Context(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"preview_url": url})
}

// ListByClient handles GET /v1/clients/:id/files.
func (h *FileHandlers) ListByClient(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	limit, offset := paginationFromQuery(c)
	records, err := h.files.ListByClient(c.Request().Context(), actor, clientID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"files":  records,
		"limit":  limit,
		"offset": offset,
	})
}
