package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clientdesk/internal/authz"
	"clientdesk/internal/common"
	"clientdesk/internal/models"
	"clientdesk/internal/repositories"
)

type ProjectHandlers struct {
	projects repositories.ProjectRepository
}

func NewProjectHandlers(projects repositories.ProjectRepository) *ProjectHandlers {
	return &ProjectHandlers{projects: projects}
}

type CreateProjectRequest struct {
	ClientID    string  `json:"client_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	ProjectType *string `json:"project_type"`
	Status      string  `json:"status"`
	TotalValue  float64 `json:"total_value"`
}

// Create handles POST /v1/projects (admin only).
func (h *ProjectHandlers) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	clientID, err := common.ValidateUUID(req.ClientID, "client_id")
	if err != nil {
		return common.SendValidationError(c, "client_id", err.Error())
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}
	if !models.ValidProjectStatus(status) {
		return common.SendValidationError(c, "status", "is not a valid project status")
	}

	project := &models.Project{
		ID:          uuid.New(),
		ClientID:    clientID,
		Name:        req.Name,
		ProjectType: req.ProjectType,
		Status:      status,
		TotalValue:  req.TotalValue,
	}
	if err := h.projects.Create(c.Request().Context(), project); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// Get handles GET /v1/projects/:id.
func (h *ProjectHandlers) Get(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	project, err := h.projects.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	if !authz.CanAccess(actor, authz.ResourceProject, project.ClientID, authz.VisibilityPublic) {
		return common.SendForbiddenError(c)
	}
	return c.JSON(http.StatusOK, project)
}

// ListByClient handles GET /v1/clients/:id/projects.
func (h *ProjectHandlers) ListByClient(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if !authz.CanAccess(actor, authz.ResourceProject, clientID, authz.VisibilityPublic) {
		return common.SendForbiddenError(c)
	}

	limit, offset := paginationFromQuery(c)
	projects, err := h.projects.ListByClient(c.Request().Context(), clientID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"projects": projects,
		"limit":    limit,
		"offset":   offset,
	})
}

type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PUT /v1/projects/:id/status (admin only).
func (h *ProjectHandlers) UpdateStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateProjectStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if !models.ValidProjectStatus(req.Status) {
		return common.SendValidationError(c, "status", "is not a valid project status")
	}

	project, err := h.projects.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	project.Status = req.Status
	if err := h.projects.Update(c.Request().Context(), project); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /v1/projects/:id (admin only).
func (h *ProjectHandlers) Delete(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.projects.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
