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

// ClientHandlers covers the direct admin CRUD surface plus the owning
// client's self-read. Invitation-driven creation lives in
// InvitationHandlers.
type ClientHandlers struct {
	clients repositories.ClientRepository
}

func NewClientHandlers(clients repositories.ClientRepository) *ClientHandlers {
	return &ClientHandlers{clients: clients}
}

type CreateClientRequest struct {
	PrimaryContact string  `json:"primary_contact" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	CompanyName    *string `json:"company_name"`
	Phone          *string `json:"phone"`
	Status         string  `json:"status"`
	BrandColors    *string `json:"brand_colors"`
	Notes          *string `json:"notes"`
}

// Create handles POST /v1/clients (admin only, enforced by route group).
func (h *ClientHandlers) Create(c echo.Context) error {
	var req CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	status := req.Status
	if status == "" {
		status = models.ClientStatusLead
	}
	if !models.ValidClientStatus(status) {
		return common.SendValidationError(c, "status", "is not a valid client status")
	}

	client := &models.Client{
		ID:             uuid.New(),
		PrimaryContact: req.PrimaryContact,
		Email:          req.Email,
		CompanyName:    req.CompanyName,
		Phone:          req.Phone,
		Status:         status,
		BrandColors:    req.BrandColors,
		Notes:          req.Notes,
	}
	if err := h.clients.Create(c.Request().Context(), client); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, client)
}

// Get handles GET /v1/clients/:id.
func (h *ClientHandlers) Get(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if !authz.CanAccess(actor, authz.ResourceClient, id, authz.VisibilityPublic) {
		return common.SendForbiddenError(c)
	}

	client, err := h.clients.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// List handles GET /v1/clients (admin only, enforced by route group).
func (h *ClientHandlers) List(c echo.Context) error {
	limit, offset := paginationFromQuery(c)
	clients, err := h.clients.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"clients": clients,
		"limit":   limit,
		"offset":  offset,
	})
}

type UpdateClientRequest struct {
	PrimaryContact string  `json:"primary_contact" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	CompanyName    *string `json:"company_name"`
	Phone          *string `json:"phone"`
	Status         string  `json:"status" validate:"required"`
	BrandColors    *string `json:"brand_colors"`
	Notes          *string `json:"notes"`
}

// Update handles PUT /v1/clients/:id (admin only).
func (h *ClientHandlers) Update(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}
	if !models.ValidClientStatus(req.Status) {
		return common.SendValidationError(c, "status", "is not a valid client status")
	}

	client := &models.Client{
		ID:             id,
		PrimaryContact: req.PrimaryContact,
		Email:          req.Email,
		CompanyName:    req.CompanyName,
		Phone:          req.Phone,
		Status:         req.Status,
		BrandColors:    req.BrandColors,
		Notes:          req.Notes,
	}
	if err := h.clients.Update(c.Request().Context(), client); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /v1/clients/:id (admin only). There is no
// cascade: deleting a client with live projects or files fails on the
// foreign key and surfaces as a conflict.
func (h *ClientHandlers) Delete(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.clients.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
