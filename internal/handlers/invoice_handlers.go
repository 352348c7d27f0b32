package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clientdesk/internal/authz"
	"clientdesk/internal/common"
	"clientdesk/internal/repositories"
)

// InvoiceHandlers exposes invoices as an access-controlled resource;
// billing arithmetic is out of scope for this service.
type InvoiceHandlers struct {
	invoices repositories.InvoiceRepository
}

func NewInvoiceHandlers(invoices repositories.InvoiceRepository) *InvoiceHandlers {
	return &InvoiceHandlers{invoices: invoices}
}

// Get handles GET /v1/invoices/:id.
func (h *InvoiceHandlers) Get(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	invoice, err := h.invoices.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	if !authz.CanAccess(actor, authz.ResourceInvoice, invoice.ClientID, authz.VisibilityPublic) {
		return common.SendForbiddenError(c)
	}
	return c.JSON(http.StatusOK, invoice)
}

// ListByClient handles GET /v1/clients/:id/invoices.
func (h *InvoiceHandlers) ListByClient(c echo.Context) error {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if !authz.CanAccess(actor, authz.ResourceInvoice, clientID, authz.VisibilityPublic) {
		return common.SendForbiddenError(c)
	}

	limit, offset := paginationFromQuery(c)
	invoices, err := h.invoices.ListByClient(c.Request().Context(), clientID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"invoices": invoices,
		"limit":    limit,
		"offset":   offset,
	})
}

// List handles GET /v1/invoices (admin only).
func (h *InvoiceHandlers) List(c echo.Context) error {
	limit, offset := paginationFromQuery(c)
	invoices, err := h.invoices.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"invoices": invoices,
		"limit":    limit,
		"offset":   offset,
	})
}
