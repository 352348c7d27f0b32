package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clientdesk/internal/common"
	"clientdesk/internal/services"
)

// InvitationHandlers exposes the client onboarding flow. Admin only.
type InvitationHandlers struct {
	invitations services.InvitationService
}

func NewInvitationHandlers(invitations services.InvitationService) *InvitationHandlers {
	return &InvitationHandlers{invitations: invitations}
}

// InviteClientRequest is the onboarding payload.
type InviteClientRequest struct {
	ContactName     string  `json:"contact_name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	CompanyName     *string `json:"company_name"`
	Phone           *string `json:"phone"`
	ProjectName     *string `json:"project_name"`
	ProjectType     *string `json:"project_type"`
	PersonalMessage *string `json:"personal_message" validate:"omitempty,max=2000"`
}

// InviteClient handles POST /v1/invitations.
func (h *InvitationHandlers) InviteClient(c echo.Context) error {
	var req InviteClientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	result, err := h.invitations.InviteClient(c.Request().Context(), services.InviteClientInput{
		ContactName:     req.ContactName,
		Email:           req.Email,
		CompanyName:     req.CompanyName,
		Phone:           req.Phone,
		ProjectName:     req.ProjectName,
		ProjectType:     req.ProjectType,
		PersonalMessage: req.PersonalMessage,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}
