package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"clientdesk/internal/common"
	"clientdesk/internal/repositories"
	"clientdesk/internal/saga"
	"clientdesk/internal/services"
)

// respondError maps the typed error taxonomy onto HTTP responses. Nothing
// store- or provider-specific leaks into a response body.
func respondError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	var compensated *saga.CompensatedFailure

	switch {
	case errors.As(err, &validationErr):
		return common.SendValidationError(c, validationErr.Field, validationErr.Message)
	case errors.Is(err, services.ErrDuplicateEmail):
		return common.SendConflictError(c, "A client with this email already exists")
	case errors.Is(err, services.ErrForbidden):
		return common.SendForbiddenError(c)
	case errors.Is(err, repositories.ErrNotFound):
		return common.SendNotFoundError(c, "Resource")
	case errors.Is(err, repositories.ErrUniqueViolation):
		return common.SendConflictError(c, "A record with these values already exists")
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return common.SendConflictError(c, "The record is referenced by other records")
	case errors.As(err, &compensated):
		return common.SendDependencyError(c)
	default:
		return common.SendServerError(c, "The request could not be completed")
	}
}
