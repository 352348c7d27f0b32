package middleware

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clientdesk/internal/common"
	"clientdesk/internal/models"
)

var errUnknownRole = errors.New("middleware: unknown role claim")

// PortalClaims are the claims the hosted identity provider issues for
// portal tokens. ClientID is present iff the role is client.
type PortalClaims struct {
	Role     string `json:"role"`
	ClientID string `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// AttachActor is the echo-jwt success handler: it converts validated
// claims into an Actor on the request context. Handlers treat a missing
// actor as unauthenticated, so malformed claims fail closed.
func AttachActor(c echo.Context) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return
	}
	claims, ok := token.Claims.(*PortalClaims)
	if !ok {
		return
	}

	actor, err := actorFromClaims(claims)
	if err != nil {
		return
	}

	ctx := common.WithActor(c.Request().Context(), actor)
	c.SetRequest(c.Request().WithContext(ctx))
}

func actorFromClaims(claims *PortalClaims) (models.Actor, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Actor{}, err
	}

	role := models.Role(claims.Role)
	if !role.Valid() {
		return models.Actor{}, errUnknownRole
	}

	actor := models.Actor{UserID: userID, Role: role}
	if role == models.RoleClient {
		clientID, err := uuid.Parse(claims.ClientID)
		if err != nil {
			return models.Actor{}, err
		}
		actor.ClientID = clientID
	}
	return actor, nil
}
