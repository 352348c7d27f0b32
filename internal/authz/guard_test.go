package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"clientdesk/internal/models"
)

func TestDecide(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	admin := models.Actor{UserID: uuid.New(), Role: models.RoleAdmin}
	owner := models.Actor{UserID: uuid.New(), Role: models.RoleClient, ClientID: ownerID}
	stranger := models.Actor{UserID: uuid.New(), Role: models.RoleClient, ClientID: otherID}
	unknown := models.Actor{UserID: uuid.New(), Role: models.Role("superuser")}

	tests := []struct {
		name       string
		actor      models.Actor
		kind       ResourceKind
		visibility Visibility
		allowed    bool
		reason     DenyReason
	}{
		{name: "admin reads any private file", actor: admin, kind: ResourceFile, visibility: VisibilityPrivate, allowed: true},
		{name: "admin reads any client", actor: admin, kind: ResourceClient, visibility: VisibilityPublic, allowed: true},
		{name: "admin reads any invoice", actor: admin, kind: ResourceInvoice, visibility: VisibilityPublic, allowed: true},
		{name: "owner reads own public file", actor: owner, kind: ResourceFile, visibility: VisibilityPublic, allowed: true},
		{name: "owner cannot read own private file", actor: owner, kind: ResourceFile, visibility: VisibilityPrivate, allowed: false, reason: DenyNotPublic},
		{name: "owner reads own client record", actor: owner, kind: ResourceClient, visibility: VisibilityPublic, allowed: true},
		{name: "owner reads own project", actor: owner, kind: ResourceProject, visibility: VisibilityPublic, allowed: true},
		{name: "owner reads own invoice", actor: owner, kind: ResourceInvoice, visibility: VisibilityPublic, allowed: true},
		{name: "stranger denied public file of another tenant", actor: stranger, kind: ResourceFile, visibility: VisibilityPublic, allowed: false, reason: DenyCrossTenant},
		{name: "stranger denied another tenant's client record", actor: stranger, kind: ResourceClient, visibility: VisibilityPublic, allowed: false, reason: DenyCrossTenant},
		{name: "stranger denied another tenant's invoice", actor: stranger, kind: ResourceInvoice, visibility: VisibilityPublic, allowed: false, reason: DenyCrossTenant},
		{name: "unknown role denied everything", actor: unknown, kind: ResourceClient, visibility: VisibilityPublic, allowed: false, reason: DenyUnknownRole},
		{name: "zero-value actor denied", actor: models.Actor{}, kind: ResourceFile, visibility: VisibilityPublic, allowed: false, reason: DenyUnknownRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.actor, tt.kind, ownerID, tt.visibility)
			assert.Equal(t, tt.allowed, got.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.reason, got.Reason)
			}
			assert.Equal(t, tt.allowed, CanAccess(tt.actor, tt.kind, ownerID, tt.visibility))
		})
	}
}

// Cross-tenant wins over visibility: a public file belonging to another
// client is still out of reach.
func TestDecide_CrossTenantBeatsVisibility(t *testing.T) {
	actor := models.Actor{UserID: uuid.New(), Role: models.RoleClient, ClientID: uuid.New()}
	got := Decide(actor, ResourceFile, uuid.New(), VisibilityPublic)
	assert.False(t, got.Allowed)
	assert.Equal(t, DenyCrossTenant, got.Reason)
}

func TestCanAccessFile(t *testing.T) {
	clientID := uuid.New()
	actor := models.Actor{UserID: uuid.New(), Role: models.RoleClient, ClientID: clientID}

	public := &models.FileRecord{ID: uuid.New(), ClientID: clientID, IsPublic: true}
	private := &models.FileRecord{ID: uuid.New(), ClientID: clientID, IsPublic: false}
	foreign := &models.FileRecord{ID: uuid.New(), ClientID: uuid.New(), IsPublic: true}

	assert.True(t, CanAccessFile(actor, public))
	assert.False(t, CanAccessFile(actor, private))
	assert.False(t, CanAccessFile(actor, foreign))

	admin := models.Actor{UserID: uuid.New(), Role: models.RoleAdmin}
	assert.True(t, CanAccessFile(admin, private))
	assert.True(t, CanAccessFile(admin, foreign))
}
