// Package authz holds the single access decision function for every
// tenant-scoped resource. It is pure: no store lookups, no side effects,
// so every rule is exhaustively testable.
package authz

import (
	"github.com/google/uuid"

	"clientdesk/internal/models"
)

// ResourceKind enumerates everything the guard rules over. The decision
// function is total over this set.
type ResourceKind string

const (
	ResourceFile    ResourceKind = "file"
	ResourceClient  ResourceKind = "client"
	ResourceProject ResourceKind = "project"
	ResourceInvoice ResourceKind = "invoice"
)

// Visibility is the per-file public/private flag. Non-file resources pass
// VisibilityPublic.
type Visibility bool

const (
	VisibilityPublic  Visibility = true
	VisibilityPrivate Visibility = false
)

// DenyReason explains a negative decision without leaking tenant detail.
type DenyReason string

const (
	DenyCrossTenant DenyReason = "cross-tenant"
	DenyNotPublic   DenyReason = "not-public"
	DenyUnknownRole DenyReason = "unknown-role"
)

// Decision is the guard's verdict.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(r DenyReason) Decision { return Decision{Allowed: false, Reason: r} }

// Decide applies the access rules in order:
//
//  1. admins may do anything to any resource kind;
//  2. clients may never reach a resource owned by another client;
//  3. private files are invisible even to the owning client;
//  4. everything else is allowed.
//
// It must run before any store mutation or blob read, never after.
func Decide(actor models.Actor, kind ResourceKind, ownerClientID uuid.UUID, visibility Visibility) Decision {
	switch actor.Role {
	case models.RoleAdmin:
		return allow()
	case models.RoleClient:
		if actor.ClientID != ownerClientID {
			return deny(DenyCrossTenant)
		}
		if kind == ResourceFile && visibility == VisibilityPrivate {
			return deny(DenyNotPublic)
		}
		return allow()
	default:
		return deny(DenyUnknownRole)
	}
}

// CanAccess is the boolean convenience over Decide.
func CanAccess(actor models.Actor, kind ResourceKind, ownerClientID uuid.UUID, visibility Visibility) bool {
	return Decide(actor, kind, ownerClientID, visibility).Allowed
}

// CanAccessFile applies the guard to a concrete file record.
func CanAccessFile(actor models.Actor, record *models.FileRecord) bool {
	return CanAccess(actor, ResourceFile, record.ClientID, Visibility(record.IsPublic))
}
