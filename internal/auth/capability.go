package auth

import (
	"github.com/spec-kit/event-registration/internal/domain"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// Capability declares who may invoke an operation. RequiresOwnership means
// the target resource's owner field must match the caller, unless the
// caller is an admin.
type Capability struct {
	AllowedRoles      []domain.Role
	RequiresOwnership bool
}

// Operation keys consumed by route wiring and handlers.
const (
	OpUsersList   = "users.list"
	OpUsersGet    = "users.get"
	OpUsersPatch  = "users.patch"
	OpUsersDelete = "users.delete"

	OpEventsCreate = "events.create"
	OpEventsList   = "events.list"
	OpEventsGet    = "events.get"
	OpEventsPatch  = "events.patch"
	OpEventsDelete = "events.delete"

	OpSubscriptionsCreate = "subscriptions.create"
	OpSubscriptionsList   = "subscriptions.list"
	OpSubscriptionsGet    = "subscriptions.get"
	OpSubscriptionsDelete = "subscriptions.delete"
)

var anyRole = []domain.Role{domain.RoleAdmin, domain.RoleOrganizer, domain.RoleParticipant}

// capabilities is the single declarative authorization table. Handlers never
// hard-code role checks; they name an operation and the guard does the rest.
var capabilities = map[string]Capability{
	OpUsersList:   {AllowedRoles: []domain.Role{domain.RoleAdmin}},
	OpUsersGet:    {AllowedRoles: anyRole, RequiresOwnership: true},
	OpUsersPatch:  {AllowedRoles: anyRole, RequiresOwnership: true},
	OpUsersDelete: {AllowedRoles: anyRole, RequiresOwnership: true},

	OpEventsCreate: {AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleOrganizer}},
	OpEventsList:   {AllowedRoles: anyRole},
	OpEventsGet:    {AllowedRoles: anyRole},
	OpEventsPatch:  {AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleOrganizer}, RequiresOwnership: true},
	OpEventsDelete: {AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleOrganizer}, RequiresOwnership: true},

	OpSubscriptionsCreate: {AllowedRoles: []domain.Role{domain.RoleOrganizer, domain.RoleParticipant}},
	OpSubscriptionsList:   {AllowedRoles: anyRole},
	OpSubscriptionsGet:    {AllowedRoles: anyRole, RequiresOwnership: true},
	OpSubscriptionsDelete: {AllowedRoles: anyRole, RequiresOwnership: true},
}

// CapabilityFor looks up the table entry for an operation.
func CapabilityFor(op string) (Capability, bool) {
	cap, ok := capabilities[op]
	return cap, ok
}

// AuthorizeRole checks the caller's role against the operation's allowed
// set. Unknown operations are denied outright.
func AuthorizeRole(principal *Principal, op string) error {
	cap, ok := capabilities[op]
	if !ok {
		return apperrors.NewForbidden("operation not permitted")
	}
	if principal == nil || principal.User == nil {
		return apperrors.NewInvalidCredential()
	}
	for _, role := range cap.AllowedRoles {
		if principal.User.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("insufficient role")
}

// AuthorizeOwnership enforces the ownership half of the capability once the
// target's owner is known. Admins bypass ownership.
func AuthorizeOwnership(principal *Principal, op, ownerID string) error {
	cap, ok := capabilities[op]
	if !ok {
		return apperrors.NewForbidden("operation not permitted")
	}
	if !cap.RequiresOwnership {
		return nil
	}
	if principal == nil || principal.User == nil {
		return apperrors.NewInvalidCredential()
	}
	if principal.User.Role == domain.RoleAdmin {
		return nil
	}
	if principal.User.ID != ownerID {
		return apperrors.NewForbidden("you can only access your own resources")
	}
	return nil
}
