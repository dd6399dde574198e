package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-registration/internal/domain"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

func principalWithRole(role domain.Role) *Principal {
	return &Principal{User: &domain.User{ID: "caller-1", Role: role}}
}

func requireInvalidCredential(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIAL", apperrors.ToDomainError(err).Code)
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestAuthorizeRole(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		op      string
		allowed bool
	}{
		{"admin lists users", domain.RoleAdmin, OpUsersList, true},
		{"organizer cannot list users", domain.RoleOrganizer, OpUsersList, false},
		{"participant cannot list users", domain.RoleParticipant, OpUsersList, false},

		{"admin creates events", domain.RoleAdmin, OpEventsCreate, true},
		{"organizer creates events", domain.RoleOrganizer, OpEventsCreate, true},
		{"participant cannot create events", domain.RoleParticipant, OpEventsCreate, false},

		{"participant lists events", domain.RoleParticipant, OpEventsList, true},
		{"participant reads an event", domain.RoleParticipant, OpEventsGet, true},
		{"participant cannot patch events", domain.RoleParticipant, OpEventsPatch, false},

		{"participant subscribes", domain.RoleParticipant, OpSubscriptionsCreate, true},
		{"organizer subscribes", domain.RoleOrganizer, OpSubscriptionsCreate, true},
		{"admin does not subscribe", domain.RoleAdmin, OpSubscriptionsCreate, false},

		{"participant patches a user", domain.RoleParticipant, OpUsersPatch, true},
		{"organizer deletes a subscription", domain.RoleOrganizer, OpSubscriptionsDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeRole(principalWithRole(tt.role), tt.op)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				requireForbidden(t, err)
			}
		})
	}
}

func TestAuthorizeRoleUnknownOperation(t *testing.T) {
	requireForbidden(t, AuthorizeRole(principalWithRole(domain.RoleAdmin), "users.promote"))
}

func TestAuthorizeRoleMissingPrincipal(t *testing.T) {
	requireInvalidCredential(t, AuthorizeRole(nil, OpUsersList))
	requireInvalidCredential(t, AuthorizeRole(&Principal{}, OpUsersList))
}

func TestAuthorizeOwnership(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		op      string
		ownerID string
		allowed bool
	}{
		{"owner patches own user", domain.RoleParticipant, OpUsersPatch, "caller-1", true},
		{"non-owner cannot patch user", domain.RoleParticipant, OpUsersPatch, "someone-else", false},
		{"admin bypasses ownership", domain.RoleAdmin, OpUsersPatch, "someone-else", true},

		{"organizer patches own event", domain.RoleOrganizer, OpEventsPatch, "caller-1", true},
		{"organizer cannot patch foreign event", domain.RoleOrganizer, OpEventsPatch, "other-organizer", false},
		{"admin deletes foreign event", domain.RoleAdmin, OpEventsDelete, "other-organizer", true},

		{"subscriber cancels own subscription", domain.RoleParticipant, OpSubscriptionsDelete, "caller-1", true},
		{"subscriber cannot cancel a foreign one", domain.RoleParticipant, OpSubscriptionsDelete, "other-user", false},

		{"ownership-free op ignores owner", domain.RoleParticipant, OpEventsList, "other-user", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeOwnership(principalWithRole(tt.role), tt.op, tt.ownerID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				requireForbidden(t, err)
			}
		})
	}
}

func TestCapabilityFor(t *testing.T) {
	cap, ok := CapabilityFor(OpUsersGet)
	require.True(t, ok)
	assert.True(t, cap.RequiresOwnership)

	_, ok = CapabilityFor("users.promote")
	assert.False(t, ok)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret-pass"))
	assert.Error(t, ComparePassword(hash, "wrong-pass"))
}
