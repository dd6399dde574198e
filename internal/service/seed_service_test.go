package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/domain"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

func TestEnsureDefaultAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewSeedService(repo, config.SeedConfig{
		AdminName:     "Root",
		AdminEmail:    "root@example.com",
		AdminPassword: "s3cret-pass",
	}, 4, zap.NewNop())

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	admin, err := repo.GetByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.EmailVerified, "the seeded admin skips email verification")
	assert.Equal(t, domain.StatusActive, admin.Status)

	// Idempotent: the second run leaves the existing account alone.
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	assert.Len(t, repo.users, 1)
}

func TestEnsureDefaultAdminSkipsWhenUnset(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewSeedService(repo, config.SeedConfig{}, 4, zap.NewNop())

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	assert.Empty(t, repo.users)
}

func TestEnsureDefaultAdminPartialConfig(t *testing.T) {
	svc := NewSeedService(newFakeUserRepo(), config.SeedConfig{
		AdminEmail: "root@example.com",
	}, 4, zap.NewNop())

	err := svc.EnsureDefaultAdmin(context.Background())
	require.Error(t, err)
	assert.Equal(t, "MISCONFIGURATION", apperrors.ToDomainError(err).Code)
}
