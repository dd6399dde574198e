package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

func TestNewLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lc := NewLifecycle(now)

	assert.Equal(t, StatusActive, lc.Status)
	assert.Equal(t, now, lc.CreatedAt)
	assert.Equal(t, now, lc.UpdatedAt)
	assert.Nil(t, lc.DeletedAt)
	assert.True(t, lc.Active())
}

func TestSoftDelete(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deleted := created.Add(time.Hour)

	lc := NewLifecycle(created)
	require.NoError(t, lc.SoftDelete("user", deleted))

	assert.Equal(t, StatusInactive, lc.Status)
	require.NotNil(t, lc.DeletedAt)
	assert.Equal(t, deleted, *lc.DeletedAt)
	assert.Equal(t, deleted, lc.UpdatedAt)
	assert.False(t, lc.Active())
}

func TestSoftDeleteTwiceErrors(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lc := NewLifecycle(now)
	require.NoError(t, lc.SoftDelete("event", now))

	err := lc.SoftDelete("event", now.Add(time.Minute))
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "RESOURCE_INACTIVE", domainErr.Code)

	// Second attempt must not move DeletedAt.
	assert.Equal(t, now, *lc.DeletedAt)
}

func TestAssertActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lc := NewLifecycle(now)
	assert.NoError(t, lc.AssertActive("subscription"))

	require.NoError(t, lc.SoftDelete("subscription", now))
	err := lc.AssertActive("subscription")
	require.Error(t, err)
	assert.Equal(t, "RESOURCE_INACTIVE", apperrors.ToDomainError(err).Code)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, Status("DELETED").Valid())
	assert.False(t, Status("").Valid())
}

func TestEventUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := &Event{Date: now.Add(time.Hour)}
	assert.True(t, event.Upcoming(now))

	event.Date = now
	assert.False(t, event.Upcoming(now), "an event happening right now is no longer upcoming")

	event.Date = now.Add(-time.Hour)
	assert.False(t, event.Upcoming(now))
}

func TestUserMarkVerified(t *testing.T) {
	user := &User{}
	assert.False(t, user.EmailVerified)

	user.MarkVerified()
	assert.True(t, user.EmailVerified)

	user.MarkVerified()
	assert.True(t, user.EmailVerified)
}
