package domain

import (
	"time"

	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// Status enumerates lifecycle states shared by users, events and
// subscriptions.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Valid reports whether the status is a member of the closed enumeration.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Lifecycle carries the soft-delete state embedded in every resource.
// Invariant: DeletedAt is non-nil exactly when Status is INACTIVE.
type Lifecycle struct {
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewLifecycle returns the state of a freshly created resource.
func NewLifecycle(now time.Time) Lifecycle {
	return Lifecycle{Status: StatusActive, CreatedAt: now, UpdatedAt: now}
}

// Active reports whether the resource is still mutable.
func (l *Lifecycle) Active() bool {
	return l.Status == StatusActive
}

// AssertActive fails when the resource has been soft-deleted. Every mutating
// path except SoftDelete itself calls this first.
func (l *Lifecycle) AssertActive(resource string) error {
	if l.Status == StatusInactive {
		return apperrors.NewResourceInactive(resource)
	}
	return nil
}

// SoftDelete transitions Active -> Inactive. The transition is terminal and
// deliberately not idempotent: a second call errors so callers learn the
// delete did nothing.
func (l *Lifecycle) SoftDelete(resource string, now time.Time) error {
	if l.Status == StatusInactive {
		return apperrors.NewResourceInactive(resource)
	}
	l.Status = StatusInactive
	l.DeletedAt = &now
	l.UpdatedAt = now
	return nil
}

// Touch refreshes UpdatedAt after a field-level patch.
func (l *Lifecycle) Touch(now time.Time) {
	l.UpdatedAt = now
}
