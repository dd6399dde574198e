package dto

import (
	"time"

	"github.com/spec-kit/event-registration/internal/domain"
)

// CreateSubscriptionRequest payload for registering to an event.
type CreateSubscriptionRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
}

// SubscriptionResponse is the public projection of a subscription record.
type SubscriptionResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	EventID   string     `json:"event_id"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewSubscriptionResponse maps a domain subscription.
func NewSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        sub.ID,
		UserID:    sub.UserID,
		EventID:   sub.EventID,
		Status:    string(sub.Status),
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
		DeletedAt: sub.DeletedAt,
	}
}
