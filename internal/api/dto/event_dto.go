package dto

import (
	"time"

	"github.com/spec-kit/event-registration/internal/domain"
)

// CreateEventRequest payload for event creation.
type CreateEventRequest struct {
	Name        string    `json:"name" form:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description" form:"description" validate:"max=2000"`
	Date        time.Time `json:"date" form:"date" validate:"required"`
}

// PatchEventRequest payload; absent fields stay untouched. A replacement
// image, when supplied, travels as a multipart file part alongside these
// fields.
type PatchEventRequest struct {
	Name        *string    `json:"name" form:"name" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description" form:"description" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date" form:"date"`
}

// EventResponse is the public projection of an event record.
type EventResponse struct {
	ID          string     `json:"id"`
	OrganizerID string     `json:"organizer_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Date        time.Time  `json:"date"`
	ImageURL    string     `json:"image_url,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewEventResponse maps a domain event.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		OrganizerID: event.OrganizerID,
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date,
		ImageURL:    event.ImageURL,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
		DeletedAt:   event.DeletedAt,
	}
}
