package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered        EventType = "user_registered"
	EventUserDeleted           EventType = "user_deleted"
	EventEventCreated          EventType = "event_created"
	EventEventDeleted          EventType = "event_deleted"
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
)

// Event represents a domain event emitted by services. Payloads carry all
// contact data notification handlers need; handlers never reach back into
// repositories.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload carries the verification token for the welcome
// email link.
type UserRegisteredPayload struct {
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventCreatedPayload payload for the organizer confirmation email.
type EventCreatedPayload struct {
	EventName      string    `json:"event_name"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date"`
	ImageURL       string    `json:"image_url,omitempty"`
	OrganizerName  string    `json:"organizer_name"`
	OrganizerEmail string    `json:"organizer_email"`
}

// EventDeletedRecipient is one active registrant to notify.
type EventDeletedRecipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventDeletedPayload payload.
type EventDeletedPayload struct {
	EventName  string                  `json:"event_name"`
	Date       time.Time               `json:"date"`
	Recipients []EventDeletedRecipient `json:"recipients"`
}

// SubscriptionCreatedPayload carries everything the confirmation email and
// its calendar attachment need.
type SubscriptionCreatedPayload struct {
	SubscriptionID   string    `json:"subscription_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	EventID          string    `json:"event_id"`
	EventName        string    `json:"event_name"`
	EventDescription string    `json:"event_description"`
	EventDate        time.Time `json:"event_date"`
	EventImageURL    string    `json:"event_image_url,omitempty"`
	OrganizerName    string    `json:"organizer_name"`
	OrganizerEmail   string    `json:"organizer_email"`
}

// SubscriptionCancelledPayload payload.
type SubscriptionCancelledPayload struct {
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	EventName string    `json:"event_name"`
	EventDate time.Time `json:"event_date"`
}
