package domain

import "time"

// Event is the domain model for a scheduled happening users subscribe to.
// OrganizerID is immutable after creation; its referenced user is the only
// non-admin actor permitted to mutate the event.
type Event struct {
	ID          string
	OrganizerID string
	Name        string
	Description string
	Date        time.Time
	ImageURL    string
	Lifecycle
}

// Upcoming reports whether the event date lies strictly in the future.
func (e *Event) Upcoming(now time.Time) bool {
	return e.Date.After(now)
}
