package domain

// Subscription links a user to an event. The (UserID, EventID) pair is
// unique while any record for it exists, soft-deleted ones included.
type Subscription struct {
	ID      string
	UserID  string
	EventID string
	Lifecycle
}
