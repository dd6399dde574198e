package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/query"
	"github.com/spec-kit/event-registration/internal/repository"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// SubscriptionService runs the eligibility pipeline gating registration and
// handles cancellation.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	events        repository.EventRepository
	dispatcher    events.Dispatcher
	now           func() time.Time
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository, userRepo repository.UserRepository, eventRepo repository.EventRepository, dispatcher events.Dispatcher) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptionRepo,
		users:         userRepo,
		events:        eventRepo,
		dispatcher:    dispatcher,
		now:           time.Now,
	}
}

// Create runs the ordered eligibility checks, each short-circuiting on the
// first failure, then persists and dispatches the confirmation. Uniqueness
// goes first because it is the cheapest and most common rejection; the
// subscriber's own state is checked before any event state is revealed.
// Nothing is persisted unless every check passed.
func (s *SubscriptionService) Create(ctx context.Context, userID, eventID string) (*domain.Subscription, error) {
	exists, err := s.subscriptions.ExistsForPair(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateSubscription()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if !user.Active() {
		return nil, apperrors.NewSubscriberInactive()
	}
	if !user.EmailVerified {
		return nil, apperrors.NewSubscriberUnverified()
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}
	if !event.Active() {
		return nil, apperrors.NewEventInactive()
	}
	if !event.Upcoming(s.now()) {
		return nil, apperrors.NewEventExpired()
	}

	organizer, err := s.users.GetByID(ctx, event.OrganizerID)
	if err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventID:   eventID,
		Lifecycle: domain.NewLifecycle(s.now()),
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventSubscriptionCreated,
		ActorID: userID,
		Payload: events.SubscriptionCreatedPayload{
			SubscriptionID:   sub.ID,
			UserName:         user.Name,
			UserEmail:        user.Email,
			EventID:          event.ID,
			EventName:        event.Name,
			EventDescription: event.Description,
			EventDate:        event.Date,
			EventImageURL:    event.ImageURL,
			OrganizerName:    organizer.Name,
			OrganizerEmail:   organizer.Email,
		},
	})
	return sub, nil
}

// Get fetches a subscription by ID.
func (s *SubscriptionService) Get(ctx context.Context, id string) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subscription", nil)
		}
		return nil, err
	}
	return sub, nil
}

// List returns one page of the caller's subscriptions. Admins may scope to
// any user; everyone else is pinned to their own.
func (s *SubscriptionService) List(ctx context.Context, caller *domain.User, filter query.SubscriptionFilter, page query.Page) (query.Result[domain.Subscription], error) {
	if caller.Role != domain.RoleAdmin || filter.UserID == "" {
		filter.UserID = caller.ID
	}
	page = page.Normalized()
	items, nextKey, err := s.subscriptions.List(ctx, filter, page)
	if err != nil {
		return query.Result[domain.Subscription]{}, err
	}
	return query.NewResult(items, nextKey, page), nil
}

// Cancel soft-deletes a subscription. Ownership is enforced at the handler
// boundary; a second cancel errors with the inactive-resource conflict.
func (s *SubscriptionService) Cancel(ctx context.Context, sub *domain.Subscription) error {
	if err := sub.SoftDelete("subscription", s.now()); err != nil {
		return err
	}
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return err
	}

	// Contact data for the cancellation email; failures here only mute the
	// notification, never the cancellation.
	user, userErr := s.users.GetByID(ctx, sub.UserID)
	event, eventErr := s.events.GetByID(ctx, sub.EventID)
	if userErr == nil && eventErr == nil {
		s.publish(ctx, events.Event{
			Type:    events.EventSubscriptionCancelled,
			ActorID: sub.UserID,
			Payload: events.SubscriptionCancelledPayload{
				UserName:  user.Name,
				UserEmail: user.Email,
				EventName: event.Name,
				EventDate: event.Date,
			},
		})
	}
	return nil
}

func (s *SubscriptionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
