package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/query"
	"github.com/spec-kit/event-registration/internal/repository"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// EventService coordinates event workflows.
type EventService struct {
	events        repository.EventRepository
	subscriptions repository.SubscriptionRepository
	dispatcher    events.Dispatcher
	now           func() time.Time
}

// NewEventService constructs the service.
func NewEventService(eventRepo repository.EventRepository, subscriptionRepo repository.SubscriptionRepository, dispatcher events.Dispatcher) *EventService {
	return &EventService{
		events:        eventRepo,
		subscriptions: subscriptionRepo,
		dispatcher:    dispatcher,
		now:           time.Now,
	}
}

// EventCreateInput describes event creation payload.
type EventCreateInput struct {
	Name        string
	Description string
	Date        time.Time
	ImageURL    string
}

// EventPatchInput describes a field-level patch; nil fields stay untouched.
type EventPatchInput struct {
	Name        *string
	Description *string
	Date        *time.Time
	ImageURL    *string
}

// Create registers an event owned by the organizer and emails them a
// confirmation (best-effort).
func (s *EventService) Create(ctx context.Context, organizer *domain.User, input EventCreateInput) (*domain.Event, error) {
	name := strings.TrimSpace(input.Name)
	if exists, err := s.events.NameExists(ctx, name); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewConflict("event name already exists", nil)
	}

	event := &domain.Event{
		ID:          uuid.NewString(),
		OrganizerID: organizer.ID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
		ImageURL:    input.ImageURL,
		Lifecycle:   domain.NewLifecycle(s.now()),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventEventCreated,
		ActorID: organizer.ID,
		Payload: events.EventCreatedPayload{
			EventName:      event.Name,
			Description:    event.Description,
			Date:           event.Date,
			ImageURL:       event.ImageURL,
			OrganizerName:  organizer.Name,
			OrganizerEmail: organizer.Email,
		},
	})
	return event, nil
}

// Get fetches an event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}
	return event, nil
}

// List returns one page of filtered events.
func (s *EventService) List(ctx context.Context, filter query.EventFilter, page query.Page) (query.Result[domain.Event], error) {
	page = page.Normalized()
	items, nextKey, err := s.events.List(ctx, filter, page)
	if err != nil {
		return query.Result[domain.Event]{}, err
	}
	return query.NewResult(items, nextKey, page), nil
}

// Patch applies a field-level update to an active event. Ownership is
// enforced at the handler boundary before the call.
func (s *EventService) Patch(ctx context.Context, event *domain.Event, input EventPatchInput) error {
	if err := event.AssertActive("event"); err != nil {
		return err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != event.Name {
			if exists, err := s.events.NameExists(ctx, name); err != nil {
				return err
			} else if exists {
				return apperrors.NewConflict("event name already exists", nil)
			}
			event.Name = name
		}
	}
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.ImageURL != nil {
		event.ImageURL = *input.ImageURL
	}

	event.Touch(s.now())
	return s.events.Update(ctx, event)
}

// SoftDelete deactivates an event and notifies its active registrants
// (best-effort, after persistence).
func (s *EventService) SoftDelete(ctx context.Context, actorID string, event *domain.Event) error {
	if err := event.SoftDelete("event", s.now()); err != nil {
		return err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return err
	}

	recipients := []events.EventDeletedRecipient{}
	if subscribers, err := s.subscriptions.ActiveSubscribers(ctx, event.ID); err == nil {
		for _, sub := range subscribers {
			recipients = append(recipients, events.EventDeletedRecipient{Name: sub.Name, Email: sub.Email})
		}
	}

	s.publish(ctx, events.Event{
		Type:    events.EventEventDeleted,
		ActorID: actorID,
		Payload: events.EventDeletedPayload{
			EventName:  event.Name,
			Date:       event.Date,
			Recipients: recipients,
		},
	})
	return nil
}

func (s *EventService) publish(ctx context.Context, event events.Event) {
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
