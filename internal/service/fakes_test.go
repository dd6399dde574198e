package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/query"
	"github.com/spec-kit/event-registration/internal/repository"
)

// In-memory repository doubles. They mirror the store contract the services
// rely on, pgx.ErrNoRows included, without a database.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) PhoneExists(_ context.Context, phone string) (bool, error) {
	for _, user := range r.users {
		if user.Phone != "" && user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, filter query.UserFilter, page query.Page) ([]domain.User, string, error) {
	var out []domain.User
	for _, user := range r.users {
		if filter.NameContains != "" && !strings.Contains(user.Name, filter.NameContains) {
			continue
		}
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, "", nil
}

type fakeEventRepo struct {
	events map[string]*domain.Event
}

func newFakeEventRepo(eventList ...*domain.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: map[string]*domain.Event{}}
	for _, e := range eventList {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return event, nil
}

func (r *fakeEventRepo) NameExists(_ context.Context, name string) (bool, error) {
	for _, event := range r.events {
		if event.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventRepo) List(_ context.Context, filter query.EventFilter, page query.Page) ([]domain.Event, string, error) {
	var out []domain.Event
	for _, event := range r.events {
		if filter.NameContains != "" && !strings.Contains(event.Name, filter.NameContains) {
			continue
		}
		if filter.Status != nil && event.Status != *filter.Status {
			continue
		}
		if filter.DateTo != nil && event.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, *event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, "", nil
}

type fakeSubscriptionRepo struct {
	subs        map[string]*domain.Subscription
	subscribers []repository.Subscriber
}

func newFakeSubscriptionRepo(subs ...*domain.Subscription) *fakeSubscriptionRepo {
	repo := &fakeSubscriptionRepo{subs: map[string]*domain.Subscription{}}
	for _, s := range subs {
		repo.subs[s.ID] = s
	}
	return repo
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) error {
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *domain.Subscription) error {
	if _, ok := r.subs[sub.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id string) (*domain.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) ExistsForPair(_ context.Context, userID, eventID string) (bool, error) {
	for _, sub := range r.subs {
		if sub.UserID == userID && sub.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubscriptionRepo) ActiveSubscribers(_ context.Context, _ string) ([]repository.Subscriber, error) {
	return r.subscribers, nil
}

func (r *fakeSubscriptionRepo) List(_ context.Context, filter query.SubscriptionFilter, page query.Page) ([]domain.Subscription, string, error) {
	var out []domain.Subscription
	for _, sub := range r.subs {
		if filter.UserID != "" && sub.UserID != filter.UserID {
			continue
		}
		if filter.EventID != "" && sub.EventID != filter.EventID {
			continue
		}
		if filter.Status != nil && sub.Status != *filter.Status {
			continue
		}
		out = append(out, *sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, "", nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.published {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
