package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/query"
	"github.com/spec-kit/event-registration/internal/repository"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// UserService coordinates account workflows.
type UserService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	now        func() time.Time
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, tokens *auth.TokenManager, dispatcher events.Dispatcher, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// UserCreateInput describes the registration payload.
type UserCreateInput struct {
	Name      string
	Email     string
	Phone     string
	Password  string
	Role      domain.Role
	AvatarURL string
}

// UserPatchInput describes a field-level patch; nil fields stay untouched.
type UserPatchInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

// Register creates an account, then sends the verification email through
// the dispatcher (best-effort).
func (s *UserService) Register(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if !input.Role.SelfRegisterable() {
		return nil, apperrors.NewValidationError("role must be ORGANIZER or PARTICIPANT", nil)
	}

	if exists, err := s.users.EmailExists(ctx, input.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewConflict("email already exists", nil)
	}
	if input.Phone != "" {
		if exists, err := s.users.PhoneExists(ctx, input.Phone); err != nil {
			return nil, err
		} else if exists {
			return nil, apperrors.NewConflict("phone already exists", nil)
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         input.Role,
		AvatarURL:    input.AvatarURL,
		Lifecycle:    domain.NewLifecycle(s.now()),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	verificationToken, err := s.tokens.GenerateVerificationToken(user.ID, user.Email)
	if err == nil {
		s.publish(ctx, events.Event{
			Type:    events.EventUserRegistered,
			ActorID: user.ID,
			Payload: events.UserRegisteredPayload{
				UserID:            user.ID,
				Name:              user.Name,
				Email:             user.Email,
				VerificationToken: verificationToken,
			},
		})
	}
	return user, nil
}

// Get fetches a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// List returns one page of filtered users.
func (s *UserService) List(ctx context.Context, filter query.UserFilter, page query.Page) (query.Result[domain.User], error) {
	page = page.Normalized()
	users, nextKey, err := s.users.List(ctx, filter, page)
	if err != nil {
		return query.Result[domain.User]{}, err
	}
	return query.NewResult(users, nextKey, page), nil
}

// Patch applies a field-level update to an active account, re-checking
// uniqueness on changed email or phone.
func (s *UserService) Patch(ctx context.Context, user *domain.User, input UserPatchInput) error {
	if err := user.AssertActive("user"); err != nil {
		return err
	}

	if input.Email != nil && *input.Email != user.Email {
		if exists, err := s.users.EmailExists(ctx, *input.Email); err != nil {
			return err
		} else if exists {
			return apperrors.NewConflict("email already exists", nil)
		}
		user.Email = *input.Email
	}
	if input.Phone != nil && *input.Phone != user.Phone {
		if exists, err := s.users.PhoneExists(ctx, *input.Phone); err != nil {
			return err
		} else if exists {
			return apperrors.NewConflict("phone already exists", nil)
		}
		user.Phone = *input.Phone
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	user.Touch(s.now())
	return s.users.Update(ctx, user)
}

// SoftDelete deactivates an account. A second call errors with the
// inactive-resource conflict.
func (s *UserService) SoftDelete(ctx context.Context, user *domain.User) error {
	if err := user.SoftDelete("user", s.now()); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventUserDeleted,
		ActorID: user.ID,
		Payload: events.UserDeletedPayload{Name: user.Name, Email: user.Email},
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
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
