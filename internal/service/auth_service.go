package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/persistence"
	"github.com/spec-kit/event-registration/internal/repository"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// AuthService coordinates login and email-verification flows.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenManager
	redis     *persistence.Redis
	verifyTTL time.Duration
	now       func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, redis *persistence.Redis) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.LoginTokenTTLDays, cfg.VerificationTokenTTLHours),
		redis:     redis,
		verifyTTL: time.Duration(cfg.VerificationTokenTTLHours) * time.Hour,
		now:       time.Now,
	}
}

// Login authenticates by email and password and issues a login token.
// Unknown email and wrong password share one message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewValidationError("invalid email or password", nil)
		}
		return nil, "", time.Time{}, err
	}
	if !user.Active() {
		return nil, "", time.Time{}, apperrors.NewValidationError("user account is deleted", nil)
	}
	if !user.EmailVerified {
		return nil, "", time.Time{}, apperrors.NewValidationError("email not verified", nil)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid email or password", nil)
	}

	token, expiresAt, err := s.tokens.GenerateLoginToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// VerifyEmail redeems a single-use verification token and flips the user's
// emailVerified flag. Redemption is tracked in Redis so a replayed token is
// refused even before its expiry.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.tokens.ParseVerificationToken(tokenStr)
	if err != nil {
		return nil, err
	}

	if s.redis != nil && s.redis.Client != nil {
		key := fmt.Sprintf("email-verification:redeemed:%s", claims.ID)
		ok, err := s.redis.Client.SetNX(ctx, key, 1, s.verifyTTL).Result()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NewInvalidCredential()
		}
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredential()
		}
		return nil, err
	}

	user.MarkVerified()
	user.Touch(s.now())
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
