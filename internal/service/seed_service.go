package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/repository"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// SeedService creates the default admin account at startup. Admin accounts
// cannot be self-registered, so seeding is the only way one comes to exist.
type SeedService struct {
	users      repository.UserRepository
	cfg        config.SeedConfig
	bcryptCost int
	logger     *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(users repository.UserRepository, cfg config.SeedConfig, bcryptCost int, logger *zap.Logger) *SeedService {
	return &SeedService{users: users, cfg: cfg, bcryptCost: bcryptCost, logger: logger}
}

// EnsureDefaultAdmin creates the configured admin unless it already exists.
// Fully unset seed variables skip seeding; a partial set is a deployment
// fault.
func (s *SeedService) EnsureDefaultAdmin(ctx context.Context) error {
	if s.cfg.AdminName == "" && s.cfg.AdminEmail == "" && s.cfg.AdminPassword == "" {
		s.logger.Info("seed variables not set; skipping default admin")
		return nil
	}
	if s.cfg.AdminName == "" || s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return apperrors.NewMisconfiguration("environment variables for default user are not set")
	}

	exists, err := s.users.EmailExists(ctx, s.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Warn("default admin already exists; skipping creation",
			zap.String("email", s.cfg.AdminEmail))
		return nil
	}

	hash, err := auth.HashPassword(s.cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:            uuid.NewString(),
		Name:          s.cfg.AdminName,
		Email:         s.cfg.AdminEmail,
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		EmailVerified: true,
		Lifecycle:     domain.NewLifecycle(time.Now()),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("default admin created", zap.String("email", admin.Email))
	return nil
}
