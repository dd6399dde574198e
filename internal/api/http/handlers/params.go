package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/query"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// parsePage reads the shared pagination query parameters. The lastKey token
// passes through untouched; only the store decodes it.
func parsePage(c *fiber.Ctx) query.Page {
	return query.Page{
		Limit:   c.QueryInt("limit", 0),
		LastKey: c.Query("lastKey"),
		Number:  c.QueryInt("page", 0),
	}
}

func parseStatus(c *fiber.Ctx) (*domain.Status, error) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return nil, nil
	}
	status := domain.Status(strings.ToUpper(raw))
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status filter", map[string]any{"status": raw})
	}
	return &status, nil
}

func parseRole(c *fiber.Ctx) (*domain.Role, error) {
	raw := strings.TrimSpace(c.Query("role"))
	if raw == "" {
		return nil, nil
	}
	role := domain.Role(strings.ToUpper(raw))
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role filter", map[string]any{"role": raw})
	}
	return &role, nil
}

func parseDateTo(c *fiber.Ctx) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.NewValidationError("invalid date filter", map[string]any{"date": raw})
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok || p.User == nil {
		return nil, apperrors.NewInvalidCredential()
	}
	return p, nil
}
