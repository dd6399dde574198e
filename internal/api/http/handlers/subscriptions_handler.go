package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-registration/internal/api/dto"
	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/query"
	"github.com/spec-kit/event-registration/internal/service"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// SubscriptionsHandler exposes the subscription resource surface.
type SubscriptionsHandler struct {
	subscriptions *service.SubscriptionService
}

// NewSubscriptionsHandler constructs handler.
func NewSubscriptionsHandler(subscriptionService *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{subscriptions: subscriptionService}
}

// Create handles POST /subscriptions. The subscriber is always the caller.
func (h *SubscriptionsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sub, err := h.subscriptions.Create(c.Context(), p.User.ID, req.EventID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}

// List handles GET /subscriptions. Non-admin callers only see their own rows.
func (h *SubscriptionsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	status, err := parseStatus(c)
	if err != nil {
		return err
	}

	filter := query.SubscriptionFilter{
		UserID:  c.Query("user_id"),
		EventID: c.Query("event_id"),
		Status:  status,
	}
	result, err := h.subscriptions.List(c.Context(), p.User, filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(result, dto.NewSubscriptionResponse))
}

// Get handles GET /subscriptions/:id.
func (h *SubscriptionsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriptions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := auth.AuthorizeOwnership(p, auth.OpSubscriptionsGet, sub.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}

// Delete handles DELETE /subscriptions/:id (cancellation).
func (h *SubscriptionsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriptions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := auth.AuthorizeOwnership(p, auth.OpSubscriptionsDelete, sub.UserID); err != nil {
		return err
	}

	if err := h.subscriptions.Cancel(c.Context(), sub); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}
