package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-registration/internal/api/dto"
	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/query"
	"github.com/spec-kit/event-registration/internal/service"
	"github.com/spec-kit/event-registration/internal/storage"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// EventsHandler exposes the event resource surface.
type EventsHandler struct {
	events         *service.EventService
	store          storage.ObjectStore
	maxUploadBytes int64
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService, store storage.ObjectStore, maxUploadBytes int64) *EventsHandler {
	return &EventsHandler{events: eventService, store: store, maxUploadBytes: maxUploadBytes}
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	imageURL, err := readImageUpload(c, "image", h.store, h.maxUploadBytes)
	if err != nil {
		return err
	}

	event, err := h.events.Create(c.Context(), p.User, service.EventCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		ImageURL:    imageURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// List handles GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	status, err := parseStatus(c)
	if err != nil {
		return err
	}
	dateTo, err := parseDateTo(c)
	if err != nil {
		return err
	}

	filter := query.EventFilter{
		NameContains: c.Query("name"),
		DateTo:       dateTo,
		Status:       status,
	}
	result, err := h.events.List(c.Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(result, dto.NewEventResponse))
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.events.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Patch handles PATCH /events/:id.
func (h *EventsHandler) Patch(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.PatchEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	event, err := h.events.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := auth.AuthorizeOwnership(p, auth.OpEventsPatch, event.OrganizerID); err != nil {
		return err
	}

	input := service.EventPatchInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
	}
	if imageURL, err := readImageUpload(c, "image", h.store, h.maxUploadBytes); err != nil {
		return err
	} else if imageURL != "" {
		input.ImageURL = &imageURL
	}

	if err := h.events.Patch(c.Context(), event, input); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Delete handles DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	event, err := h.events.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := auth.AuthorizeOwnership(p, auth.OpEventsDelete, event.OrganizerID); err != nil {
		return err
	}

	if err := h.events.SoftDelete(c.Context(), p.User.ID, event); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}
