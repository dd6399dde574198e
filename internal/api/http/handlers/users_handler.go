package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-registration/internal/api/dto"
	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/query"
	"github.com/spec-kit/event-registration/internal/service"
	"github.com/spec-kit/event-registration/internal/storage"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// UsersHandler exposes the user resource surface.
type UsersHandler struct {
	users          *service.UserService
	store          storage.ObjectStore
	maxUploadBytes int64
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, store storage.ObjectStore, maxUploadBytes int64) *UsersHandler {
	return &UsersHandler{users: userService, store: store, maxUploadBytes: maxUploadBytes}
}

// Register handles POST /users (public self-registration).
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	avatarURL, err := readImageUpload(c, "image", h.store, h.maxUploadBytes)
	if err != nil {
		return err
	}

	user, err := h.users.Register(c.Context(), service.UserCreateInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		AvatarURL: avatarURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	role, err := parseRole(c)
	if err != nil {
		return err
	}
	status, err := parseStatus(c)
	if err != nil {
		return err
	}

	filter := query.UserFilter{
		NameContains:  c.Query("name"),
		EmailContains: c.Query("email"),
		Role:          role,
		Status:        status,
	}
	result, err := h.users.List(c.Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(result, dto.NewUserResponse))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := auth.AuthorizeOwnership(p, auth.OpUsersGet, id); err != nil {
		return err
	}

	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Patch handles PATCH /users/:id.
func (h *UsersHandler) Patch(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := auth.AuthorizeOwnership(p, auth.OpUsersPatch, id); err != nil {
		return err
	}

	var req dto.PatchUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if err := h.users.Patch(c.Context(), user, service.UserPatchInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := auth.AuthorizeOwnership(p, auth.OpUsersDelete, id); err != nil {
		return err
	}

	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if err := h.users.SoftDelete(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
