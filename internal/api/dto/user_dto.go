package dto

import (
	"time"

	"github.com/spec-kit/event-registration/internal/domain"
)

// RegisterUserRequest payload for self-registration. Role is restricted to
// the self-registerable pair; admins only come from seeding.
type RegisterUserRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,e164"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Role     string `json:"role" form:"role" validate:"required,oneof=ORGANIZER PARTICIPANT"`
}

// PatchUserRequest payload; absent fields stay untouched.
type PatchUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,e164"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// UserResponse is the public projection of a user record.
type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Role          string     `json:"role"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          string(user.Role),
		AvatarURL:     user.AvatarURL,
		EmailVerified: user.EmailVerified,
		Status:        string(user.Status),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		DeletedAt:     user.DeletedAt,
	}
}
