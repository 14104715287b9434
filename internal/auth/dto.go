package auth

import (
	"github.com/avelara/dispatchly-backend/internal/users"
	"github.com/avelara/dispatchly-backend/pkg/enums"
)

// RegisterRequest contains the payload required to onboard a new account.
type RegisterRequest struct {
	Name         string     `json:"name" validate:"required"`
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=8"`
	Role         enums.Role `json:"role" validate:"required"`
	Phone        string     `json:"phone,omitempty"`
	BusinessName *string    `json:"business_name,omitempty"`
	Address      *string    `json:"address,omitempty"`
}

// LoginRequest carries the credentials for password authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a refresh session. The access token may be expired;
// it only identifies the session being rotated.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by login, register, and refresh.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
