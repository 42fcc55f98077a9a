package auth

import (
	"github.com/bulkmandi/bulkmandi-backend/internal/users"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
)

// ProviderGoogle marks federated signups that arrive without a password.
const ProviderGoogle = "google"

// RegisterRequest contains the payload required for onboarding a new business.
type RegisterRequest struct {
	Name         string         `json:"name" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	Password     string         `json:"password,omitempty"`
	Role         enums.UserRole `json:"role" validate:"required"`
	BusinessName string         `json:"businessName" validate:"required"`
	BusinessType string         `json:"businessType" validate:"required"`
	Location     string         `json:"location" validate:"required"`
	Image        *string        `json:"image,omitempty"`
	Provider     string         `json:"provider,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token plus the refresh secret.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse contains the token pair and user produced by a successful login or refresh.
type AuthResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         *users.UserDTO `json:"user"`
}
