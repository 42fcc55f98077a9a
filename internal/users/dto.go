package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the credential hash.
type UserDTO struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         enums.UserRole `json:"role"`
	BusinessName string         `json:"businessName"`
	BusinessType string         `json:"businessType"`
	Location     string         `json:"location"`
	Image        *string        `json:"image,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.UserRole
	BusinessName string
	BusinessType string
	Location     string
	Image        *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		BusinessName: u.BusinessName,
		BusinessType: u.BusinessType,
		Location:     u.Location,
		Image:        u.Image,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		BusinessName: c.BusinessName,
		BusinessType: c.BusinessType,
		Location:     c.Location,
		Image:        c.Image,
	}
}
