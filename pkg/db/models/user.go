package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
)

// User represents the canonical identity entity. PasswordHash is empty only
// for federated signups that carry a profile image URL.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null;default:''"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	BusinessName string         `gorm:"column:business_name;not null"`
	BusinessType string         `gorm:"column:business_type;not null"`
	Location     string         `gorm:"column:location;not null"`
	Image        *string        `gorm:"column:image"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
