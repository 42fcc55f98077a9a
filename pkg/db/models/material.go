package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
)

// Material represents a supplier's raw-material listing.
type Material struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string                 `gorm:"column:name;not null"`
	Description       *string                `gorm:"column:description"`
	Category          enums.MaterialCategory `gorm:"column:category;type:text;not null"`
	PricePerUnit      decimal.Decimal        `gorm:"column:price_per_unit;type:numeric(12,2);not null"`
	AvailableQuantity int64                  `gorm:"column:available_quantity;not null"`
	MinOrderQuantity  int64                  `gorm:"column:min_order_quantity;not null;default:1"`
	Unit              enums.MaterialUnit     `gorm:"column:unit;type:text;not null;default:'kg'"`
	DeliveryArea      string                 `gorm:"column:delivery_area;not null"`
	DeliveryRadiusKM  int                    `gorm:"column:delivery_radius_km;not null;default:50"`
	SupplierID        uuid.UUID              `gorm:"column:supplier_id;type:uuid;not null"`
	Images            pq.StringArray         `gorm:"column:images;type:text[]"`
	IsActive          bool                   `gorm:"column:is_active;not null;default:true"`
	Specifications    map[string]string      `gorm:"column:specifications;type:jsonb;serializer:json"`
	BulkDiscounts     []MaterialBulkDiscount `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
	Supplier          *User                  `gorm:"foreignKey:SupplierID"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// MaterialBulkDiscount is a tiered discount entry. Ordering and uniqueness of
// tiers are the caller's responsibility.
type MaterialBulkDiscount struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MaterialID      uuid.UUID       `gorm:"column:material_id;type:uuid;not null"`
	MinQuantity     int64           `gorm:"column:min_quantity;not null"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
