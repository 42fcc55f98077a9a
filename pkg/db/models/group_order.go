package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
)

// GroupOrder pools multiple vendors' demand for one material toward a shared
// target quantity. PricePerUnit is snapshotted from the material at creation;
// TotalAmount is derived from CurrentQuantity at every lifecycle write and is
// never caller-settable. Version backs the optimistic compare-and-swap on
// aggregate mutations.
type GroupOrder struct {
	ID                uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MaterialID        uuid.UUID               `gorm:"column:material_id;type:uuid;not null"`
	OrganizerID       uuid.UUID               `gorm:"column:organizer_id;type:uuid;not null"`
	Title             string                  `gorm:"column:title;not null"`
	Description       *string                 `gorm:"column:description"`
	TargetQuantity    int64                   `gorm:"column:target_quantity;not null"`
	CurrentQuantity   int64                   `gorm:"column:current_quantity;not null;default:0"`
	PricePerUnit      decimal.Decimal         `gorm:"column:price_per_unit;type:numeric(12,2);not null"`
	Status            enums.GroupOrderStatus  `gorm:"column:status;type:text;not null;default:'open'"`
	DeadlineDate      time.Time               `gorm:"column:deadline_date;not null"`
	DeliveryDate      *time.Time              `gorm:"column:delivery_date"`
	DeliveryLocation  string                  `gorm:"column:delivery_location;not null"`
	PaymentTerms      enums.PaymentTerms      `gorm:"column:payment_terms;type:text;not null;default:'on_delivery'"`
	SupplierID        *uuid.UUID              `gorm:"column:supplier_id;type:uuid"`
	SupplierConfirmed bool                    `gorm:"column:supplier_confirmed;not null;default:false"`
	TotalAmount       decimal.Decimal         `gorm:"column:total_amount;type:numeric(14,2);not null;default:0"`
	Version           int64                   `gorm:"column:version;not null;default:1"`
	Participants      []GroupOrderParticipant `gorm:"foreignKey:GroupOrderID;constraint:OnDelete:CASCADE"`
	Material          *Material               `gorm:"foreignKey:MaterialID"`
	Organizer         *User                   `gorm:"foreignKey:OrganizerID"`
	Supplier          *User                   `gorm:"foreignKey:SupplierID"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// GroupOrderParticipant is one vendor's contribution record within an order.
// The (group_order_id, user_id) unique index enforces at most one entry per
// user even under concurrent joins.
type GroupOrderParticipant struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupOrderID uuid.UUID               `gorm:"column:group_order_id;type:uuid;not null;uniqueIndex:idx_participant_order_user"`
	UserID       uuid.UUID               `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_participant_order_user"`
	Quantity     int64                   `gorm:"column:quantity;not null"`
	Status       enums.ParticipantStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	JoinedAt     time.Time               `gorm:"column:joined_at;not null"`
	User         *User                   `gorm:"foreignKey:UserID"`
}
