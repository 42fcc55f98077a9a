package grouporders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	"github.com/bulkmandi/bulkmandi-backend/pkg/pagination"
	"github.com/bulkmandi/bulkmandi-backend/pkg/types"
)

// CreateGroupOrderRequest opens a new pooled order against one material.
// The organizer is registered as the first participant with the initial
// quantity (default zero) and status confirmed.
type CreateGroupOrderRequest struct {
	MaterialID       uuid.UUID           `json:"materialId" validate:"required"`
	Title            string              `json:"title" validate:"required"`
	Description      *string             `json:"description,omitempty"`
	TargetQuantity   int64               `json:"targetQuantity" validate:"required,gt=0"`
	InitialQuantity  *int64              `json:"initialQuantity,omitempty"`
	DeadlineDate     types.Date          `json:"deadlineDate" validate:"required"`
	DeliveryLocation string              `json:"deliveryLocation" validate:"required"`
	PaymentTerms     *enums.PaymentTerms `json:"paymentTerms,omitempty"`
}

// JoinRequest adds the caller's quantity to an open order.
type JoinRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// ConfirmRequest carries the supplier's optional delivery date, either a
// plain YYYY-MM-DD value or RFC3339.
type ConfirmRequest struct {
	DeliveryDate *types.Date `json:"deliveryDate,omitempty"`
}

// UpdateGroupOrderRequest merges descriptive fields only. Lifecycle fields
// (status, quantities, supplier, totals) are reachable solely through the
// typed commands.
type UpdateGroupOrderRequest struct {
	Title            *string             `json:"title,omitempty"`
	Description      *string             `json:"description,omitempty"`
	DeadlineDate     *types.Date         `json:"deadlineDate,omitempty"`
	DeliveryLocation *string             `json:"deliveryLocation,omitempty"`
	PaymentTerms     *enums.PaymentTerms `json:"paymentTerms,omitempty"`
}

// ListFilters narrows the group order listing. Location matches a
// case-insensitive substring of the delivery location.
type ListFilters struct {
	Status     *enums.GroupOrderStatus
	MaterialID *uuid.UUID
	Location   string
}

// ParticipantDTO is the transport shape of one contribution entry.
type ParticipantDTO struct {
	UserID   uuid.UUID               `json:"userId"`
	Name     string                  `json:"name,omitempty"`
	Quantity int64                   `json:"quantity"`
	Status   enums.ParticipantStatus `json:"status"`
	JoinedAt time.Time               `json:"joinedAt"`
}

// MaterialSummary exposes the snapshot data shown on order reads.
type MaterialSummary struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Category     enums.MaterialCategory `json:"category"`
	Unit         enums.MaterialUnit     `json:"unit"`
	SupplierID   uuid.UUID              `json:"supplierId"`
	DeliveryArea string                 `json:"deliveryArea"`
}

// GroupOrderDTO is the transport shape of a pooled order.
type GroupOrderDTO struct {
	ID                uuid.UUID              `json:"id"`
	MaterialID        uuid.UUID              `json:"materialId"`
	Material          *MaterialSummary       `json:"material,omitempty"`
	OrganizerID       uuid.UUID              `json:"organizerId"`
	Title             string                 `json:"title"`
	Description       *string                `json:"description,omitempty"`
	TargetQuantity    int64                  `json:"targetQuantity"`
	CurrentQuantity   int64                  `json:"currentQuantity"`
	PricePerUnit      decimal.Decimal        `json:"pricePerUnit"`
	Status            enums.GroupOrderStatus `json:"status"`
	DeadlineDate      time.Time              `json:"deadlineDate"`
	DeliveryDate      *time.Time             `json:"deliveryDate,omitempty"`
	DeliveryLocation  string                 `json:"deliveryLocation"`
	PaymentTerms      enums.PaymentTerms     `json:"paymentTerms"`
	SupplierID        *uuid.UUID             `json:"supplierId,omitempty"`
	SupplierConfirmed bool                   `json:"supplierConfirmed"`
	TotalAmount       decimal.Decimal        `json:"totalAmount"`
	Participants      []ParticipantDTO       `json:"participants"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// ListResult pairs a page of orders with its pagination meta.
type ListResult struct {
	GroupOrders []GroupOrderDTO `json:"groupOrders"`
	Pagination  pagination.Meta `json:"pagination"`
}

func FromModel(o *models.GroupOrder) *GroupOrderDTO {
	if o == nil {
		return nil
	}

	dto := &GroupOrderDTO{
		ID:                o.ID,
		MaterialID:        o.MaterialID,
		OrganizerID:       o.OrganizerID,
		Title:             o.Title,
		Description:       o.Description,
		TargetQuantity:    o.TargetQuantity,
		CurrentQuantity:   o.CurrentQuantity,
		PricePerUnit:      o.PricePerUnit,
		Status:            o.Status,
		DeadlineDate:      o.DeadlineDate,
		DeliveryDate:      o.DeliveryDate,
		DeliveryLocation:  o.DeliveryLocation,
		PaymentTerms:      o.PaymentTerms,
		SupplierID:        o.SupplierID,
		SupplierConfirmed: o.SupplierConfirmed,
		TotalAmount:       o.TotalAmount,
		Participants:      []ParticipantDTO{},
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	for _, p := range o.Participants {
		entry := ParticipantDTO{
			UserID:   p.UserID,
			Quantity: p.Quantity,
			Status:   p.Status,
			JoinedAt: p.JoinedAt,
		}
		if p.User != nil {
			entry.Name = p.User.Name
		}
		dto.Participants = append(dto.Participants, entry)
	}
	if o.Material != nil {
		dto.Material = &MaterialSummary{
			ID:           o.Material.ID,
			Name:         o.Material.Name,
			Category:     o.Material.Category,
			Unit:         o.Material.Unit,
			SupplierID:   o.Material.SupplierID,
			DeliveryArea: o.Material.DeliveryArea,
		}
	}
	return dto
}
