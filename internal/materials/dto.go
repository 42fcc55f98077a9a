package materials

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	"github.com/bulkmandi/bulkmandi-backend/pkg/pagination"
)

// BulkDiscountInput describes one tiered discount entry on a listing.
type BulkDiscountInput struct {
	MinQuantity     int64           `json:"minQuantity" validate:"required,gt=0"`
	DiscountPercent decimal.Decimal `json:"discountPercent" validate:"required"`
}

// CreateMaterialRequest carries the supplier's new listing payload.
type CreateMaterialRequest struct {
	Name              string                 `json:"name" validate:"required"`
	Description       *string                `json:"description,omitempty"`
	Category          enums.MaterialCategory `json:"category" validate:"required"`
	PricePerUnit      decimal.Decimal        `json:"pricePerUnit" validate:"required"`
	AvailableQuantity int64                  `json:"availableQuantity" validate:"gte=0"`
	MinOrderQuantity  *int64                 `json:"minOrderQuantity,omitempty"`
	Unit              *enums.MaterialUnit    `json:"unit,omitempty"`
	DeliveryArea      string                 `json:"deliveryArea" validate:"required"`
	DeliveryRadiusKM  *int                   `json:"deliveryRadius,omitempty"`
	Images            []string               `json:"images,omitempty"`
	Specifications    map[string]string      `json:"specifications,omitempty"`
	BulkDiscounts     []BulkDiscountInput    `json:"bulkDiscounts,omitempty"`
}

// UpdateMaterialRequest carries a partial update; nil fields are left untouched.
type UpdateMaterialRequest struct {
	Name              *string                 `json:"name,omitempty"`
	Description       *string                 `json:"description,omitempty"`
	Category          *enums.MaterialCategory `json:"category,omitempty"`
	PricePerUnit      *decimal.Decimal        `json:"pricePerUnit,omitempty"`
	AvailableQuantity *int64                  `json:"availableQuantity,omitempty"`
	MinOrderQuantity  *int64                  `json:"minOrderQuantity,omitempty"`
	Unit              *enums.MaterialUnit     `json:"unit,omitempty"`
	DeliveryArea      *string                 `json:"deliveryArea,omitempty"`
	DeliveryRadiusKM  *int                    `json:"deliveryRadius,omitempty"`
	Images            []string                `json:"images,omitempty"`
	Specifications    map[string]string       `json:"specifications,omitempty"`
	IsActive          *bool                   `json:"isActive,omitempty"`
	BulkDiscounts     []BulkDiscountInput     `json:"bulkDiscounts,omitempty"`
}

// ListFilters narrows the public catalog listing.
type ListFilters struct {
	Category *enums.MaterialCategory
	Location string
}

// BulkDiscountDTO is the transport shape for a discount tier.
type BulkDiscountDTO struct {
	MinQuantity     int64           `json:"minQuantity"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// SupplierSummary exposes the minimal supplier data on material reads.
type SupplierSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	BusinessName string    `json:"businessName"`
	Location     string    `json:"location"`
}

// MaterialDTO is the transport shape of a listing.
type MaterialDTO struct {
	ID                uuid.UUID              `json:"id"`
	Name              string                 `json:"name"`
	Description       *string                `json:"description,omitempty"`
	Category          enums.MaterialCategory `json:"category"`
	PricePerUnit      decimal.Decimal        `json:"pricePerUnit"`
	AvailableQuantity int64                  `json:"availableQuantity"`
	MinOrderQuantity  int64                  `json:"minOrderQuantity"`
	Unit              enums.MaterialUnit     `json:"unit"`
	DeliveryArea      string                 `json:"deliveryArea"`
	DeliveryRadiusKM  int                    `json:"deliveryRadius"`
	SupplierID        uuid.UUID              `json:"supplierId"`
	Supplier          *SupplierSummary       `json:"supplier,omitempty"`
	Images            []string               `json:"images"`
	IsActive          bool                   `json:"isActive"`
	Specifications    map[string]string      `json:"specifications,omitempty"`
	BulkDiscounts     []BulkDiscountDTO      `json:"bulkDiscounts,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// ListResult pairs a page of listings with its pagination meta.
type ListResult struct {
	Materials  []MaterialDTO   `json:"materials"`
	Pagination pagination.Meta `json:"pagination"`
}

func FromModel(m *models.Material) *MaterialDTO {
	if m == nil {
		return nil
	}

	dto := &MaterialDTO{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Category:          m.Category,
		PricePerUnit:      m.PricePerUnit,
		AvailableQuantity: m.AvailableQuantity,
		MinOrderQuantity:  m.MinOrderQuantity,
		Unit:              m.Unit,
		DeliveryArea:      m.DeliveryArea,
		DeliveryRadiusKM:  m.DeliveryRadiusKM,
		SupplierID:        m.SupplierID,
		Images:            append([]string(nil), []string(m.Images)...),
		IsActive:          m.IsActive,
		Specifications:    m.Specifications,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	for _, tier := range m.BulkDiscounts {
		dto.BulkDiscounts = append(dto.BulkDiscounts, BulkDiscountDTO{
			MinQuantity:     tier.MinQuantity,
			DiscountPercent: tier.DiscountPercent,
		})
	}
	if m.Supplier != nil {
		dto.Supplier = &SupplierSummary{
			ID:           m.Supplier.ID,
			Name:         m.Supplier.Name,
			BusinessName: m.Supplier.BusinessName,
			Location:     m.Supplier.Location,
		}
	}
	return dto
}

func (r CreateMaterialRequest) toModel(supplierID uuid.UUID) *models.Material {
	minOrder := int64(1)
	if r.MinOrderQuantity != nil {
		minOrder = *r.MinOrderQuantity
	}
	unit := enums.MaterialUnitKg
	if r.Unit != nil {
		unit = *r.Unit
	}
	radius := 50
	if r.DeliveryRadiusKM != nil {
		radius = *r.DeliveryRadiusKM
	}

	material := &models.Material{
		ID:                uuid.New(),
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		PricePerUnit:      r.PricePerUnit,
		AvailableQuantity: r.AvailableQuantity,
		MinOrderQuantity:  minOrder,
		Unit:              unit,
		DeliveryArea:      r.DeliveryArea,
		DeliveryRadiusKM:  radius,
		SupplierID:        supplierID,
		Images:            pq.StringArray(r.Images),
		IsActive:          true,
		Specifications:    r.Specifications,
	}
	for _, tier := range r.BulkDiscounts {
		material.BulkDiscounts = append(material.BulkDiscounts, models.MaterialBulkDiscount{
			ID:              uuid.New(),
			MaterialID:      material.ID,
			MinQuantity:     tier.MinQuantity,
			DiscountPercent: tier.DiscountPercent,
		})
	}
	return material
}
