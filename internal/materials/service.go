package materials

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bulkmandi/bulkmandi-backend/internal/authz"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	pkgerrors "github.com/bulkmandi/bulkmandi-backend/pkg/errors"
	"github.com/bulkmandi/bulkmandi-backend/pkg/pagination"
)

// Service exposes the material catalog operations used by the controllers.
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateMaterialRequest) (*MaterialDTO, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateMaterialRequest) (*MaterialDTO, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*MaterialDTO, error)
	List(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error)
	ListMine(ctx context.Context, actor authz.Actor) ([]MaterialDTO, error)
}

type repository interface {
	Create(ctx context.Context, material *models.Material) (*models.Material, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Material, error)
	Update(ctx context.Context, material *models.Material) (*models.Material, error)
	ReplaceBulkDiscounts(ctx context.Context, materialID uuid.UUID, tiers []models.MaterialBulkDiscount) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Material, int64, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Material, error)
}

type service struct {
	repo repository
}

// NewService constructs the catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("materials repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, actor authz.Actor, req CreateMaterialRequest) (*MaterialDTO, error) {
	if !authz.CanCreateMaterial(actor.Role) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only suppliers can create materials")
	}
	if !req.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if req.Unit != nil && !req.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
	}
	if req.PricePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricePerUnit must be positive")
	}
	if req.AvailableQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "availableQuantity cannot be negative")
	}
	if req.MinOrderQuantity != nil && *req.MinOrderQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minOrderQuantity must be positive")
	}

	material, err := s.repo.Create(ctx, req.toModel(actor.UserID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create material")
	}
	return FromModel(material), nil
}

func (s *service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateMaterialRequest) (*MaterialDTO, error) {
	material, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMaterial(actor.UserID, actor.Role, material) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "material belongs to another supplier")
	}

	if err := applyUpdate(material, req); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, material)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update material")
	}

	if req.BulkDiscounts != nil {
		tiers := make([]models.MaterialBulkDiscount, 0, len(req.BulkDiscounts))
		for _, tier := range req.BulkDiscounts {
			tiers = append(tiers, models.MaterialBulkDiscount{
				ID:              uuid.New(),
				MaterialID:      material.ID,
				MinQuantity:     tier.MinQuantity,
				DiscountPercent: tier.DiscountPercent,
			})
		}
		if err := s.repo.ReplaceBulkDiscounts(ctx, material.ID, tiers); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace bulk discounts")
		}
		updated.BulkDiscounts = tiers
	}

	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	material, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManageMaterial(actor.UserID, actor.Role, material) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "material belongs to another supplier")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete material")
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MaterialDTO, error) {
	material, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(material), nil
}

func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error) {
	if filters.Category != nil && !filters.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}

	rows, total, err := s.repo.List(ctx, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list materials")
	}

	dtos := make([]MaterialDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ListResult{
		Materials:  dtos,
		Pagination: pagination.BuildMeta(page, total),
	}, nil
}

func (s *service) ListMine(ctx context.Context, actor authz.Actor) ([]MaterialDTO, error) {
	if !authz.CanCreateMaterial(actor.Role) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only suppliers have listings")
	}
	rows, err := s.repo.ListBySupplier(ctx, actor.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list supplier materials")
	}
	dtos := make([]MaterialDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load material")
	}
	return material, nil
}

func applyUpdate(material *models.Material, req UpdateMaterialRequest) error {
	if req.Name != nil {
		material.Name = *req.Name
	}
	if req.Description != nil {
		material.Description = req.Description
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		material.Category = *req.Category
	}
	if req.PricePerUnit != nil {
		if req.PricePerUnit.LessThanOrEqual(decimal.Zero) {
			return pkgerrors.New(pkgerrors.CodeValidation, "pricePerUnit must be positive")
		}
		material.PricePerUnit = *req.PricePerUnit
	}
	if req.AvailableQuantity != nil {
		if *req.AvailableQuantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "availableQuantity cannot be negative")
		}
		material.AvailableQuantity = *req.AvailableQuantity
	}
	if req.MinOrderQuantity != nil {
		if *req.MinOrderQuantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "minOrderQuantity must be positive")
		}
		material.MinOrderQuantity = *req.MinOrderQuantity
	}
	if req.Unit != nil {
		if !req.Unit.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
		}
		material.Unit = *req.Unit
	}
	if req.DeliveryArea != nil {
		material.DeliveryArea = *req.DeliveryArea
	}
	if req.DeliveryRadiusKM != nil {
		material.DeliveryRadiusKM = *req.DeliveryRadiusKM
	}
	if req.Images != nil {
		material.Images = pq.StringArray(req.Images)
	}
	if req.Specifications != nil {
		material.Specifications = req.Specifications
	}
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}
	return nil
}
