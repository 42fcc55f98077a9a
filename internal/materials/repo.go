package materials

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/pagination"
)

// Repository wires together material persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a listing together with its discount tiers.
func (r *Repository) Create(ctx context.Context, material *models.Material) (*models.Material, error) {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

// FindByID loads a listing with its discount tiers and supplier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).
		Preload("BulkDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		}).
		Preload("Supplier").
		First(&material, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// Update persists the mutated listing row.
func (r *Repository) Update(ctx context.Context, material *models.Material) (*models.Material, error) {
	if err := r.db.WithContext(ctx).Save(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

// ReplaceBulkDiscounts swaps all discount tiers for the listing.
func (r *Repository) ReplaceBulkDiscounts(ctx context.Context, materialID uuid.UUID, tiers []models.MaterialBulkDiscount) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("material_id = ?", materialID).Delete(&models.MaterialBulkDiscount{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	return tx.Create(&tiers).Error
}

// Delete removes a listing and its tiers.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("material_id = ?", id).Delete(&models.MaterialBulkDiscount{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Material{}).Error
}

// List returns the active catalog page matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Material, int64, error) {
	page = pagination.Normalize(page)

	qb := r.db.WithContext(ctx).
		Model(&models.Material{}).
		Where("is_active = ?", true)

	if filters.Category != nil {
		qb = qb.Where("category = ?", *filters.Category)
	}
	if location := strings.TrimSpace(filters.Location); location != "" {
		pattern := "%" + strings.ToLower(location) + "%"
		qb = qb.Where("LOWER(delivery_area) LIKE ?", pattern)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Material
	err := qb.
		Preload("BulkDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		}).
		Preload("Supplier").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).
		Error
	return rows, total, err
}

// ListBySupplier returns all listings owned by a supplier, newest first.
func (r *Repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Material, error) {
	var rows []models.Material
	err := r.db.WithContext(ctx).
		Preload("BulkDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		}).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}
