package grouporders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	"github.com/bulkmandi/bulkmandi-backend/pkg/pagination"
)

// ErrVersionConflict reports a failed compare-and-swap on the aggregate:
// another writer advanced the version between read and write.
var ErrVersionConflict = errors.New("group order version conflict")

// Repository wires together group order persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order together with the organizer's participant entry.
func (r *Repository) Create(ctx context.Context, order *models.GroupOrder) (*models.GroupOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads an order with participants, material, and organizer.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	var order models.GroupOrder
	err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Participants.User").
		Preload("Material").
		Preload("Organizer").
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns an order page matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.GroupOrder, int64, error) {
	page = pagination.Normalize(page)

	qb := r.db.WithContext(ctx).Model(&models.GroupOrder{})
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}
	if filters.MaterialID != nil {
		qb = qb.Where("material_id = ?", *filters.MaterialID)
	}
	if location := strings.TrimSpace(filters.Location); location != "" {
		pattern := "%" + strings.ToLower(location) + "%"
		qb = qb.Where("LOWER(delivery_location) LIKE ?", pattern)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.GroupOrder
	err := qb.
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Material").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).
		Error
	return rows, total, err
}

// ListByOrganizer returns all orders opened by the user, newest first.
func (r *Repository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.GroupOrder, error) {
	var rows []models.GroupOrder
	err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Material").
		Where("organizer_id = ?", organizerID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListByParticipant returns all orders the user has joined, newest first.
func (r *Repository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]models.GroupOrder, error) {
	var rows []models.GroupOrder
	err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Material").
		Joins("JOIN group_order_participants p ON p.group_order_id = group_orders.id").
		Where("p.user_id = ?", userID).
		Order("group_orders.created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// HasParticipant reports whether the user already holds an entry on the order.
func (r *Repository) HasParticipant(ctx context.Context, orderID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GroupOrderParticipant{}).
		Where("group_order_id = ? AND user_id = ?", orderID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddParticipant inserts a contribution entry. The unique index on
// (group_order_id, user_id) rejects duplicate joins that race past
// HasParticipant.
func (r *Repository) AddParticipant(ctx context.Context, participant *models.GroupOrderParticipant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// CancelParticipants bulk-moves every entry on the order to cancelled.
func (r *Repository) CancelParticipants(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.GroupOrderParticipant{}).
		Where("group_order_id = ? AND status <> ?", orderID, enums.ParticipantStatusCancelled).
		Update("status", enums.ParticipantStatusCancelled).
		Error
}

// ConfirmPendingParticipants bulk-moves the order's pending entries to confirmed.
func (r *Repository) ConfirmPendingParticipants(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.GroupOrderParticipant{}).
		Where("group_order_id = ? AND status = ?", orderID, enums.ParticipantStatusPending).
		Update("status", enums.ParticipantStatusConfirmed).
		Error
}

// UpdateVersioned writes the order's mutable fields guarded by a version
// compare-and-swap. Returns ErrVersionConflict when another writer got there
// first; the caller decides whether to retry or surface a conflict.
func (r *Repository) UpdateVersioned(ctx context.Context, order *models.GroupOrder, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.GroupOrder{}).
		Where("id = ? AND version = ?", order.ID, expectedVersion).
		Updates(map[string]any{
			"title":              order.Title,
			"description":        order.Description,
			"current_quantity":   order.CurrentQuantity,
			"status":             order.Status,
			"deadline_date":      order.DeadlineDate,
			"delivery_date":      order.DeliveryDate,
			"delivery_location":  order.DeliveryLocation,
			"payment_terms":      order.PaymentTerms,
			"supplier_id":        order.SupplierID,
			"supplier_confirmed": order.SupplierConfirmed,
			"total_amount":       order.TotalAmount,
			"version":            expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	order.Version = expectedVersion + 1
	return nil
}
