package grouporders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bulkmandi/bulkmandi-backend/internal/authz"
	"github.com/bulkmandi/bulkmandi-backend/internal/materials"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	pkgerrors "github.com/bulkmandi/bulkmandi-backend/pkg/errors"
	"github.com/bulkmandi/bulkmandi-backend/pkg/pagination"
)

// Service exposes the group order lifecycle. Lifecycle fields are only
// reachable through these typed commands; the generic Update merges
// descriptive fields and nothing else.
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateGroupOrderRequest) (*GroupOrderDTO, error)
	Join(ctx context.Context, actor authz.Actor, orderID uuid.UUID, req JoinRequest) (*GroupOrderDTO, error)
	Confirm(ctx context.Context, actor authz.Actor, orderID uuid.UUID, req ConfirmRequest) (*GroupOrderDTO, error)
	Cancel(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*GroupOrderDTO, error)
	MarkFulfilled(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*GroupOrderDTO, error)
	Complete(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*GroupOrderDTO, error)
	Update(ctx context.Context, actor authz.Actor, orderID uuid.UUID, req UpdateGroupOrderRequest) (*GroupOrderDTO, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*GroupOrderDTO, error)
	List(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error)
	ListOrganized(ctx context.Context, actor authz.Actor) ([]GroupOrderDTO, error)
	ListJoined(ctx context.Context, actor authz.Actor) ([]GroupOrderDTO, error)
}

type service struct {
	db *db.Client
}

// NewService constructs the group order service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Create(ctx context.Context, actor authz.Actor, req CreateGroupOrderRequest) (*GroupOrderDTO, error) {
	if !authz.CanOrganizeGroupOrder(actor.Role) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can organize group orders")
	}
	if req.TargetQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "targetQuantity must be positive")
	}
	initial := int64(0)
	if req.InitialQuantity != nil {
		initial = *req.InitialQuantity
	}
	if initial < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initialQuantity cannot be negative")
	}
	terms := enums.PaymentTermsOnDelivery
	if req.PaymentTerms != nil {
		if !req.PaymentTerms.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid paymentTerms")
		}
		terms = *req.PaymentTerms
	}

	var created *models.GroupOrder
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		material, err := materials.NewRepository(tx).FindByID(ctx, req.MaterialID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load material")
		}
		if !material.IsActive {
			return pkgerrors.New(pkgerrors.CodeValidation, "material is not active")
		}

		now := time.Now().UTC()
		order := &models.GroupOrder{
			ID:               uuid.New(),
			MaterialID:       material.ID,
			OrganizerID:      actor.UserID,
			Title:            req.Title,
			Description:      req.Description,
			TargetQuantity:   req.TargetQuantity,
			CurrentQuantity:  initial,
			PricePerUnit:     material.PricePerUnit,
			Status:           enums.GroupOrderStatusOpen,
			DeadlineDate:     req.DeadlineDate.Time,
			DeliveryLocation: req.DeliveryLocation,
			PaymentTerms:     terms,
			TotalAmount:      computeTotal(initial, material.PricePerUnit),
			Version:          1,
			Participants: []models.GroupOrderParticipant{{
				ID:       uuid.New(),
				UserID:   actor.UserID,
				Quantity: initial,
				Status:   enums.ParticipantStatusConfirmed,
				JoinedAt: now,
			}},
		}

		if _, err := NewRepository(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create group order")
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, created.ID)
}

func (s *service) Join(ctx context.Context, actor authz.Actor, orderID uuid.UUID, req JoinRequest) (*GroupOrderDTO, error) {
	if !authz.CanJoinGroupOrder(actor.Role) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can join group orders")
	}
	if req.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		order, err := s.loadForWrite(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status != enums.GroupOrderStatusOpen {
			return pkgerrors.New(pkgerrors.CodeValidation, "group order is not open")
		}

		joined, err := repo.HasParticipant(ctx, order.ID, actor.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check participant")
		}
		if joined {
			return pkgerrors.New(pkgerrors.CodeValidation, "already joined this group order")
		}

		participant := &models.GroupOrderParticipant{
			ID:           uuid.New(),
			GroupOrderID: order.ID,
			UserID:       actor.UserID,
			Quantity:     req.Quantity,
			Status:       enums.ParticipantStatusPending,
			JoinedAt:     time.Now().UTC(),
		}
		if err := repo.AddParticipant(ctx, participant); err != nil {
			if db.IsUniqueViolation(err, "idx_participant_order_user") {
				return pkgerrors.New(pkgerrors.CodeValidation, "already joined this group order")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add participant")
		}

		expected := order.Version
		order.CurrentQuantity += req.Quantity
		order.TotalAmount = computeTotal(order.CurrentQuantity, order.PricePerUnit)
		return s.writeVersioned(ctx, repo, order, expected)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) Confirm(ctx context.Context, actor authz.Actor, orderID uuid.UUID, req ConfirmRequest) (*GroupOrderDTO, error) {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		order, err := s.loadForWrite(ctx, repo, orderID)
		if err != nil {
			return err
		}

		material, err := materials.NewRepository(tx).FindByID(ctx, order.MaterialID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load material")
		}
		if !authz.CanConfirmGroupOrder(actor.UserID, actor.Role, material) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the material's supplier can confirm")
		}
		if order.SupplierConfirmed {
			return pkgerrors.New(pkgerrors.CodeValidation, "already confirmed")
		}
		if order.Status != enums.GroupOrderStatusOpen {
			return pkgerrors.New(pkgerrors.CodeValidation, "group order is not open")
		}

		expected := order.Version
		supplierID := actor.UserID
		order.SupplierID = &supplierID
		order.SupplierConfirmed = true
		order.Status = enums.GroupOrderStatusClosed
		order.DeliveryDate = req.DeliveryDate.TimeOrNil()
		order.TotalAmount = computeTotal(order.CurrentQuantity, order.PricePerUnit)
		if err := s.writeVersioned(ctx, repo, order, expected); err != nil {
			return err
		}
		if err := repo.ConfirmPendingParticipants(ctx, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirm participants")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) Cancel(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*GroupOrderDTO, error) {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		order, err := s.loadForWrite(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if !authz.CanCancelGroupOrder(actor.UserID, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the organizer can cancel")
		}
		if order.Status != enums.GroupOrderStatusOpen {
			return pkgerrors.New(pkgerrors.CodeValidation, "only open group orders can be cancelled")
		}

		expected := order.Version
		order.Status = enums.GroupOrderStatusCancelled
		order.TotalAmount = computeTotal(order.CurrentQuantity, order.PricePerUnit)
		if err := s.writeVersioned(ctx, repo, order, expected); err != nil {
			return err
		}
		if err := repo.CancelParticipants(ctx, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel participants")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) MarkFulfilled(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*GroupOrderDTO, error) {
	return s.transition(ctx, orderID, func(order *models.GroupOrder) error {
		if !authz.CanAdvanceFulfillment(actor.UserID, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the confirming supplier can fulfill")
		}
		if order.Status != enums.GroupOrderStatusClosed {
			return pkgerrors.New(pkgerrors.CodeValidation, "only closed group orders can be fulfilled")
		}
		order.Status = enums.GroupOrderStatusFulfilled
		return nil
	})
}

func (s *service) Complete(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*GroupOrderDTO, error) {
	return s.transition(ctx, orderID, func(order *models.GroupOrder) error {
		if !authz.CanCompleteGroupOrder(actor.UserID, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the organizer can complete")
		}
		if order.Status != enums.GroupOrderStatusFulfilled {
			return pkgerrors.New(pkgerrors.CodeValidation, "only fulfilled group orders can be completed")
		}
		order.Status = enums.GroupOrderStatusCompleted
		return nil
	})
}

func (s *service) Update(ctx context.Context, actor authz.Actor, orderID uuid.UUID, req UpdateGroupOrderRequest) (*GroupOrderDTO, error) {
	return s.transition(ctx, orderID, func(order *models.GroupOrder) error {
		if !authz.CanUpdateGroupOrder(actor.UserID, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the organizer can update")
		}
		if req.Title != nil {
			order.Title = *req.Title
		}
		if req.Description != nil {
			order.Description = req.Description
		}
		if req.DeadlineDate != nil && !req.DeadlineDate.IsZero() {
			order.DeadlineDate = req.DeadlineDate.Time
		}
		if req.DeliveryLocation != nil {
			order.DeliveryLocation = *req.DeliveryLocation
		}
		if req.PaymentTerms != nil {
			if !req.PaymentTerms.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid paymentTerms")
			}
			order.PaymentTerms = *req.PaymentTerms
		}
		return nil
	})
}

func (s *service) GetByID(ctx context.Context, orderID uuid.UUID) (*GroupOrderDTO, error) {
	order, err := NewRepository(s.db.DB()).FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load group order")
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	rows, total, err := NewRepository(s.db.DB()).List(ctx, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list group orders")
	}

	dtos := make([]GroupOrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ListResult{
		GroupOrders: dtos,
		Pagination:  pagination.BuildMeta(page, total),
	}, nil
}

func (s *service) ListOrganized(ctx context.Context, actor authz.Actor) ([]GroupOrderDTO, error) {
	rows, err := NewRepository(s.db.DB()).ListByOrganizer(ctx, actor.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list organized orders")
	}
	return toDTOs(rows), nil
}

func (s *service) ListJoined(ctx context.Context, actor authz.Actor) ([]GroupOrderDTO, error) {
	rows, err := NewRepository(s.db.DB()).ListByParticipant(ctx, actor.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list joined orders")
	}
	return toDTOs(rows), nil
}

// transition runs a guarded mutation under the version compare-and-swap.
func (s *service) transition(ctx context.Context, orderID uuid.UUID, mutate func(order *models.GroupOrder) error) (*GroupOrderDTO, error) {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		order, err := s.loadForWrite(ctx, repo, orderID)
		if err != nil {
			return err
		}
		expected := order.Version
		if err := mutate(order); err != nil {
			return err
		}
		order.TotalAmount = computeTotal(order.CurrentQuantity, order.PricePerUnit)
		return s.writeVersioned(ctx, repo, order, expected)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) loadForWrite(ctx context.Context, repo *Repository, orderID uuid.UUID) (*models.GroupOrder, error) {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load group order")
	}
	return order, nil
}

func (s *service) writeVersioned(ctx context.Context, repo *Repository, order *models.GroupOrder, expectedVersion int64) error {
	if err := repo.UpdateVersioned(ctx, order, expectedVersion); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return pkgerrors.New(pkgerrors.CodeConflict, "group order was modified concurrently, retry")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write group order")
	}
	return nil
}

func toDTOs(rows []models.GroupOrder) []GroupOrderDTO {
	dtos := make([]GroupOrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}

// computeTotal derives the order value from the accumulated quantity and the
// snapshotted unit price, rounded to two decimal places.
func computeTotal(quantity int64, pricePerUnit decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(pricePerUnit).Round(2)
}
