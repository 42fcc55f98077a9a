// Package authz centralizes the capability checks that gate marketplace
// actions. Controllers decide the HTTP shape; these predicates decide who
// may do what.
package authz

import (
	"github.com/google/uuid"

	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
)

// Actor identifies the authenticated caller inside service-layer checks.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// CanCreateMaterial allows suppliers to publish listings.
func CanCreateMaterial(role enums.UserRole) bool {
	return role == enums.UserRoleBuyer
}

// CanManageMaterial allows the owning supplier to update or delete a listing.
func CanManageMaterial(userID uuid.UUID, role enums.UserRole, material *models.Material) bool {
	if material == nil {
		return false
	}
	return role == enums.UserRoleBuyer && material.SupplierID == userID
}

// CanOrganizeGroupOrder allows vendors to open new group orders.
func CanOrganizeGroupOrder(role enums.UserRole) bool {
	return role == enums.UserRoleVendor
}

// CanJoinGroupOrder allows vendors to contribute quantity to an order.
func CanJoinGroupOrder(role enums.UserRole) bool {
	return role == enums.UserRoleVendor
}

// CanUpdateGroupOrder allows the organizer to edit descriptive fields.
func CanUpdateGroupOrder(userID uuid.UUID, order *models.GroupOrder) bool {
	if order == nil {
		return false
	}
	return order.OrganizerID == userID
}

// CanCancelGroupOrder allows the organizer to cancel an open order.
func CanCancelGroupOrder(userID uuid.UUID, order *models.GroupOrder) bool {
	if order == nil {
		return false
	}
	return order.OrganizerID == userID
}

// CanConfirmGroupOrder allows only the supplier that owns the underlying
// material to confirm the pooled order.
func CanConfirmGroupOrder(userID uuid.UUID, role enums.UserRole, material *models.Material) bool {
	if material == nil {
		return false
	}
	return role == enums.UserRoleBuyer && material.SupplierID == userID
}

// CanAdvanceFulfillment allows the confirming supplier to mark a closed
// order as fulfilled.
func CanAdvanceFulfillment(userID uuid.UUID, order *models.GroupOrder) bool {
	if order == nil || order.SupplierID == nil {
		return false
	}
	return *order.SupplierID == userID
}

// CanCompleteGroupOrder allows the organizer to close out a fulfilled order.
func CanCompleteGroupOrder(userID uuid.UUID, order *models.GroupOrder) bool {
	if order == nil {
		return false
	}
	return order.OrganizerID == userID
}
