package materials

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bulkmandi/bulkmandi-backend/internal/authz"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db/models"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	pkgerrors "github.com/bulkmandi/bulkmandi-backend/pkg/errors"
	"github.com/bulkmandi/bulkmandi-backend/pkg/pagination"
)

func setupMaterialsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL,
  business_name TEXT NOT NULL,
  business_type TEXT NOT NULL,
  location TEXT NOT NULL,
  image TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	materialsTable := `
CREATE TABLE IF NOT EXISTS materials (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  price_per_unit TEXT NOT NULL,
  available_quantity INTEGER NOT NULL,
  min_order_quantity INTEGER NOT NULL DEFAULT 1,
  unit TEXT NOT NULL DEFAULT 'kg',
  delivery_area TEXT NOT NULL,
  delivery_radius_km INTEGER NOT NULL DEFAULT 50,
  supplier_id TEXT NOT NULL,
  images TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  specifications TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	discountsTable := `
CREATE TABLE IF NOT EXISTS material_bulk_discounts (
  id TEXT PRIMARY KEY,
  material_id TEXT NOT NULL,
  min_quantity INTEGER NOT NULL,
  discount_percent TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(usersTable).Error)
	require.NoError(t, conn.Exec(materialsTable).Error)
	require.NoError(t, conn.Exec(discountsTable).Error)
	t.Cleanup(func() {
		conn.Exec("DELETE FROM material_bulk_discounts")
		conn.Exec("DELETE FROM materials")
		conn.Exec("DELETE FROM users")
	})

	return conn
}

func seedSupplier(t *testing.T, conn *gorm.DB, location string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Mandi Traders",
		Email:        uuid.NewString() + "@example.com",
		Role:         enums.UserRoleBuyer,
		BusinessName: "Mandi Traders Pvt Ltd",
		BusinessType: "wholesale",
		Location:     location,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func newMaterialsService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func supplierActor(user *models.User) authz.Actor {
	return authz.Actor{UserID: user.ID, Role: enums.UserRoleBuyer}
}

func sampleCreateRequest() CreateMaterialRequest {
	return CreateMaterialRequest{
		Name:              "Basmati Rice",
		Category:          enums.MaterialCategoryFood,
		PricePerUnit:      decimal.NewFromInt(95),
		AvailableQuantity: 2000,
		DeliveryArea:      "Pune",
	}
}

func TestCreateMaterialDefaults(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	supplier := seedSupplier(t, conn, "Pune")
	svc := newMaterialsService(t, conn)

	dto, err := svc.Create(context.Background(), supplierActor(supplier), sampleCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), dto.MinOrderQuantity)
	assert.Equal(t, enums.MaterialUnitKg, dto.Unit)
	assert.Equal(t, 50, dto.DeliveryRadiusKM)
	assert.True(t, dto.IsActive)
	assert.Equal(t, supplier.ID, dto.SupplierID)
}

func TestCreateMaterialRequiresSupplierRole(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	svc := newMaterialsService(t, conn)

	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleVendor}
	_, err := svc.Create(context.Background(), actor, sampleCreateRequest())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestCreateMaterialRejectsNonPositivePrice(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	supplier := seedSupplier(t, conn, "Pune")
	svc := newMaterialsService(t, conn)

	req := sampleCreateRequest()
	req.PricePerUnit = decimal.Zero
	_, err := svc.Create(context.Background(), supplierActor(supplier), req)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateMaterialPartialMerge(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	supplier := seedSupplier(t, conn, "Pune")
	svc := newMaterialsService(t, conn)

	created, err := svc.Create(context.Background(), supplierActor(supplier), sampleCreateRequest())
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(99)
	updated, err := svc.Update(context.Background(), supplierActor(supplier), created.ID, UpdateMaterialRequest{
		PricePerUnit: &newPrice,
	})
	require.NoError(t, err)

	assert.True(t, updated.PricePerUnit.Equal(newPrice))
	// untouched fields survive
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.AvailableQuantity, updated.AvailableQuantity)
	assert.Equal(t, created.DeliveryArea, updated.DeliveryArea)
}

func TestUpdateMaterialOwnershipEnforced(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	owner := seedSupplier(t, conn, "Pune")
	other := seedSupplier(t, conn, "Nashik")
	svc := newMaterialsService(t, conn)

	created, err := svc.Create(context.Background(), supplierActor(owner), sampleCreateRequest())
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(context.Background(), supplierActor(other), created.ID, UpdateMaterialRequest{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestUpdateMaterialNotFound(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	supplier := seedSupplier(t, conn, "Pune")
	svc := newMaterialsService(t, conn)

	name := "Missing"
	_, err := svc.Update(context.Background(), supplierActor(supplier), uuid.New(), UpdateMaterialRequest{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteMaterial(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	supplier := seedSupplier(t, conn, "Pune")
	svc := newMaterialsService(t, conn)

	created, err := svc.Create(context.Background(), supplierActor(supplier), sampleCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), supplierActor(supplier), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteMaterialForbiddenForStranger(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	owner := seedSupplier(t, conn, "Pune")
	other := seedSupplier(t, conn, "Nashik")
	svc := newMaterialsService(t, conn)

	created, err := svc.Create(context.Background(), supplierActor(owner), sampleCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), supplierActor(other), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestListFiltersAndPagination(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	pune := seedSupplier(t, conn, "Pune")
	svc := newMaterialsService(t, conn)

	reqs := []CreateMaterialRequest{
		{Name: "Rice", Category: enums.MaterialCategoryFood, PricePerUnit: decimal.NewFromInt(95), AvailableQuantity: 100, DeliveryArea: "Pune West"},
		{Name: "Wheat", Category: enums.MaterialCategoryFood, PricePerUnit: decimal.NewFromInt(40), AvailableQuantity: 100, DeliveryArea: "Nashik"},
		{Name: "Cement", Category: enums.MaterialCategoryConstruction, PricePerUnit: decimal.NewFromInt(350), AvailableQuantity: 100, DeliveryArea: "Pune East"},
	}
	for _, req := range reqs {
		_, err := svc.Create(context.Background(), supplierActor(pune), req)
		require.NoError(t, err)
	}

	// inactive listings never surface
	inactive, err := svc.Create(context.Background(), supplierActor(pune), CreateMaterialRequest{
		Name: "Hidden", Category: enums.MaterialCategoryFood, PricePerUnit: decimal.NewFromInt(10), AvailableQuantity: 5, DeliveryArea: "Pune",
	})
	require.NoError(t, err)
	off := false
	_, err = svc.Update(context.Background(), supplierActor(pune), inactive.ID, UpdateMaterialRequest{IsActive: &off})
	require.NoError(t, err)

	food := enums.MaterialCategoryFood
	result, err := svc.List(context.Background(), ListFilters{Category: &food}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result.Materials, 2)
	assert.Equal(t, int64(2), result.Pagination.TotalItems)

	// location matches a case-insensitive substring of delivery area
	result, err = svc.List(context.Background(), ListFilters{Location: "pune"}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result.Materials, 2)

	// page window math
	result, err = svc.List(context.Background(), ListFilters{}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Materials, 2)
	assert.Equal(t, int64(3), result.Pagination.TotalItems)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
}

func TestListMine(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	owner := seedSupplier(t, conn, "Pune")
	other := seedSupplier(t, conn, "Nashik")
	svc := newMaterialsService(t, conn)

	_, err := svc.Create(context.Background(), supplierActor(owner), sampleCreateRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), supplierActor(other), sampleCreateRequest())
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), supplierActor(owner))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, owner.ID, mine[0].SupplierID)
}

func TestCreateMaterialWithBulkDiscounts(t *testing.T) {
	conn := setupMaterialsTestDB(t)
	supplier := seedSupplier(t, conn, "Pune")
	svc := newMaterialsService(t, conn)

	req := sampleCreateRequest()
	req.BulkDiscounts = []BulkDiscountInput{
		{MinQuantity: 500, DiscountPercent: decimal.NewFromInt(5)},
		{MinQuantity: 1000, DiscountPercent: decimal.NewFromInt(10)},
	}

	created, err := svc.Create(context.Background(), supplierActor(supplier), req)
	require.NoError(t, err)
	require.Len(t, created.BulkDiscounts, 2)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.BulkDiscounts, 2)
	assert.Equal(t, int64(500), fetched.BulkDiscounts[0].MinQuantity)
}
