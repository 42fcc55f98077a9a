package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bulkmandi/bulkmandi-backend/internal/users"
	"github.com/bulkmandi/bulkmandi-backend/pkg/config"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	pkgerrors "github.com/bulkmandi/bulkmandi-backend/pkg/errors"
	"github.com/bulkmandi/bulkmandi-backend/pkg/security"
)

func setupRegisterTestDB(t *testing.T) *db.Client {
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
	require.NoError(t, conn.Exec(usersTable).Error)
	t.Cleanup(func() {
		conn.Exec("DELETE FROM users")
	})

	return db.NewFromGorm(conn)
}

func sampleRegisterRequest(email string) RegisterRequest {
	return RegisterRequest{
		Name:         "Ravi Sharma",
		Email:        email,
		Password:     "Secret123!",
		Role:         enums.UserRoleVendor,
		BusinessName: "Sharma Snacks",
		BusinessType: "street_food",
		Location:     "Pune",
	}
}

func newRegisterService(t *testing.T, client *db.Client) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{},
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterCreatesUser(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterService(t, client)

	dto, err := svc.Register(context.Background(), sampleRegisterRequest("new@example.com"))
	require.NoError(t, err)
	require.NotNil(t, dto)
	require.Equal(t, "new@example.com", dto.Email)
	require.Equal(t, enums.UserRoleVendor, dto.Role)

	stored, err := users.NewRepository(client.DB()).FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)

	ok, err := security.VerifyPassword("Secret123!", stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterService(t, client)

	dto, err := svc.Register(context.Background(), sampleRegisterRequest("  Mixed@Example.COM "))
	require.NoError(t, err)
	require.Equal(t, "mixed@example.com", dto.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterService(t, client)

	_, err := svc.Register(context.Background(), sampleRegisterRequest("dupe@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), sampleRegisterRequest("dupe@example.com"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, "User already exists", typed.Message())
}

func TestRegisterRequiresPassword(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterService(t, client)

	req := sampleRegisterRequest("nopass@example.com")
	req.Password = ""

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, "Password is required", typed.Message())
}

func TestRegisterGoogleProviderSkipsPassword(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterService(t, client)

	req := sampleRegisterRequest("federated@example.com")
	req.Password = ""
	req.Provider = ProviderGoogle

	dto, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "federated@example.com", dto.Email)

	stored, err := users.NewRepository(client.DB()).FindByEmail(context.Background(), "federated@example.com")
	require.NoError(t, err)
	require.Empty(t, stored.PasswordHash)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterService(t, client)

	req := sampleRegisterRequest("badrole@example.com")
	req.Role = "admin"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
