package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
	"github.com/scootly/scootly-backend/pkg/security"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newRegisterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:auth_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Store{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRegisterService(t *testing.T, db *gorm.DB) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             gormTxRunner{db: db},
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc
}

func sampleStoreSignup(email, storeEmail string) SignupStoreRequest {
	description := "Downtown rentals"
	lat, lng := 41.3874, 2.1686
	return SignupStoreRequest{
		Name:        "Jordi Puig",
		Email:       email,
		Password:    "Secret123!Secret",
		StoreName:   "Downtown Scooters",
		StoreEmail:  storeEmail,
		Description: &description,
		Address:     "12 Carrer de Mallorca",
		Latitude:    &lat,
		Longitude:   &lng,
	}
}

func TestSignupRider(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newTestRegisterService(t, db)

	dto, err := svc.SignupRider(context.Background(), SignupRiderRequest{
		Name:     "Ana Serra",
		Email:    "  Ana@Example.COM ",
		Password: "Secret123!Secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", dto.Email)
	assert.Equal(t, enums.RoleRider, dto.Role)
	assert.Nil(t, dto.StoreID)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "ana@example.com").Error)
	ok, err := security.VerifyPassword("Secret123!Secret", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignupRiderDuplicateEmail(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newTestRegisterService(t, db)
	ctx := context.Background()

	req := SignupRiderRequest{Name: "Ana", Email: "ana@example.com", Password: "Secret123!Secret"}
	_, err := svc.SignupRider(ctx, req)
	require.NoError(t, err)

	_, err = svc.SignupRider(ctx, req)
	assert.Equal(t, pkgerrors.CodeConflict, authErrorCode(t, err))
}

func TestSignupStore(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newTestRegisterService(t, db)

	dto, err := svc.SignupStore(context.Background(), sampleStoreSignup("owner@example.com", "shop@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", dto.Email)
	assert.False(t, dto.Accepted, "new stores start unapproved")

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "owner@example.com").Error)
	assert.Equal(t, enums.RoleStore, user.Role)
	require.NotNil(t, user.StoreID)
	assert.Equal(t, dto.ID, *user.StoreID)

	var store models.Store
	require.NoError(t, db.First(&store, "id = ?", dto.ID).Error)
	assert.Equal(t, user.ID, store.OwnerID)
}

func TestSignupStoreDuplicateOwnerEmailRollsBack(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newTestRegisterService(t, db)
	ctx := context.Background()

	_, err := svc.SignupRider(ctx, SignupRiderRequest{Name: "Ana", Email: "owner@example.com", Password: "Secret123!Secret"})
	require.NoError(t, err)

	_, err = svc.SignupStore(ctx, sampleStoreSignup("owner@example.com", "shop@example.com"))
	assert.Equal(t, pkgerrors.CodeConflict, authErrorCode(t, err))

	var count int64
	require.NoError(t, db.Model(&models.Store{}).Count(&count).Error)
	assert.Zero(t, count, "failed signup must not leave a store behind")
}

func TestSignupStoreDuplicateStoreEmail(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newTestRegisterService(t, db)
	ctx := context.Background()

	_, err := svc.SignupStore(ctx, sampleStoreSignup("first@example.com", "shop@example.com"))
	require.NoError(t, err)

	_, err = svc.SignupStore(ctx, sampleStoreSignup("second@example.com", "shop@example.com"))
	assert.Equal(t, pkgerrors.CodeConflict, authErrorCode(t, err))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "second@example.com").Count(&userCount).Error)
	assert.Zero(t, userCount, "failed signup must not leave the operator account behind")
}

func TestSignupRejectsBlankEmail(t *testing.T) {
	t.Parallel()

	svc := newTestRegisterService(t, newRegisterTestDB(t))

	_, err := svc.SignupRider(context.Background(), SignupRiderRequest{Name: "Ana", Email: "   ", Password: "Secret123!Secret"})
	assert.Equal(t, pkgerrors.CodeValidation, authErrorCode(t, err))
}
