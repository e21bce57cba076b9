package scooters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:scooters_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Scooter{}, &models.Booking{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestCreateScooter(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	storeID := uuid.New()

	dto, err := svc.Create(context.Background(), storeID, CreateScooterInput{
		Model:       "city-rider",
		NumberPlate: "D-101-XY",
		PricePerDay: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, storeID, dto.StoreID)
	assert.Equal(t, enums.ScooterStatusAvailable, dto.Status)

	// Duplicate plate is rejected.
	_, err = svc.Create(context.Background(), storeID, CreateScooterInput{
		Model:       "city-rider",
		NumberPlate: "D-101-XY",
		PricePerDay: decimal.NewFromInt(30),
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeConflict, coded.Code())

	_, err = svc.Create(context.Background(), storeID, CreateScooterInput{
		Model:       " ",
		NumberPlate: "D-102-XY",
		PricePerDay: decimal.NewFromInt(25),
	})
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestUpdateScooterOwnership(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	storeID := uuid.New()

	dto, err := svc.Create(context.Background(), storeID, CreateScooterInput{
		Model:       "city-rider",
		NumberPlate: "D-201-XY",
		PricePerDay: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	status := enums.ScooterStatusMaintenance
	updated, err := svc.Update(context.Background(), storeID, dto.ID, UpdateScooterInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, enums.ScooterStatusMaintenance, updated.Status)

	// Another store cannot touch the unit.
	_, err = svc.Update(context.Background(), uuid.New(), dto.ID, UpdateScooterInput{Status: &status})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())

	bogus := enums.ScooterStatus("FLYING")
	_, err = svc.Update(context.Background(), storeID, dto.ID, UpdateScooterInput{Status: &bogus})
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestDeleteScooterBlockedByActiveBookings(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	storeID := uuid.New()

	dto, err := svc.Create(context.Background(), storeID, CreateScooterInput{
		Model:       "city-rider",
		NumberPlate: "D-301-XY",
		PricePerDay: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	booking := models.Booking{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		StoreID:   storeID,
		ScooterID: dto.ID,
		Status:    enums.BookingStatusPending,
	}
	require.NoError(t, db.Create(&booking).Error)

	err = svc.Delete(context.Background(), storeID, dto.ID)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeStateConflict, coded.Code())

	// Once the booking is terminal the unit can go.
	require.NoError(t, db.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", enums.BookingStatusCancelled).Error)
	require.NoError(t, svc.Delete(context.Background(), storeID, dto.ID))

	err = svc.Delete(context.Background(), storeID, dto.ID)
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestListByStore(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	storeID := uuid.New()

	for _, plate := range []string{"D-401-XY", "D-402-XY"} {
		_, err := svc.Create(context.Background(), storeID, CreateScooterInput{
			Model:       "city-rider",
			NumberPlate: plate,
			PricePerDay: decimal.NewFromInt(25),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), uuid.New(), CreateScooterInput{
		Model:       "city-rider",
		NumberPlate: "D-403-XY",
		PricePerDay: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	listed, err := svc.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
