package scooters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
)

// Repository handles scooter unit persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to scooter operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new unit.
func (r *Repository) Create(ctx context.Context, scooter *models.Scooter) error {
	if scooter == nil {
		return fmt.Errorf("scooter is required")
	}
	return r.db.WithContext(ctx).Create(scooter).Error
}

// FindByID loads a unit by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Scooter, error) {
	var scooter models.Scooter
	if err := r.db.WithContext(ctx).First(&scooter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &scooter, nil
}

// ListByStore returns every unit at the store, oldest first so listings are
// stable.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Scooter, error) {
	var scooters []models.Scooter
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC, id ASC").
		Find(&scooters).Error; err != nil {
		return nil, err
	}
	return scooters, nil
}

// Update saves the provided unit.
func (r *Repository) Update(ctx context.Context, scooter *models.Scooter) error {
	if scooter == nil {
		return fmt.Errorf("scooter is required")
	}
	return r.db.WithContext(ctx).Save(scooter).Error
}

// Delete removes a unit permanently.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Scooter{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountActiveBookings counts the unit's PENDING/CONFIRMED bookings.
func (r *Repository) CountActiveBookings(ctx context.Context, scooterID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("scooter_id = ? AND status IN ?", scooterID, enums.ActiveBookingStatuses).
		Count(&count).Error
	return count, err
}
