package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
	"github.com/scootly/scootly-backend/pkg/pagination"
)

// Repository handles booking persistence and the unit queries that back
// assignment.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to booking operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listParams struct {
	Limit  int
	Cursor *pagination.Cursor
}

// LockCandidateUnits loads every bookable unit of the model at the store,
// oldest-created first, taking row locks so concurrent assignment for the
// same pool serializes. SQLite has no row locks, its single writer already
// serializes transactions.
func (r *Repository) LockCandidateUnits(tx *gorm.DB, storeID uuid.UUID, model string) ([]models.Scooter, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}

	query := tx.
		Where("store_id = ? AND model = ? AND status IN ?", storeID, model, enums.BookableScooterStatuses).
		Order("created_at ASC, id ASC")
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var scooters []models.Scooter
	if err := query.Find(&scooters).Error; err != nil {
		return nil, err
	}
	return scooters, nil
}

// ActiveBookingsForScooters returns the PENDING/CONFIRMED bookings held by
// any of the provided units.
func (r *Repository) ActiveBookingsForScooters(tx *gorm.DB, scooterIDs []uuid.UUID) ([]models.Booking, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	if len(scooterIDs) == 0 {
		return nil, nil
	}

	var rows []models.Booking
	if err := tx.
		Where("scooter_id IN ? AND status IN ?", scooterIDs, enums.ActiveBookingStatuses).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWithTx persists the booking rows inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, rows []*models.Booking) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(rows).Error
}

// SetScooterStatusWithTx flips the status of the listed units.
func (r *Repository) SetScooterStatusWithTx(tx *gorm.DB, scooterIDs []uuid.UUID, status enums.ScooterStatus) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(scooterIDs) == 0 {
		return nil
	}
	return tx.Model(&models.Scooter{}).
		Where("id IN ?", scooterIDs).
		Update("status", status).Error
}

// FindByID loads a booking by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns the rider's bookings newest first with cursor paging.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params listParams) ([]models.Booking, *pagination.Cursor, error) {
	return r.list(ctx, "user_id = ?", userID, params)
}

// ListByStore returns the store's bookings newest first with cursor paging.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, params listParams) ([]models.Booking, *pagination.Cursor, error) {
	return r.list(ctx, "store_id = ?", storeID, params)
}

func (r *Repository) list(ctx context.Context, cond string, arg any, params listParams) ([]models.Booking, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where(cond, arg)
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Booking
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		rows = rows[:normalized]
		// The cursor marks the last row handed out; the strict < on the
		// next query then starts exactly one row past it.
		last := rows[normalized-1]
		return rows, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}

// ActiveRangesForScooterFrom returns the active bookings for a unit whose
// range has not fully elapsed by the given day, soonest first.
func (r *Repository) ActiveRangesForScooterFrom(ctx context.Context, scooterID uuid.UUID, from time.Time) ([]models.Booking, error) {
	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where("scooter_id = ? AND status IN ? AND end_date >= ?", scooterID, enums.ActiveBookingStatuses, from).
		Order("start_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TransitionStatusWithTx conditionally moves a booking from one status to
// another. Returns false when the row was missing or not in the expected
// status, the caller decides how to report that.
func (r *Repository) TransitionStatusWithTx(tx *gorm.DB, bookingID uuid.UUID, from, to enums.BookingStatus) (bool, error) {
	if tx == nil {
		return false, gorm.ErrInvalidTransaction
	}
	result := tx.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountActiveForScooterWithTx counts the unit's remaining PENDING/CONFIRMED
// bookings, excluding one booking id.
func (r *Repository) CountActiveForScooterWithTx(tx *gorm.DB, scooterID, excludeBookingID uuid.UUID) (int64, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("scooter_id = ? AND status IN ? AND id <> ?", scooterID, enums.ActiveBookingStatuses, excludeBookingID).
		Count(&count).Error
	return count, err
}

// PromoteExpiredWithTx marks CONFIRMED bookings whose range ended before
// the given day as COMPLETED. Returns how many rows changed.
func (r *Repository) PromoteExpiredWithTx(tx *gorm.DB, today time.Time) (int64, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	result := tx.Model(&models.Booking{}).
		Where("status = ? AND end_date < ?", enums.BookingStatusConfirmed, today).
		Update("status", enums.BookingStatusCompleted)
	return result.RowsAffected, result.Error
}

// ReleaseIdleScootersWithTx reverts RENTED units that no longer hold any
// active booking back to AVAILABLE. Returns how many rows changed.
func (r *Repository) ReleaseIdleScootersWithTx(tx *gorm.DB) (int64, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	result := tx.Model(&models.Scooter{}).
		Where("status = ?", enums.ScooterStatusRented).
		Where("NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.scooter_id = scooters.id AND bookings.status IN ?)", enums.ActiveBookingStatuses).
		Update("status", enums.ScooterStatusAvailable)
	return result.RowsAffected, result.Error
}
