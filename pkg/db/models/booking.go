package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/scootly/scootly-backend/pkg/enums"
)

// Booking holds one scooter unit for one rider over an inclusive date range.
// A request for multiple units produces one Booking row per unit.
type Booking struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	StoreID   uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	ScooterID uuid.UUID           `gorm:"column:scooter_id;type:uuid;not null;index"`
	StartDate time.Time           `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time           `gorm:"column:end_date;type:date;not null"`
	Status    enums.BookingStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
