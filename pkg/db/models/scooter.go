package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scootly/scootly-backend/pkg/enums"
)

// Scooter represents a single physical unit owned by a store. Units that
// share a model at the same store form an interchangeable pool.
type Scooter struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	StoreID     uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	Model       string              `gorm:"column:model;not null"`
	NumberPlate string              `gorm:"column:number_plate;not null;uniqueIndex"`
	Status      enums.ScooterStatus `gorm:"column:status;type:text;not null;default:'AVAILABLE'"`
	PricePerDay decimal.Decimal     `gorm:"column:price_per_day;type:numeric(10,2);not null"`
	ImageURL    *string             `gorm:"column:image_url"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
