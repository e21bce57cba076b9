package scooters

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
)

// ScooterDTO exposes unit data in API responses.
type ScooterDTO struct {
	ID          uuid.UUID           `json:"id"`
	StoreID     uuid.UUID           `json:"store_id"`
	Model       string              `json:"model"`
	NumberPlate string              `json:"number_plate"`
	Status      enums.ScooterStatus `json:"status"`
	PricePerDay decimal.Decimal     `json:"price_per_day"`
	ImageURL    *string             `json:"image_url,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// CreateScooterInput holds creation-time data for a new unit.
type CreateScooterInput struct {
	Model       string
	NumberPlate string
	PricePerDay decimal.Decimal
	ImageURL    *string
}

// UpdateScooterInput carries the mutable unit fields.
type UpdateScooterInput struct {
	Model       *string
	NumberPlate *string
	Status      *enums.ScooterStatus
	PricePerDay *decimal.Decimal
	ImageURL    *string
}

// FromModel maps the persisted unit into a DTO.
func FromModel(m *models.Scooter) *ScooterDTO {
	if m == nil {
		return nil
	}
	return &ScooterDTO{
		ID:          m.ID,
		StoreID:     m.StoreID,
		Model:       m.Model,
		NumberPlate: m.NumberPlate,
		Status:      m.Status,
		PricePerDay: m.PricePerDay,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
}

func fromModels(rows []models.Scooter) []ScooterDTO {
	dtos := make([]ScooterDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
