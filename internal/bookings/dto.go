package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
)

const dateLayout = "2006-01-02"

// BookingDTO exposes booking data in API responses.
type BookingDTO struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	StoreID   uuid.UUID           `json:"store_id"`
	ScooterID uuid.UUID           `json:"scooter_id"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Status    enums.BookingStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

// CreateBookingInput holds a rider's booking request. Dates are inclusive
// calendar days. Quantity defaults to 1 when omitted.
type CreateBookingInput struct {
	StoreID   uuid.UUID
	ScooterID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Quantity  int
}

// DateRangeDTO is one blocked span returned by the unavailable-dates lookup.
type DateRangeDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// FromModel maps a persisted booking into a DTO.
func FromModel(m *models.Booking) *BookingDTO {
	if m == nil {
		return nil
	}
	return &BookingDTO{
		ID:        m.ID,
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		ScooterID: m.ScooterID,
		StartDate: m.StartDate.Format(dateLayout),
		EndDate:   m.EndDate.Format(dateLayout),
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

func fromModels(rows []models.Booking) []BookingDTO {
	dtos := make([]BookingDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
