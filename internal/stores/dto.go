package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/scootly/scootly-backend/pkg/db/models"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description *string   `json:"description,omitempty"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Accepted    bool      `json:"accepted"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateStoreDTO holds creation-time data for a new store.
type CreateStoreDTO struct {
	Name        string
	Email       string
	Description *string
	Address     string
	Latitude    *float64
	Longitude   *float64
	OwnerID     uuid.UUID
}

// UpdateStoreInput carries the mutable store profile fields.
type UpdateStoreInput struct {
	Name        *string
	Description *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Description: m.Description,
		Address:     m.Address,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Accepted:    m.Accepted,
		CreatedAt:   m.CreatedAt,
	}
}

func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		ID:          uuid.New(),
		Name:        c.Name,
		Email:       c.Email,
		Description: c.Description,
		Address:     c.Address,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Accepted:    false,
		OwnerID:     c.OwnerID,
	}
}
