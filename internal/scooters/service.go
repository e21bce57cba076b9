package scooters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/pkg/db"
	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
)

type scooterRepository interface {
	Create(ctx context.Context, scooter *models.Scooter) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Scooter, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Scooter, error)
	Update(ctx context.Context, scooter *models.Scooter) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountActiveBookings(ctx context.Context, scooterID uuid.UUID) (int64, error)
}

// Service exposes scooter unit operations.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, input CreateScooterInput) (*ScooterDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ScooterDTO, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]ScooterDTO, error)
	Update(ctx context.Context, storeID, scooterID uuid.UUID, input UpdateScooterInput) (*ScooterDTO, error)
	Delete(ctx context.Context, storeID, scooterID uuid.UUID) error
}

type service struct {
	repo scooterRepository
}

// NewService builds a scooter service with the provided repository.
func NewService(repo scooterRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("scooter repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, input CreateScooterInput) (*ScooterDTO, error) {
	model := strings.TrimSpace(input.Model)
	plate := strings.TrimSpace(input.NumberPlate)
	if model == "" || plate == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "model and number plate are required")
	}
	if input.PricePerDay.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price per day must not be negative")
	}

	scooter := &models.Scooter{
		ID:          uuid.New(),
		StoreID:     storeID,
		Model:       model,
		NumberPlate: plate,
		Status:      enums.ScooterStatusAvailable,
		PricePerDay: input.PricePerDay,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, scooter); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "number plate already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating scooter")
	}
	return FromModel(scooter), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ScooterDTO, error) {
	scooter, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(scooter), nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID) ([]ScooterDTO, error) {
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing scooters")
	}
	return fromModels(rows), nil
}

func (s *service) Update(ctx context.Context, storeID, scooterID uuid.UUID, input UpdateScooterInput) (*ScooterDTO, error) {
	scooter, err := s.loadOwned(ctx, storeID, scooterID)
	if err != nil {
		return nil, err
	}

	if input.Model != nil {
		model := strings.TrimSpace(*input.Model)
		if model == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "model must not be empty")
		}
		scooter.Model = model
	}
	if input.NumberPlate != nil {
		plate := strings.TrimSpace(*input.NumberPlate)
		if plate == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "number plate must not be empty")
		}
		scooter.NumberPlate = plate
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid scooter status")
		}
		scooter.Status = *input.Status
	}
	if input.PricePerDay != nil {
		if input.PricePerDay.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price per day must not be negative")
		}
		scooter.PricePerDay = *input.PricePerDay
	}
	if input.ImageURL != nil {
		scooter.ImageURL = input.ImageURL
	}

	if err := s.repo.Update(ctx, scooter); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "number plate already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating scooter")
	}
	return FromModel(scooter), nil
}

// Delete removes a unit. Units with active bookings cannot be removed, the
// bookings must be cancelled or completed first.
func (s *service) Delete(ctx context.Context, storeID, scooterID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, storeID, scooterID); err != nil {
		return err
	}

	active, err := s.repo.CountActiveBookings(ctx, scooterID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting active bookings")
	}
	if active > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "scooter has active bookings")
	}

	deleted, err := s.repo.Delete(ctx, scooterID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting scooter")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "scooter not found")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Scooter, error) {
	scooter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scooter not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading scooter")
	}
	return scooter, nil
}

func (s *service) loadOwned(ctx context.Context, storeID, scooterID uuid.UUID) (*models.Scooter, error) {
	scooter, err := s.load(ctx, scooterID)
	if err != nil {
		return nil, err
	}
	if scooter.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scooter not found")
	}
	return scooter, nil
}
