package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/pkg/db/models"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	ListAccepted(ctx context.Context) ([]models.Store, error)
	ListAll(ctx context.Context) ([]models.Store, error)
	Accept(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, store *models.Store) error
}

// Service exposes store operations.
type Service interface {
	PublicList(ctx context.Context) ([]StoreDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	ListAll(ctx context.Context) ([]StoreDTO, error)
	Accept(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	UpdateProfile(ctx context.Context, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository is required")
	}
	return &service{repo: repo}, nil
}

// PublicList returns only approved stores, the set riders see on the map.
func (s *service) PublicList(ctx context.Context) ([]StoreDTO, error) {
	rows, err := s.repo.ListAccepted(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing stores")
	}
	return fromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

// ListAll returns every store including unapproved ones. Admin only.
func (s *service) ListAll(ctx context.Context) ([]StoreDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing stores")
	}
	return fromModels(rows), nil
}

// Accept approves a pending store so its operator can log in.
func (s *service) Accept(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	accepted, err := s.repo.Accept(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accepting store")
	}
	if !accepted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found or already accepted")
	}
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) UpdateProfile(ctx context.Context, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.load(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		store.Name = name
	}
	if input.Description != nil {
		store.Description = input.Description
	}
	if input.Address != nil {
		address := strings.TrimSpace(*input.Address)
		if address == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "address must not be empty")
		}
		store.Address = address
	}
	if input.Latitude != nil {
		store.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		store.Longitude = input.Longitude
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating store")
	}
	return FromModel(store), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading store")
	}
	return store, nil
}

func fromModels(rows []models.Store) []StoreDTO {
	dtos := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
