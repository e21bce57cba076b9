package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scootly/scootly-backend/api/responses"
	"github.com/scootly/scootly-backend/api/validators"
	"github.com/scootly/scootly-backend/internal/bookings"
	"github.com/scootly/scootly-backend/internal/scooters"
	"github.com/scootly/scootly-backend/internal/stores"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
	"github.com/scootly/scootly-backend/pkg/logger"
)

// PublicStoreScooters lists a store's fleet for rider browsing. Only accepted
// stores are visible.
func PublicStoreScooters(scooterSvc scooters.Service, storeSvc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scooterSvc == nil || storeSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scooter service unavailable"))
			return
		}

		storeID, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := storeSvc.Get(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !store.Accepted {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "store not found"))
			return
		}

		list, err := scooterSvc.ListByStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ScooterUnavailableDates returns the date ranges a unit cannot be booked,
// so rider clients can grey out calendar days.
func ScooterUnavailableDates(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		scooterID, err := pathUUID(r, "scooterId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ranges, err := svc.UnavailableDates(r.Context(), scooterID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ranges)
	}
}

// StoreScooterList returns the active store's fleet.
func StoreScooterList(svc scooters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scooter service unavailable"))
			return
		}

		storeID, err := currentStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

type scooterCreateRequest struct {
	Model       string          `json:"model" validate:"required,min=1,max=120"`
	NumberPlate string          `json:"number_plate" validate:"required,min=1,max=32"`
	PricePerDay decimal.Decimal `json:"price_per_day" validate:"required"`
	ImageURL    *string         `json:"image_url,omitempty" validate:"omitempty,url"`
}

// StoreScooterCreate registers a new unit in the active store's fleet.
func StoreScooterCreate(svc scooters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scooter service unavailable"))
			return
		}

		storeID, err := currentStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body scooterCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), storeID, scooters.CreateScooterInput{
			Model:       strings.TrimSpace(body.Model),
			NumberPlate: strings.TrimSpace(body.NumberPlate),
			PricePerDay: body.PricePerDay,
			ImageURL:    body.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type scooterUpdateRequest struct {
	Model       *string          `json:"model,omitempty" validate:"omitempty,min=1,max=120"`
	NumberPlate *string          `json:"number_plate,omitempty" validate:"omitempty,min=1,max=32"`
	Status      *string          `json:"status,omitempty"`
	PricePerDay *decimal.Decimal `json:"price_per_day,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,url"`
}

func (r scooterUpdateRequest) toInput() (scooters.UpdateScooterInput, error) {
	input := scooters.UpdateScooterInput{
		Model:       r.Model,
		NumberPlate: r.NumberPlate,
		PricePerDay: r.PricePerDay,
		ImageURL:    r.ImageURL,
	}
	if r.Status != nil {
		status, err := enums.ParseScooterStatus(*r.Status)
		if err != nil {
			return scooters.UpdateScooterInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	return input, nil
}

// StoreScooterUpdate adjusts a unit owned by the active store.
func StoreScooterUpdate(svc scooters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scooter service unavailable"))
			return
		}

		storeID, err := currentStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scooterID, err := pathUUID(r, "scooterId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body scooterUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), storeID, scooterID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// StoreScooterDelete removes a unit with no active bookings.
func StoreScooterDelete(svc scooters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scooter service unavailable"))
			return
		}

		storeID, err := currentStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scooterID, err := pathUUID(r, "scooterId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), storeID, scooterID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
