package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/scootly/scootly-backend/api/responses"
	"github.com/scootly/scootly-backend/api/validators"
	"github.com/scootly/scootly-backend/internal/bookings"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
	"github.com/scootly/scootly-backend/pkg/logger"
	"github.com/scootly/scootly-backend/pkg/pagination"
)

const bookingDateLayout = "2006-01-02"

type bookingCreateRequest struct {
	StoreID   string `json:"store_id" validate:"required,uuid4"`
	ScooterID string `json:"scooter_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Quantity  int    `json:"quantity,omitempty" validate:"omitempty,min=1,max=20"`
}

func (b bookingCreateRequest) toInput() (bookings.CreateBookingInput, error) {
	storeID, err := parseUUIDField(b.StoreID, "store_id")
	if err != nil {
		return bookings.CreateBookingInput{}, err
	}
	scooterID, err := parseUUIDField(b.ScooterID, "scooter_id")
	if err != nil {
		return bookings.CreateBookingInput{}, err
	}
	start, err := time.Parse(bookingDateLayout, b.StartDate)
	if err != nil {
		return bookings.CreateBookingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start_date")
	}
	end, err := time.Parse(bookingDateLayout, b.EndDate)
	if err != nil {
		return bookings.CreateBookingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end_date")
	}
	return bookings.CreateBookingInput{
		StoreID:   storeID,
		ScooterID: scooterID,
		StartDate: start,
		EndDate:   end,
		Quantity:  b.Quantity,
	}, nil
}

// BookingCreate books scooters for the authenticated rider. The response is
// one booking per assigned unit.
func BookingCreate(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body bookingCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type bookingListResponse struct {
	Bookings   []bookings.BookingDTO `json:"bookings"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

func listParamsFromQuery(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{}
	if limitStr := strings.TrimSpace(r.URL.Query().Get("limit")); limitStr != "" {
		value, err := strconv.Atoi(limitStr)
		if err != nil || value <= 0 {
			return params, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer")
		}
		params.Limit = value
	}
	if cursor := strings.TrimSpace(r.URL.Query().Get("cursor")); cursor != "" {
		params.Cursor = cursor
	}
	return params, nil
}

// RiderBookingList returns the authenticated rider's bookings, newest first.
func RiderBookingList(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := listParamsFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, next, err := svc.ListForRider(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bookingListResponse{Bookings: list, NextCursor: next})
	}
}

// RiderBookingCancel cancels one of the rider's own bookings.
func RiderBookingCancel(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := pathUUID(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CancelByRider(r.Context(), userID, bookingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

// StoreBookingList returns the active store's incoming bookings.
func StoreBookingList(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		storeID, err := currentStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := listParamsFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, next, err := svc.ListForStore(r.Context(), storeID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bookingListResponse{Bookings: list, NextCursor: next})
	}
}

// StoreBookingConfirm approves a pending booking.
func StoreBookingConfirm(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		storeID, err := currentStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := pathUUID(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Confirm(r.Context(), storeID, bookingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// StoreBookingCancel rejects a pending booking.
func StoreBookingCancel(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		storeID, err := currentStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := pathUUID(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CancelByStore(r.Context(), storeID, bookingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}
