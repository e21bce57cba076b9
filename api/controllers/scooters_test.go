package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scootly/scootly-backend/api/middleware"
	"github.com/scootly/scootly-backend/internal/bookings"
	"github.com/scootly/scootly-backend/internal/scooters"
	"github.com/scootly/scootly-backend/internal/stores"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
)

type stubScooterService struct {
	dto  *scooters.ScooterDTO
	list []scooters.ScooterDTO
	err  error

	gotStoreID   uuid.UUID
	gotScooterID uuid.UUID
	gotCreate    scooters.CreateScooterInput
	gotUpdate    scooters.UpdateScooterInput
	deleted      []uuid.UUID
}

func (s *stubScooterService) Create(ctx context.Context, storeID uuid.UUID, input scooters.CreateScooterInput) (*scooters.ScooterDTO, error) {
	s.gotStoreID = storeID
	s.gotCreate = input
	return s.dto, s.err
}

func (s *stubScooterService) Get(ctx context.Context, id uuid.UUID) (*scooters.ScooterDTO, error) {
	s.gotScooterID = id
	return s.dto, s.err
}

func (s *stubScooterService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]scooters.ScooterDTO, error) {
	s.gotStoreID = storeID
	return s.list, s.err
}

func (s *stubScooterService) Update(ctx context.Context, storeID, scooterID uuid.UUID, input scooters.UpdateScooterInput) (*scooters.ScooterDTO, error) {
	s.gotStoreID = storeID
	s.gotScooterID = scooterID
	s.gotUpdate = input
	return s.dto, s.err
}

func (s *stubScooterService) Delete(ctx context.Context, storeID, scooterID uuid.UUID) error {
	s.gotStoreID = storeID
	s.deleted = append(s.deleted, scooterID)
	return s.err
}

func TestPublicStoreScootersSuccess(t *testing.T) {
	storeID := uuid.New()
	storeSvc := &stubStoreService{dto: &stores.StoreDTO{ID: storeID, Accepted: true}}
	scooterSvc := &stubScooterService{
		list: []scooters.ScooterDTO{
			{ID: uuid.New(), StoreID: storeID, Model: "Vespa Primavera", Status: enums.ScooterStatusAvailable},
			{ID: uuid.New(), StoreID: storeID, Model: "Honda PCX", Status: enums.ScooterStatusRented},
		},
	}
	handler := PublicStoreScooters(scooterSvc, storeSvc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/stores/"+storeID.String()+"/scooters", nil)
	req = withRouteParam(req, "storeId", storeID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if scooterSvc.gotStoreID != storeID {
		t.Fatalf("expected list for store %s, got %s", storeID, scooterSvc.gotStoreID)
	}

	var envelope struct {
		Data []scooters.ScooterDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 scooters, got %d", len(envelope.Data))
	}
}

func TestPublicStoreScootersHidesUnaccepted(t *testing.T) {
	storeID := uuid.New()
	storeSvc := &stubStoreService{dto: &stores.StoreDTO{ID: storeID, Accepted: false}}
	handler := PublicStoreScooters(&stubScooterService{}, storeSvc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/stores/"+storeID.String()+"/scooters", nil)
	req = withRouteParam(req, "storeId", storeID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestScooterUnavailableDatesSuccess(t *testing.T) {
	scooterID := uuid.New()
	svc := &stubBookingService{
		ranges: []bookings.DateRangeDTO{
			{StartDate: "2026-09-10", EndDate: "2026-09-12"},
		},
	}
	handler := ScooterUnavailableDates(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/scooters/"+scooterID.String()+"/unavailable-dates", nil)
	req = withRouteParam(req, "scooterId", scooterID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []bookings.DateRangeDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].StartDate != "2026-09-10" {
		t.Fatalf("unexpected ranges: %+v", envelope.Data)
	}
}

func TestScooterUnavailableDatesInvalidID(t *testing.T) {
	handler := ScooterUnavailableDates(&stubBookingService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/public/scooters/nope/unavailable-dates", nil)
	req = withRouteParam(req, "scooterId", "nope")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestStoreScooterListSuccess(t *testing.T) {
	storeID := uuid.New()
	svc := &stubScooterService{
		list: []scooters.ScooterDTO{{ID: uuid.New(), StoreID: storeID, Model: "Vespa GTS"}},
	}
	handler := StoreScooterList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/store/scooters", nil)
	req = req.WithContext(middleware.WithStoreID(req.Context(), storeID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotStoreID != storeID {
		t.Fatalf("expected list scoped to %s, got %s", storeID, svc.gotStoreID)
	}
}

func TestStoreScooterCreateSuccess(t *testing.T) {
	storeID := uuid.New()
	svc := &stubScooterService{
		dto: &scooters.ScooterDTO{ID: uuid.New(), StoreID: storeID, Model: "Vespa Primavera", NumberPlate: "AMS-101"},
	}
	handler := StoreScooterCreate(svc, nil)

	body := []byte(`{"model":"  Vespa Primavera ","number_plate":" AMS-101 ","price_per_day":45.5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/store/scooters", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithStoreID(req.Context(), storeID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotCreate.Model != "Vespa Primavera" || svc.gotCreate.NumberPlate != "AMS-101" {
		t.Fatalf("expected trimmed input, got %+v", svc.gotCreate)
	}
	if !svc.gotCreate.PricePerDay.Equal(decimal.NewFromFloat(45.5)) {
		t.Fatalf("expected price 45.5, got %s", svc.gotCreate.PricePerDay)
	}
}

func TestStoreScooterCreateMissingStoreContext(t *testing.T) {
	handler := StoreScooterCreate(&stubScooterService{}, nil)

	body := []byte(`{"model":"Vespa","number_plate":"AMS-1","price_per_day":10}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/store/scooters", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestStoreScooterCreateRejectsBadImageURL(t *testing.T) {
	storeID := uuid.New()
	handler := StoreScooterCreate(&stubScooterService{}, nil)

	body := []byte(`{"model":"Vespa","number_plate":"AMS-1","price_per_day":10,"image_url":"not a url"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/store/scooters", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithStoreID(req.Context(), storeID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestStoreScooterUpdateStatus(t *testing.T) {
	storeID := uuid.New()
	scooterID := uuid.New()
	svc := &stubScooterService{
		dto: &scooters.ScooterDTO{ID: scooterID, StoreID: storeID, Status: enums.ScooterStatusMaintenance},
	}
	handler := StoreScooterUpdate(svc, nil)

	body := []byte(`{"status":"MAINTENANCE"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/store/scooters/"+scooterID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithStoreID(req.Context(), storeID.String()))
	req = withRouteParam(req, "scooterId", scooterID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotUpdate.Status == nil || *svc.gotUpdate.Status != enums.ScooterStatusMaintenance {
		t.Fatalf("expected maintenance status, got %+v", svc.gotUpdate.Status)
	}
	if svc.gotScooterID != scooterID {
		t.Fatalf("expected update for %s, got %s", scooterID, svc.gotScooterID)
	}
}

func TestStoreScooterUpdateRejectsUnknownStatus(t *testing.T) {
	storeID := uuid.New()
	scooterID := uuid.New()
	handler := StoreScooterUpdate(&stubScooterService{}, nil)

	body := []byte(`{"status":"BROKEN"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/store/scooters/"+scooterID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithStoreID(req.Context(), storeID.String()))
	req = withRouteParam(req, "scooterId", scooterID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestStoreScooterDeleteSuccess(t *testing.T) {
	storeID := uuid.New()
	scooterID := uuid.New()
	svc := &stubScooterService{}
	handler := StoreScooterDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/store/scooters/"+scooterID.String(), nil)
	req = req.WithContext(middleware.WithStoreID(req.Context(), storeID.String()))
	req = withRouteParam(req, "scooterId", scooterID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != scooterID {
		t.Fatalf("expected delete of %s, got %v", scooterID, svc.deleted)
	}
}

func TestStoreScooterDeleteActiveBookingsConflict(t *testing.T) {
	storeID := uuid.New()
	scooterID := uuid.New()
	svc := &stubScooterService{err: pkgerrors.New(pkgerrors.CodeConflict, "scooter has active bookings")}
	handler := StoreScooterDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/store/scooters/"+scooterID.String(), nil)
	req = req.WithContext(middleware.WithStoreID(req.Context(), storeID.String()))
	req = withRouteParam(req, "scooterId", scooterID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}
