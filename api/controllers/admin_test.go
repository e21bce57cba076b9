package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/scootly/scootly-backend/internal/stores"
	"github.com/scootly/scootly-backend/internal/users"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
	"github.com/scootly/scootly-backend/pkg/pagination"
)

type stubUserService struct {
	dto        *users.UserDTO
	list       []users.UserDTO
	nextCursor string
	err        error

	gotID     uuid.UUID
	gotInput  users.UpdateProfileInput
	gotParams pagination.Params
	deleted   []uuid.UUID
}

func (s *stubUserService) Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	s.gotID = userID
	return s.dto, s.err
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (*users.UserDTO, error) {
	s.gotID = userID
	s.gotInput = input
	return s.dto, s.err
}

func (s *stubUserService) List(ctx context.Context, params pagination.Params) ([]users.UserDTO, string, error) {
	s.gotParams = params
	return s.list, s.nextCursor, s.err
}

func (s *stubUserService) Delete(ctx context.Context, userID uuid.UUID) error {
	s.deleted = append(s.deleted, userID)
	return s.err
}

func TestAdminStoreListIncludesUnaccepted(t *testing.T) {
	svc := &stubStoreService{
		list: []stores.StoreDTO{
			{ID: uuid.New(), Name: "Riva Rentals", Accepted: true},
			{ID: uuid.New(), Name: "New Applicant", Accepted: false},
		},
	}
	handler := AdminStoreList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/stores", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []stores.StoreDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected both stores got %d", len(envelope.Data))
	}
}

func TestAdminStoreAcceptSuccess(t *testing.T) {
	storeID := uuid.New()
	svc := &stubStoreService{dto: &stores.StoreDTO{ID: storeID, Accepted: true}}
	handler := AdminStoreAccept(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/stores/"+storeID.String()+"/accept", nil)
	req = withRouteParam(req, "storeId", storeID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(svc.accepted) != 1 || svc.accepted[0] != storeID {
		t.Fatalf("expected accept of %s got %v", storeID, svc.accepted)
	}
}

func TestAdminStoreAcceptNotFound(t *testing.T) {
	svc := &stubStoreService{err: pkgerrors.New(pkgerrors.CodeNotFound, "store not found")}
	handler := AdminStoreAccept(svc, nil)

	storeID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/stores/"+storeID.String()+"/accept", nil)
	req = withRouteParam(req, "storeId", storeID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestAdminUserListPagination(t *testing.T) {
	svc := &stubUserService{
		list:       []users.UserDTO{{ID: uuid.New(), Email: "ada@example.com"}},
		nextCursor: "next-page",
	}
	handler := AdminUserList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users?limit=10", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.gotParams.Limit != 10 {
		t.Fatalf("expected limit 10 got %d", svc.gotParams.Limit)
	}

	var envelope struct {
		Data adminUserListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.NextCursor != "next-page" {
		t.Fatalf("expected next-page got %q", envelope.Data.NextCursor)
	}
}

func TestAdminUserDeleteSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{}
	handler := AdminUserDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/users/"+userID.String(), nil)
	req = withRouteParam(req, "userId", userID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != userID {
		t.Fatalf("expected delete of %s got %v", userID, svc.deleted)
	}
}

func TestAdminUserDeleteInvalidID(t *testing.T) {
	handler := AdminUserDelete(&stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/users/nope", nil)
	req = withRouteParam(req, "userId", "nope")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
