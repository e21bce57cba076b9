package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/scootly/scootly-backend/api/middleware"
	"github.com/scootly/scootly-backend/internal/users"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
)

func TestProfileSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{
		dto: &users.UserDTO{ID: userID, Email: "rider@example.com", Name: "Sam Rider", Role: enums.RoleRider},
	}
	handler := Profile(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotID != userID {
		t.Fatalf("expected lookup for %s, got %s", userID, svc.gotID)
	}

	var envelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != userID || envelope.Data.Email != "rider@example.com" {
		t.Fatalf("unexpected profile: %+v", envelope.Data)
	}
}

func TestProfileMissingUserContext(t *testing.T) {
	handler := Profile(&stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestProfileNotFoundPassthrough(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	handler := Profile(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestProfileUpdateSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{
		dto: &users.UserDTO{ID: userID, Name: "Sam Updated", Role: enums.RoleRider},
	}
	handler := ProfileUpdate(svc, nil)

	body := []byte(`{"name":"  Sam Updated "}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotInput.Name != "Sam Updated" {
		t.Fatalf("expected trimmed name, got %q", svc.gotInput.Name)
	}
}

func TestProfileUpdateRejectsEmptyName(t *testing.T) {
	userID := uuid.New()
	handler := ProfileUpdate(&stubUserService{}, nil)

	body := []byte(`{"name":""}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
