package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scootly/scootly-backend/internal/bookings"
	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/logger"
	"github.com/scootly/scootly-backend/pkg/mailer"
)

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service emails booking events to riders and stores. Delivery is
// best-effort: failures are logged and never surfaced to the caller, a lost
// email must not undo a committed booking.
type Service struct {
	mail   mailer.Mailer
	users  userFinder
	stores storeFinder
	logg   *logger.Logger
}

// NewService builds the notification service.
func NewService(mail mailer.Mailer, users userFinder, stores storeFinder, logg *logger.Logger) (*Service, error) {
	if mail == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user finder is required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store finder is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{mail: mail, users: users, stores: stores, logg: logg}, nil
}

// BookingsRequested emails the rider one message per created booking and the
// store a single summary.
func (s *Service) BookingsRequested(ctx context.Context, created []bookings.BookingDTO) {
	if len(created) == 0 {
		return
	}

	rider, store, ok := s.lookupParties(ctx, created[0].UserID, created[0].StoreID)
	if !ok {
		return
	}

	for _, booking := range created {
		body := requestedRiderBody(rider.Name, store.Name, booking)
		s.send(ctx, booking.ID, []string{rider.Email}, "Your scooter booking request", body)
	}

	storeBody := requestedStoreBody(store.Name, rider.Name, created)
	s.send(ctx, created[0].ID, []string{store.Email}, "New booking request", storeBody)
}

// BookingConfirmed emails the rider that the store approved the booking.
func (s *Service) BookingConfirmed(ctx context.Context, booking bookings.BookingDTO) {
	rider, store, ok := s.lookupParties(ctx, booking.UserID, booking.StoreID)
	if !ok {
		return
	}
	body := confirmedRiderBody(rider.Name, store.Name, booking)
	s.send(ctx, booking.ID, []string{rider.Email}, "Your booking is confirmed", body)
}

func (s *Service) lookupParties(ctx context.Context, userID, storeID uuid.UUID) (*models.User, *models.Store, bool) {
	rider, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logg.Error(s.logg.WithUserID(ctx, userID.String()), "notification rider lookup failed", err)
		return nil, nil, false
	}
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		s.logg.Error(s.logg.WithStoreID(ctx, storeID.String()), "notification store lookup failed", err)
		return nil, nil, false
	}
	return rider, store, true
}

func (s *Service) send(ctx context.Context, bookingID uuid.UUID, to []string, subject, body string) {
	if err := s.mail.Send(ctx, to, subject, body); err != nil {
		s.logg.Error(s.logg.WithBookingID(ctx, bookingID.String()), "notification dispatch failed", err)
	}
}
