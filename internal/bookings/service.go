package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
	"github.com/scootly/scootly-backend/pkg/pagination"
)

type bookingRepository interface {
	LockCandidateUnits(tx *gorm.DB, storeID uuid.UUID, model string) ([]models.Scooter, error)
	ActiveBookingsForScooters(tx *gorm.DB, scooterIDs []uuid.UUID) ([]models.Booking, error)
	CreateWithTx(tx *gorm.DB, rows []*models.Booking) error
	SetScooterStatusWithTx(tx *gorm.DB, scooterIDs []uuid.UUID, status enums.ScooterStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params listParams) ([]models.Booking, *pagination.Cursor, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, params listParams) ([]models.Booking, *pagination.Cursor, error)
	ActiveRangesForScooterFrom(ctx context.Context, scooterID uuid.UUID, from time.Time) ([]models.Booking, error)
	TransitionStatusWithTx(tx *gorm.DB, bookingID uuid.UUID, from, to enums.BookingStatus) (bool, error)
	CountActiveForScooterWithTx(tx *gorm.DB, scooterID, excludeBookingID uuid.UUID) (int64, error)
	PromoteExpiredWithTx(tx *gorm.DB, today time.Time) (int64, error)
	ReleaseIdleScootersWithTx(tx *gorm.DB) (int64, error)
}

type scooterFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Scooter, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier receives booking events after the transaction commits.
// Implementations deliver best-effort and must never return errors that
// would affect the booking itself.
type Notifier interface {
	BookingsRequested(ctx context.Context, created []BookingDTO)
	BookingConfirmed(ctx context.Context, booking BookingDTO)
}

// Service exposes booking operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateBookingInput) ([]BookingDTO, error)
	ListForRider(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]BookingDTO, string, error)
	ListForStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) ([]BookingDTO, string, error)
	Confirm(ctx context.Context, storeID, bookingID uuid.UUID) (*BookingDTO, error)
	CancelByRider(ctx context.Context, userID, bookingID uuid.UUID) error
	CancelByStore(ctx context.Context, storeID, bookingID uuid.UUID) error
	UnavailableDates(ctx context.Context, scooterID uuid.UUID) ([]DateRangeDTO, error)
	CompleteExpired(ctx context.Context) (promoted, released int64, err error)
}

type service struct {
	repo     bookingRepository
	scooters scooterFinder
	tx       txRunner
	notifier Notifier
	now      func() time.Time
}

// NewService builds a booking service with the provided collaborators.
func NewService(repo bookingRepository, scooters scooterFinder, tx txRunner, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository is required")
	}
	if scooters == nil {
		return nil, fmt.Errorf("scooter finder is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	return &service{
		repo:     repo,
		scooters: scooters,
		tx:       tx,
		notifier: notifier,
		now:      time.Now,
	}, nil
}

// Create resolves conflict-free units for the requested model and writes one
// PENDING booking per unit. Assignment runs inside one transaction with the
// candidate rows locked, so concurrent requests for the same pool serialize
// instead of double-booking.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateBookingInput) ([]BookingDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.StoreID == uuid.Nil || input.ScooterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id and scooter id are required")
	}

	start := DateOnly(input.StartDate)
	end := DateOnly(input.EndDate)
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	scooter, err := s.scooters.FindByID(ctx, input.ScooterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scooter not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading scooter")
	}
	if scooter.StoreID != input.StoreID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scooter does not belong to the selected store")
	}

	var created []models.Booking
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		candidates, err := s.repo.LockCandidateUnits(tx, input.StoreID, scooter.Model)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading candidate units")
		}

		ids := make([]uuid.UUID, 0, len(candidates))
		for _, c := range candidates {
			ids = append(ids, c.ID)
		}
		active, err := s.repo.ActiveBookingsForScooters(tx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading active bookings")
		}

		byScooter := make(map[uuid.UUID][]models.Booking, len(candidates))
		for _, b := range active {
			byScooter[b.ScooterID] = append(byScooter[b.ScooterID], b)
		}
		units := make([]CandidateUnit, 0, len(candidates))
		for _, c := range candidates {
			units = append(units, CandidateUnit{Scooter: c, Bookings: byScooter[c.ID]})
		}

		selected, err := AssignUnits(units, start, end, quantity)
		if err != nil {
			if errors.Is(err, ErrNotEnoughUnits) {
				return pkgerrors.New(pkgerrors.CodeConflict, "not enough scooters available for these dates")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning units")
		}

		rows := make([]*models.Booking, 0, len(selected))
		selectedIDs := make([]uuid.UUID, 0, len(selected))
		for _, unit := range selected {
			rows = append(rows, &models.Booking{
				ID:        uuid.New(),
				UserID:    userID,
				StoreID:   input.StoreID,
				ScooterID: unit.ID,
				StartDate: start,
				EndDate:   end,
				Status:    enums.BookingStatusPending,
			})
			selectedIDs = append(selectedIDs, unit.ID)
		}
		if err := s.repo.CreateWithTx(tx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating bookings")
		}
		if err := s.repo.SetScooterStatusWithTx(tx, selectedIDs, enums.ScooterStatusRented); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking units rented")
		}

		created = make([]models.Booking, 0, len(rows))
		for _, row := range rows {
			created = append(created, *row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dtos := fromModels(created)
	s.notifier.BookingsRequested(ctx, dtos)
	return dtos, nil
}

// ListForRider returns the rider's bookings newest first, sweeping expired
// CONFIRMED bookings before reading so statuses are never stale.
func (s *service) ListForRider(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]BookingDTO, string, error) {
	if _, _, err := s.CompleteExpired(ctx); err != nil {
		return nil, "", err
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListByUser(ctx, userID, listParams{Limit: params.Limit, Cursor: cursor})
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bookings")
	}
	return fromModels(rows), encodeCursor(next), nil
}

// ListForStore returns the store's bookings newest first, sweeping expired
// CONFIRMED bookings before reading.
func (s *service) ListForStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) ([]BookingDTO, string, error) {
	if _, _, err := s.CompleteExpired(ctx); err != nil {
		return nil, "", err
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListByStore(ctx, storeID, listParams{Limit: params.Limit, Cursor: cursor})
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bookings")
	}
	return fromModels(rows), encodeCursor(next), nil
}

// Confirm moves a PENDING booking owned by the store to CONFIRMED.
func (s *service) Confirm(ctx context.Context, storeID, bookingID uuid.UUID) (*BookingDTO, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found or already processed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booking")
	}
	if booking.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found or already processed")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.TransitionStatusWithTx(tx, bookingID, enums.BookingStatusPending, enums.BookingStatusConfirmed)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirming booking")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found or already processed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = enums.BookingStatusConfirmed
	dto := FromModel(booking)
	s.notifier.BookingConfirmed(ctx, *dto)
	return dto, nil
}

// CancelByRider cancels any non-terminal booking owned by the rider. The
// unit reverts to AVAILABLE once it carries no other active booking.
func (s *service) CancelByRider(ctx context.Context, userID, bookingID uuid.UUID) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if booking.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "booking is already finished")
	}
	return s.cancel(ctx, booking)
}

// CancelByStore cancels a PENDING booking owned by the store. Stores may
// not cancel bookings they have already confirmed.
func (s *service) CancelByStore(ctx context.Context, storeID, bookingID uuid.UUID) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if booking.Status != enums.BookingStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending bookings can be cancelled")
	}
	return s.cancel(ctx, booking)
}

func (s *service) loadBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booking")
	}
	return booking, nil
}

func (s *service) cancel(ctx context.Context, booking *models.Booking) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.TransitionStatusWithTx(tx, booking.ID, booking.Status, enums.BookingStatusCancelled)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancelling booking")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "booking changed state, retry")
		}

		remaining, err := s.repo.CountActiveForScooterWithTx(tx, booking.ScooterID, booking.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting active bookings")
		}
		if remaining == 0 {
			if err := s.repo.SetScooterStatusWithTx(tx, []uuid.UUID{booking.ScooterID}, enums.ScooterStatusAvailable); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "releasing unit")
			}
		}
		return nil
	})
}

// UnavailableDates returns the blocked spans for a unit from today onward,
// soonest first.
func (s *service) UnavailableDates(ctx context.Context, scooterID uuid.UUID) ([]DateRangeDTO, error) {
	today := DateOnly(s.now())
	rows, err := s.repo.ActiveRangesForScooterFrom(ctx, scooterID, today)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booked ranges")
	}

	ranges := make([]DateRangeDTO, 0, len(rows))
	for _, b := range rows {
		ranges = append(ranges, DateRangeDTO{
			StartDate: b.StartDate.Format(dateLayout),
			EndDate:   b.EndDate.Format(dateLayout),
		})
	}
	return ranges, nil
}

// CompleteExpired promotes CONFIRMED bookings that ended before today to
// COMPLETED and releases idle units. Safe to call repeatedly, a second run
// after a sweep changes nothing. Shared by the booking list read path and
// the daily cron job.
func (s *service) CompleteExpired(ctx context.Context) (promoted, released int64, err error) {
	today := DateOnly(s.now())
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if promoted, err = s.repo.PromoteExpiredWithTx(tx, today); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promoting expired bookings")
		}
		if released, err = s.repo.ReleaseIdleScootersWithTx(tx); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "releasing idle units")
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return promoted, released, nil
}

func encodeCursor(cursor *pagination.Cursor) string {
	if cursor == nil {
		return ""
	}
	return pagination.EncodeCursor(*cursor)
}
