package notifications

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scootly/scootly-backend/internal/bookings"
	"github.com/scootly/scootly-backend/pkg/db/models"
	"github.com/scootly/scootly-backend/pkg/enums"
	"github.com/scootly/scootly-backend/pkg/logger"
)

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fakeUserFinder struct {
	user *models.User
	err  error
}

func (f fakeUserFinder) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	return f.user, f.err
}

type fakeStoreFinder struct {
	store *models.Store
	err   error
}

func (f fakeStoreFinder) FindByID(context.Context, uuid.UUID) (*models.Store, error) {
	return f.store, f.err
}

func testBooking() bookings.BookingDTO {
	return bookings.BookingDTO{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		StoreID:   uuid.New(),
		ScooterID: uuid.New(),
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Status:    enums.BookingStatusPending,
	}
}

func newTestNotifier(t *testing.T, mail *fakeMailer, userErr, storeErr error) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(
		mail,
		fakeUserFinder{user: &models.User{Email: "rider@example.com", Name: "Ada"}, err: userErr},
		fakeStoreFinder{store: &models.Store{Email: "store@example.com", Name: "Harbour Scooters"}, err: storeErr},
		logg,
	)
	require.NoError(t, err)
	return svc
}

func TestBookingsRequestedEmailsRiderAndStore(t *testing.T) {
	t.Parallel()

	mail := &fakeMailer{}
	svc := newTestNotifier(t, mail, nil, nil)

	created := []bookings.BookingDTO{testBooking(), testBooking()}
	svc.BookingsRequested(context.Background(), created)

	// One per booking for the rider, one summary for the store.
	require.Len(t, mail.sent, 3)
	assert.Equal(t, []string{"rider@example.com"}, mail.sent[0].To)
	assert.Equal(t, []string{"rider@example.com"}, mail.sent[1].To)
	assert.Equal(t, []string{"store@example.com"}, mail.sent[2].To)
	assert.True(t, strings.Contains(mail.sent[2].Body, "2 scooter(s)"))
	assert.True(t, strings.Contains(mail.sent[0].Body, "2026-09-10"))
}

func TestBookingConfirmedEmailsRider(t *testing.T) {
	t.Parallel()

	mail := &fakeMailer{}
	svc := newTestNotifier(t, mail, nil, nil)

	svc.BookingConfirmed(context.Background(), testBooking())

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"rider@example.com"}, mail.sent[0].To)
	assert.True(t, strings.Contains(mail.sent[0].Subject, "confirmed"))
}

func TestDispatchFailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestNotifier(t, mail, nil, nil)

	// Must not panic or surface the error.
	svc.BookingsRequested(context.Background(), []bookings.BookingDTO{testBooking()})
	svc.BookingConfirmed(context.Background(), testBooking())
	assert.Empty(t, mail.sent)
}

func TestLookupFailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	mail := &fakeMailer{}
	svc := newTestNotifier(t, mail, errors.New("user missing"), nil)

	svc.BookingsRequested(context.Background(), []bookings.BookingDTO{testBooking()})
	assert.Empty(t, mail.sent)
}
