package bookings

import (
	"time"

	"github.com/scootly/scootly-backend/pkg/db/models"
)

// Bookings use inclusive calendar-day ranges. The checkout day of one
// booking conflicts with the checkin day of the next.

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// IsRangeFree reports whether the requested range avoids every booking in
// the provided set. Callers pass only bookings that block availability
// (PENDING or CONFIRMED); terminal bookings never block.
func IsRangeFree(existing []models.Booking, start, end time.Time) bool {
	for _, b := range existing {
		if Overlaps(start, end, b.StartDate, b.EndDate) {
			return false
		}
	}
	return true
}

// DateOnly truncates a timestamp to midnight UTC so range comparisons work
// at day granularity regardless of the time-of-day the caller supplied.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
