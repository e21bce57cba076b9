package bookings

import (
	"errors"
	"time"

	"github.com/scootly/scootly-backend/pkg/db/models"
)

// ErrNotEnoughUnits signals that fewer conflict-free units exist than the
// request asked for.
var ErrNotEnoughUnits = errors.New("not enough scooters available for these dates")

// CandidateUnit pairs a scooter with the bookings that currently block it.
type CandidateUnit struct {
	Scooter  models.Scooter
	Bookings []models.Booking
}

// AssignUnits picks quantity conflict-free units from the candidate pool.
// Candidates must already be ordered oldest-created first; the tie-break
// keeps repeated identical requests deterministic, preferring the same unit
// until it is exhausted. Returns ErrNotEnoughUnits when the pool cannot
// cover the request.
func AssignUnits(candidates []CandidateUnit, start, end time.Time, quantity int) ([]models.Scooter, error) {
	if quantity <= 0 {
		quantity = 1
	}

	selected := make([]models.Scooter, 0, quantity)
	for _, candidate := range candidates {
		if !IsRangeFree(candidate.Bookings, start, end) {
			continue
		}
		selected = append(selected, candidate.Scooter)
		if len(selected) == quantity {
			return selected, nil
		}
	}
	return nil, ErrNotEnoughUnits
}
