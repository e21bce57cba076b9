package controllers

import (
	"net/http"
	"time"

	"github.com/scootly/scootly-backend/api/responses"
	"github.com/scootly/scootly-backend/api/validators"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
	"github.com/scootly/scootly-backend/pkg/logger"
)

const previewDateLayout = "2006-01-02"

type bookingPreviewRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// PublicBookingPreview validates a prospective rental window before the rider
// commits to a booking. Both bounds are rental days, so a same-day range
// counts as one day.
func PublicBookingPreview(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bookingPreviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, 10)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, _ := time.Parse(previewDateLayout, body.StartDate)
		end, _ := time.Parse(previewDateLayout, body.EndDate)
		if end.Before(start) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date"))
			return
		}

		days := int(end.Sub(start).Hours()/24) + 1
		responses.WriteSuccess(w, map[string]any{
			"start_date": start.Format(previewDateLayout),
			"end_date":   end.Format(previewDateLayout),
			"days":       days,
			"quantity":   quantity,
		})
	}
}
