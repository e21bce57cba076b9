package cron

import (
	"context"
	"fmt"

	"github.com/scootly/scootly-backend/pkg/logger"
)

type bookingCompleter interface {
	CompleteExpired(ctx context.Context) (promoted, released int64, err error)
}

// BookingCompletionJobParams configures the nightly booking sweep.
type BookingCompletionJobParams struct {
	Logger   *logger.Logger
	Bookings bookingCompleter
}

// NewBookingCompletionJob constructs the job that retires finished bookings.
// It marks CONFIRMED bookings whose end date has passed as COMPLETED and
// returns scooters with no remaining active bookings to the available pool.
func NewBookingCompletionJob(params BookingCompletionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("booking service required")
	}
	return &bookingCompletionJob{
		logg:     params.Logger,
		bookings: params.Bookings,
	}, nil
}

type bookingCompletionJob struct {
	logg     *logger.Logger
	bookings bookingCompleter
}

func (j *bookingCompletionJob) Name() string { return "booking_completion" }

func (j *bookingCompletionJob) Run(ctx context.Context) error {
	promoted, released, err := j.bookings.CompleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("complete expired bookings: %w", err)
	}
	ctx = j.logg.WithFields(ctx, map[string]any{
		"completed_bookings": promoted,
		"released_scooters":  released,
	})
	j.logg.Info(ctx, "booking completion sweep finished")
	return nil
}
