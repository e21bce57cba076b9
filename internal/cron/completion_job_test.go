package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/scootly/scootly-backend/pkg/logger"
)

type fakeCompleter struct {
	promoted int64
	released int64
	err      error
	calls    int
}

func (f *fakeCompleter) CompleteExpired(context.Context) (int64, int64, error) {
	f.calls++
	return f.promoted, f.released, f.err
}

func TestBookingCompletionJobRunsSweep(t *testing.T) {
	completer := &fakeCompleter{promoted: 3, released: 2}
	job, err := NewBookingCompletionJob(BookingCompletionJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		Bookings: completer,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() != "booking_completion" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run job: %v", err)
	}
	if completer.calls != 1 {
		t.Fatalf("expected one sweep call, got %d", completer.calls)
	}
}

func TestBookingCompletionJobPropagatesErrors(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("boom")}
	job, err := NewBookingCompletionJob(BookingCompletionJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		Bookings: completer,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected error from failing sweep")
	}
}

func TestNewBookingCompletionJobValidatesDeps(t *testing.T) {
	if _, err := NewBookingCompletionJob(BookingCompletionJobParams{Bookings: &fakeCompleter{}}); err == nil {
		t.Fatalf("expected error without logger")
	}
	if _, err := NewBookingCompletionJob(BookingCompletionJobParams{Logger: logger.New(logger.Options{ServiceName: "cron-test"})}); err == nil {
		t.Fatalf("expected error without booking service")
	}
}
