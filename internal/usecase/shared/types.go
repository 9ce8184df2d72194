package shared

import (
	"time"

	"github.com/google/uuid"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/schedule"
)

// GroupSnapshot is a stored reservation plus what the write side needs to
// know about its customer.
type GroupSnapshot struct {
	Group          *booking.Group
	CustomerUserID *uuid.UUID
}

// BookingPolicy holds the restaurant-wide booking rules.
type BookingPolicy struct {
	DefaultDuration int
	WindowDays      int
	Location        *time.Location
	DialCode        string
}

// Metrics is the business counter set recorded by the usecases.
type Metrics interface {
	BookingCreated(mode string)
	BookingRejected(reason string)
}

type NopMetrics struct{}

func (NopMetrics) BookingCreated(string)  {}
func (NopMetrics) BookingRejected(string) {}

// Today is the restaurant's calendar date at now.
func (p BookingPolicy) Today(now time.Time) schedule.Date {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return schedule.DateOf(now.In(loc))
}

// InWindow reports whether guests may book date: today and the following
// WindowDays-1 days.
func (p BookingPolicy) InWindow(now time.Time, date schedule.Date) bool {
	today := p.Today(now)
	return !date.Before(today) && date.Before(today.AddDays(p.WindowDays))
}
