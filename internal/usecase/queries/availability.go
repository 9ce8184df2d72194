package queries

import (
	"context"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/slot"
	"table-booking/internal/domain/table"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

type AvailabilityQueries interface {
	// Slots lists the start times offered on date for a stay of duration
	// minutes. Zero duration means the default length.
	Slots(ctx context.Context, date schedule.Date, duration int, mode slot.Mode) (*SlotsView, error)
	// AvailableTables lists the tables free for the request. req.Date is the
	// selected day; start times after midnight are looked up on the next day.
	AvailableTables(ctx context.Context, req booking.AvailabilityRequest) ([]TableView, error)
	WeeklySchedule(ctx context.Context) (schedule.Week, error)
}

type availabilityQueriesImpl struct {
	uow       shared.UnitOfWork
	schedules scheduleSource
	policy    shared.BookingPolicy
	clock     clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cache shared.ScheduleCache, policy shared.BookingPolicy, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:       uow,
		schedules: scheduleSource{uow: uow, cache: cache},
		policy:    policy,
		clock:     clk,
	}
}

func (q *availabilityQueriesImpl) Slots(ctx context.Context, date schedule.Date, duration int, mode slot.Mode) (*SlotsView, error) {
	if duration == 0 {
		duration = q.policy.DefaultDuration
	}
	if err := slot.ValidateDuration(mode, duration, q.policy.DefaultDuration); err != nil {
		return nil, err
	}
	if mode == slot.ModePublic && !q.policy.InWindow(q.clock.Now(), date) {
		return nil, errs.Wrapf(errs.ErrOutsideBookingWindow, "date %s", date)
	}

	week, err := q.schedules.load(ctx)
	if err != nil {
		return nil, err
	}
	buckets, err := slot.Generate(date, week, duration)
	if err != nil {
		return nil, err
	}

	view := &SlotsView{
		Date:       date.String(),
		Duration:   duration,
		FirstHalf:  clocks(buckets.FirstHalf),
		SecondHalf: clocks(buckets.SecondHalf),
	}
	if mode == slot.ModePublic {
		view.Durations = slot.PublicDurations(q.policy.DefaultDuration)
	}
	return view, nil
}

func (q *availabilityQueriesImpl) AvailableTables(ctx context.Context, req booking.AvailabilityRequest) ([]TableView, error) {
	if req.Duration == 0 {
		req.Duration = q.policy.DefaultDuration
	}

	week, err := q.schedules.load(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := booking.ServiceDate(req.Date, req.Time, week)
	if err != nil {
		return nil, err
	}
	req.Date = stored

	var free []table.Table
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, r shared.Reads) error {
		tables, sameDay, previousDay, rerr := shared.LoadFloor(ctx, r, stored)
		if rerr != nil {
			return rerr
		}
		free, rerr = booking.AvailableTables(req, tables, sameDay, previousDay)
		return rerr
	})
	if err != nil {
		return nil, err
	}
	return TableViews(free), nil
}

func (q *availabilityQueriesImpl) WeeklySchedule(ctx context.Context) (schedule.Week, error) {
	return q.schedules.load(ctx)
}

func TableViews(tables []table.Table) []TableView {
	out := make([]TableView, len(tables))
	for i, t := range tables {
		out[i] = TableView{ID: t.ID, TableNumber: t.TableNumber, Seats: t.Seats}
	}
	return out
}

func clocks(slots []slot.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Clock()
	}
	return out
}
