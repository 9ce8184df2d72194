package shared

import (
	"context"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/table"
)

// LoadFloor reads the tables and the occupancy around date for the
// availability filter. Rows stored on the next date are folded into sameDay
// one day later on the minute axis, so a request running past midnight sees
// the after-midnight bookings it would collide with.
func LoadFloor(ctx context.Context, r Reads, date schedule.Date) ([]table.Table, []booking.Occupancy, []booking.Occupancy, error) {
	tables, err := r.Tables(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	sameDay, err := r.Occupancy(ctx, date)
	if err != nil {
		return nil, nil, nil, err
	}
	previousDay, err := r.Occupancy(ctx, date.Previous())
	if err != nil {
		return nil, nil, nil, err
	}
	nextDay, err := r.Occupancy(ctx, date.AddDays(1))
	if err != nil {
		return nil, nil, nil, err
	}
	for _, o := range nextDay {
		o.Start += schedule.MinutesPerDay
		sameDay = append(sameDay, o)
	}
	return tables, sameDay, previousDay, nil
}
