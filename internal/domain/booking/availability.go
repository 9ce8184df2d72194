package booking

import (
	"github.com/google/uuid"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/table"
	"table-booking/internal/pkg/errs"
)

// Occupancy is one stored table assignment as the availability filter sees
// it. Start is minutes from midnight of the row's own booking date.
type Occupancy struct {
	GroupID  uuid.UUID
	TableID  uuid.UUID
	Start    int
	Duration int
}

// End of the occupied interval. Rows without a duration count as DefaultDuration.
func (o Occupancy) End() int {
	d := o.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return o.Start + d
}

type AvailabilityRequest struct {
	Date     schedule.Date
	Time     string
	Duration int
	// ExcludeGroupID skips the rows of a group being edited. uuid.Nil excludes nothing.
	ExcludeGroupID uuid.UUID
}

// Overlaps is the half-open interval test for [aStart, aEnd) and [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// AvailableTables returns the tables with no occupancy overlapping the
// requested window. sameDay holds the rows booked on req.Date and previousDay
// the rows of the day before, which are moved back one day on the minute axis
// so late-night bookings still running into req.Date are compared correctly.
// The result keeps the order of tables.
func AvailableTables(req AvailabilityRequest, tables []table.Table, sameDay, previousDay []Occupancy) ([]table.Table, error) {
	start, err := schedule.ParseClock(req.Time)
	if err != nil {
		return nil, err
	}
	if req.Duration <= 0 {
		return nil, errs.Invalid("duration must be positive, got %d", req.Duration)
	}
	end := start + req.Duration

	busy := make(map[uuid.UUID]bool)
	mark := func(rows []Occupancy, shift int) {
		for _, o := range rows {
			if req.ExcludeGroupID != uuid.Nil && o.GroupID == req.ExcludeGroupID {
				continue
			}
			if Overlaps(start, end, o.Start+shift, o.End()+shift) {
				busy[o.TableID] = true
			}
		}
	}
	mark(sameDay, 0)
	mark(previousDay, -schedule.MinutesPerDay)

	free := make([]table.Table, 0, len(tables))
	for _, t := range tables {
		if !busy[t.ID] {
			free = append(free, t)
		}
	}
	return free, nil
}
