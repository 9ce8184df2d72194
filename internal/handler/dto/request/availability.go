package request

import (
	"strings"

	"github.com/google/uuid"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/pkg/errs"
)

type SlotsQuery struct {
	Date     string `form:"date" binding:"required"`
	Duration int    `form:"duration" binding:"omitempty,min=0"`
}

type TablesQuery struct {
	Date           string `form:"date" binding:"required"`
	Time           string `form:"time" binding:"required"`
	Duration       int    `form:"duration" binding:"omitempty,min=0"`
	ExcludeGroupID string `form:"excludeGroupId"`
}

func (q *TablesQuery) ToDomain() (booking.AvailabilityRequest, error) {
	date, err := schedule.ParseDate(q.Date)
	if err != nil {
		return booking.AvailabilityRequest{}, err
	}
	req := booking.AvailabilityRequest{Date: date, Time: strings.TrimSpace(q.Time), Duration: q.Duration}
	if q.ExcludeGroupID != "" {
		id, err := uuid.Parse(q.ExcludeGroupID)
		if err != nil {
			return booking.AvailabilityRequest{}, errs.Invalid("excludeGroupId %q is not a valid id", q.ExcludeGroupID)
		}
		req.ExcludeGroupID = id
	}
	return req, nil
}

// BookingListQuery filters the staff dashboard list.
type BookingListQuery struct {
	Date  string `form:"date"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}
