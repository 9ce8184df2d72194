package request

import "table-booking/internal/domain/schedule"

type UpdateScheduleRequest struct {
	BookingSchedule schedule.Week `json:"booking_schedule" binding:"required"`
}
