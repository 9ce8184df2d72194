package queries

import (
	"time"

	"github.com/google/uuid"

	"table-booking/internal/domain/schedule"
)

// StatusConfirmed is the only state a stored booking can be in; cancelled
// bookings are deleted.
const StatusConfirmed = "confirmed"

type TableView struct {
	ID          uuid.UUID `json:"id"`
	TableNumber int       `json:"table_number"`
	Seats       int       `json:"seats"`
}

// SlotsView lists the start times of one day. Times are wall-clock "HH:MM".
type SlotsView struct {
	Date       string   `json:"date"`
	Duration   int      `json:"duration"`
	FirstHalf  []string `json:"first_half"`
	SecondHalf []string `json:"second_half"`
	// Durations are the lengths a guest may choose from.
	Durations []int `json:"durations"`
}

// BookingRowView is one stored table assignment joined with its customer and table.
type BookingRowView struct {
	GroupID        uuid.UUID
	CustomerID     uuid.UUID
	CustomerUserID *uuid.UUID
	FirstName      string
	LastName       string
	Phone          string
	Email          string
	TableID        uuid.UUID
	TableNumber    int
	Date           schedule.Date
	Time           string
	PartySize      int
	Duration       int
	CreatedAt      time.Time
}

// BookingGroupView is one reservation as shown on the dashboard. BookingDate
// is the stored calendar date, ServiceDate the day whose service the booking
// belongs to; they differ for bookings after midnight.
type BookingGroupView struct {
	GroupID        uuid.UUID   `json:"group_id"`
	CustomerID     uuid.UUID   `json:"customer_id"`
	CustomerUserID *uuid.UUID  `json:"customer_user_id,omitempty"`
	CustomerName   string      `json:"customer_name"`
	Phone          string      `json:"phone"`
	Email          string      `json:"email,omitempty"`
	BookingDate    string      `json:"booking_date"`
	ServiceDate    string      `json:"service_date"`
	BookingTime    string      `json:"booking_time"`
	Duration       int         `json:"duration"`
	PartySize      int         `json:"party_size"`
	TableNumbers   string      `json:"table_numbers"`
	TableIDs       []uuid.UUID `json:"table_ids"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
}

type BookingFilter struct {
	// Date restricts the list to one stored booking date when set.
	Date  *schedule.Date
	Limit int
}
