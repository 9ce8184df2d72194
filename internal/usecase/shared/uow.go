package shared

import (
	"context"

	"github.com/google/uuid"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/customer"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/table"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations. The whole closure is
	// re-run when the store reports a retryable conflict.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, r Reads) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Customers() CustomerRepository
	Settings() SettingsRepository
	Reads() Reads
}

// Reads are the lookups the engine needs, bound to the surrounding transaction.
type Reads interface {
	// Schedule returns the stored weekly schedule, or schedule.DefaultWeek
	// when the restaurant has not configured one.
	Schedule(ctx context.Context) (schedule.Week, error)
	Tables(ctx context.Context) ([]table.Table, error)
	// Occupancy lists the table assignments stored under date.
	Occupancy(ctx context.Context, date schedule.Date) ([]booking.Occupancy, error)
	GroupByID(ctx context.Context, id uuid.UUID) (*GroupSnapshot, error)
	CustomerByUserID(ctx context.Context, userID uuid.UUID) (*customer.Customer, error)
	CustomerByPhone(ctx context.Context, phone string) (*customer.Customer, error)
	CustomerHasBookings(ctx context.Context, customerID uuid.UUID) (bool, error)
}

type BookingRepository interface {
	InsertGroup(ctx context.Context, g *booking.Group) error
	// DeleteGroup returns the number of rows removed.
	DeleteGroup(ctx context.Context, groupID uuid.UUID) (int, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *customer.Customer) error
	LinkUser(ctx context.Context, customerID, userID uuid.UUID) error
	Delete(ctx context.Context, customerID uuid.UUID) error
}

type SettingsRepository interface {
	SaveSchedule(ctx context.Context, week schedule.Week) error
}

// ScheduleCache holds the weekly schedule between writes. Readers populate
// it with Fill, which never replaces an entry; only the writer that committed
// a new week calls Set.
type ScheduleCache interface {
	Get(ctx context.Context) (schedule.Week, bool, error)
	Fill(ctx context.Context, week schedule.Week) error
	Set(ctx context.Context, week schedule.Week) error
	Invalidate(ctx context.Context) error
}
