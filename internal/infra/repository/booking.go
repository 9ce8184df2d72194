package repository

import (
	"context"

	"github.com/google/uuid"

	"table-booking/internal/domain/booking"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/pgconv"
)

const insertBookingRow = `
INSERT INTO bookings (group_id, customer_id, table_id, booking_date, booking_time, party_size, duration, slot)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const deleteBookingGroup = `DELETE FROM bookings WHERE group_id = $1`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// InsertGroup writes one row per table. An overlap with another booking on
// the same table comes back as infra.KindConflict.
func (r *BookingRepository) InsertGroup(ctx context.Context, g *booking.Group) error {
	for _, row := range g.Rows() {
		bookingTime, err := pgconv.ClockToPgtype(row.Time)
		if err != nil {
			return err
		}
		start, end := row.Interval()

		_, err = r.db.Exec(ctx, insertBookingRow,
			pgconv.UUIDToPgtype(row.GroupID),
			pgconv.UUIDToPgtype(row.CustomerID),
			pgconv.UUIDToPgtype(row.TableID),
			pgconv.DateToPgtype(row.Date),
			bookingTime,
			int32(row.PartySize),
			int32(row.Duration),
			pgconv.SlotRange(start, end),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert booking row", err)
		}
	}
	return nil
}

func (r *BookingRepository) DeleteGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	tag, err := r.db.Exec(ctx, deleteBookingGroup, pgconv.UUIDToPgtype(groupID))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete booking group", err)
	}
	return int(tag.RowsAffected()), nil
}
