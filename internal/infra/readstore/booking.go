package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/queries"
	"table-booking/internal/usecase/shared"
)

const selectOccupancyByDate = `
SELECT group_id, table_id, booking_time, duration
FROM bookings
WHERE booking_date = $1`

const selectGroupRows = `
SELECT b.group_id, b.customer_id, c.user_id, b.table_id, b.booking_date, b.booking_time, b.party_size, b.duration
FROM bookings b
JOIN customers c ON c.id = b.customer_id
WHERE b.group_id = $1
ORDER BY b.table_id`

const bookingViewColumns = `
SELECT b.group_id, b.customer_id, c.user_id, c.first_name, c.last_name, c.phone, c.email,
       b.table_id, t.table_number, b.booking_date, b.booking_time, b.party_size, b.duration, b.created_at
FROM bookings b
JOIN customers c ON c.id = b.customer_id
JOIN restaurant_tables t ON t.id = b.table_id`

const bookingViewOrder = `
ORDER BY b.booking_date DESC, b.booking_time ASC, b.group_id, t.table_number`

// The limit applies to groups, so whole groups are selected first.
const selectBookingViews = `
WITH picked AS (
    SELECT group_id
    FROM bookings
    WHERE ($1::date IS NULL OR booking_date = $1::date)
    GROUP BY group_id, booking_date, booking_time
    ORDER BY booking_date DESC, booking_time ASC, group_id
    LIMIT $2
)` + bookingViewColumns + `
WHERE b.group_id IN (SELECT group_id FROM picked)` + bookingViewOrder

const selectBookingViewsByGroup = bookingViewColumns + `
WHERE b.group_id = $1` + bookingViewOrder

const selectBookingViewsByUser = bookingViewColumns + `
WHERE c.user_id = $1` + bookingViewOrder

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) OccupancyByDate(ctx context.Context, date schedule.Date) ([]booking.Occupancy, error) {
	rows, err := r.db.Query(ctx, selectOccupancyByDate, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read occupancy", err)
	}
	defer rows.Close()

	var out []booking.Occupancy
	for rows.Next() {
		var (
			groupID, tableID pgtype.UUID
			start            pgtype.Time
			duration         pgtype.Int4
		)
		if err := rows.Scan(&groupID, &tableID, &start, &duration); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupancy", err)
		}
		out = append(out, booking.Occupancy{
			GroupID:  pgconv.UUIDFromPgtype(groupID),
			TableID:  pgconv.UUIDFromPgtype(tableID),
			Start:    pgconv.MinuteFromPgtype(start),
			Duration: pgconv.DurationFromPgtype(duration),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupancy", err)
	}
	return out, nil
}

// GroupByID rebuilds the group from its rows. Rows stored without a duration
// come back with the default length.
func (r *BookingReadStore) GroupByID(ctx context.Context, groupID uuid.UUID) (*shared.GroupSnapshot, error) {
	rows, err := r.db.Query(ctx, selectGroupRows, pgconv.UUIDToPgtype(groupID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read booking group", err)
	}
	defer rows.Close()

	var (
		snap     *shared.GroupSnapshot
		details  booking.Details
		customer uuid.UUID
		tableIDs []uuid.UUID
	)
	for rows.Next() {
		var (
			gid, cid, uid, tid pgtype.UUID
			date               pgtype.Date
			start              pgtype.Time
			party              int32
			duration           pgtype.Int4
		)
		if err := rows.Scan(&gid, &cid, &uid, &tid, &date, &start, &party, &duration); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking group", err)
		}
		if snap == nil {
			snap = &shared.GroupSnapshot{CustomerUserID: pgconv.UUIDPtrFromPgtype(uid)}
			customer = pgconv.UUIDFromPgtype(cid)
			details = booking.Details{
				Date:      pgconv.DateFromPgtype(date),
				Time:      pgconv.ClockFromPgtype(start),
				PartySize: int(party),
				Duration:  pgconv.DurationFromPgtype(duration),
			}
			if details.Duration == 0 {
				details.Duration = booking.DefaultDuration
			}
		}
		tableIDs = append(tableIDs, pgconv.UUIDFromPgtype(tid))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking group", err)
	}
	if snap == nil {
		return nil, errs.Mark(infra.WrapRepoErr("booking group not found", nil, infra.KindNotFound), errs.ErrBookingNotFound)
	}

	snap.Group = booking.ReconstructGroup(groupID, customer, details, tableIDs)
	return snap, nil
}

// BookingViewReadStore serves the dashboard and "my bookings" lists.
type BookingViewReadStore struct {
	db db.DBTX
}

func NewBookingViewReadStore(db db.DBTX) *BookingViewReadStore {
	return &BookingViewReadStore{db: db}
}

func (r *BookingViewReadStore) ListRows(ctx context.Context, filter queries.BookingFilter) ([]queries.BookingRowView, error) {
	date := pgtype.Date{}
	if filter.Date != nil {
		date = pgconv.DateToPgtype(*filter.Date)
	}
	return r.list(ctx, "failed to list bookings", selectBookingViews, date, int32(filter.Limit))
}

func (r *BookingViewReadStore) RowsByGroup(ctx context.Context, groupID uuid.UUID) ([]queries.BookingRowView, error) {
	return r.list(ctx, "failed to read booking", selectBookingViewsByGroup, pgconv.UUIDToPgtype(groupID))
}

func (r *BookingViewReadStore) RowsByUser(ctx context.Context, userID uuid.UUID) ([]queries.BookingRowView, error) {
	return r.list(ctx, "failed to list user bookings", selectBookingViewsByUser, pgconv.UUIDToPgtype(userID))
}

func (r *BookingViewReadStore) list(ctx context.Context, msg, query string, args ...any) ([]queries.BookingRowView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, scanBookingRowView)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}

func scanBookingRowView(row pgx.CollectableRow) (queries.BookingRowView, error) {
	var (
		groupID, customerID, userID, tableID pgtype.UUID
		first, last, phone                   string
		email                                pgtype.Text
		number, party                        int32
		date                                 pgtype.Date
		start                                pgtype.Time
		duration                             pgtype.Int4
		createdAt                            pgtype.Timestamptz
	)
	err := row.Scan(&groupID, &customerID, &userID, &first, &last, &phone, &email,
		&tableID, &number, &date, &start, &party, &duration, &createdAt)
	if err != nil {
		return queries.BookingRowView{}, err
	}
	return queries.BookingRowView{
		GroupID:        pgconv.UUIDFromPgtype(groupID),
		CustomerID:     pgconv.UUIDFromPgtype(customerID),
		CustomerUserID: pgconv.UUIDPtrFromPgtype(userID),
		FirstName:      first,
		LastName:       last,
		Phone:          phone,
		Email:          pgconv.StringFromPgtype(email),
		TableID:        pgconv.UUIDFromPgtype(tableID),
		TableNumber:    int(number),
		Date:           pgconv.DateFromPgtype(date),
		Time:           pgconv.ClockFromPgtype(start),
		PartySize:      int(party),
		Duration:       pgconv.DurationFromPgtype(duration),
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
	}, nil
}
