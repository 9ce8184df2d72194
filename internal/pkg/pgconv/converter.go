package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"table-booking/internal/domain/schedule"
)

const microsPerMinute = int64(time.Minute / time.Microsecond)

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func UUIDFromPgtype(pu pgtype.UUID) uuid.UUID {
	if !pu.Valid {
		return uuid.Nil
	}
	return uuid.UUID(pu.Bytes)
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func StringFromPgtype(pt pgtype.Text) string {
	if !pt.Valid {
		return ""
	}
	return pt.String
}

// StringToNullablePgtype stores the empty string as NULL.
func StringToNullablePgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func DateToPgtype(d schedule.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) schedule.Date {
	if !pd.Valid {
		return schedule.Date{}
	}
	return schedule.DateOf(pd.Time)
}

// ClockToPgtype converts an "HH:MM" value into a Postgres time.
func ClockToPgtype(clock string) (pgtype.Time, error) {
	m, err := schedule.ParseClock(clock)
	if err != nil {
		return pgtype.Time{}, err
	}
	return pgtype.Time{Microseconds: int64(m) * microsPerMinute, Valid: true}, nil
}

// MinuteFromPgtype returns minutes since midnight of a Postgres time,
// dropping seconds.
func MinuteFromPgtype(pt pgtype.Time) int {
	if !pt.Valid {
		return 0
	}
	return int(pt.Microseconds / microsPerMinute)
}

func ClockFromPgtype(pt pgtype.Time) string {
	return schedule.FormatClock(MinuteFromPgtype(pt))
}

// DurationFromPgtype maps a NULL duration to 0, which readers treat as the default length.
func DurationFromPgtype(pi pgtype.Int4) int {
	if !pi.Valid {
		return 0
	}
	return int(pi.Int32)
}

// SlotRange builds the half-open tsrange a booking occupies.
func SlotRange(start, end time.Time) pgtype.Range[pgtype.Timestamp] {
	return pgtype.Range[pgtype.Timestamp]{
		Lower:     pgtype.Timestamp{Time: start, Valid: true},
		Upper:     pgtype.Timestamp{Time: end, Valid: true},
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Exclusive,
		Valid:     true,
	}
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
