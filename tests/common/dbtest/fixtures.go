//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/table"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// the floor plan seeded by migrations/002_seed_tables.sql
var seedTables = []struct{ number, seats int }{
	{1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 6}, {6, 8},
}

// ListTables returns the seeded tables ordered by number.
func ListTables(t *testing.T, db DBLike) []table.Table {
	t.Helper()

	ctx := context.Background()
	out := make([]table.Table, 0, len(seedTables))
	for _, st := range seedTables {
		var id uuid.UUID
		err := db.QueryRow(ctx, "SELECT id FROM restaurant_tables WHERE table_number = $1", st.number).Scan(&id)
		require.NoError(t, err)
		out = append(out, table.Table{ID: id, TableNumber: st.number, Seats: st.seats})
	}
	return out
}

func SetSchedule(t *testing.T, db DBLike, week schedule.Week) {
	t.Helper()

	raw, err := json.Marshal(week)
	require.NoError(t, err)
	_, err = db.Exec(context.Background(), `
		INSERT INTO settings (id, booking_schedule) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET booking_schedule = EXCLUDED.booking_schedule, updated_at = now()`, raw)
	require.NoError(t, err)
}

func CountBookingRows(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings").Scan(&n)
	require.NoError(t, err)
	return n
}

func CountCustomers(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM customers").Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts the floor plan the tests book against
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	for _, st := range seedTables {
		_, err := pool.Exec(ctx, `
			INSERT INTO restaurant_tables (table_number, seats) VALUES ($1, $2)
			ON CONFLICT (table_number) DO UPDATE SET seats = EXCLUDED.seats, is_available = true`,
			st.number, st.seats)
		if err != nil {
			return err
		}
	}
	return nil
}

// clears bookings, customers and the stored schedule; tables are kept
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE bookings, customers, settings RESTART IDENTITY CASCADE;"); err != nil {
		return err
	}
	return SeedReferenceData(pool)
}
