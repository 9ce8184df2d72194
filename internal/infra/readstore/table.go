package readstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"table-booking/internal/domain/table"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/pgconv"
)

const selectAvailableTables = `
SELECT id, table_number, seats
FROM restaurant_tables
WHERE is_available
ORDER BY table_number`

type TableReadStore struct {
	db db.DBTX
}

func NewTableReadStore(db db.DBTX) *TableReadStore {
	return &TableReadStore{db: db}
}

// ListAvailable returns the tables in service, ordered by table number.
func (r *TableReadStore) ListAvailable(ctx context.Context) ([]table.Table, error) {
	rows, err := r.db.Query(ctx, selectAvailableTables)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	defer rows.Close()

	var out []table.Table
	for rows.Next() {
		var (
			id            pgtype.UUID
			number, seats int32
		)
		if err := rows.Scan(&id, &number, &seats); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table", err)
		}
		out = append(out, table.Table{ID: pgconv.UUIDFromPgtype(id), TableNumber: int(number), Seats: int(seats)})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	return out, nil
}
