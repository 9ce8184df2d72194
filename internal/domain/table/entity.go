package table

import (
	"github.com/google/uuid"

	"table-booking/internal/pkg/errs"
)

// Table is a physical dining table. The engine only ever reads it.
type Table struct {
	ID          uuid.UUID `json:"id"`
	TableNumber int       `json:"tableNumber"`
	Seats       int       `json:"seats"`
}

func (t Table) Validate() error {
	if t.Seats < 1 {
		return errs.Invalid("table %d must seat at least one guest", t.TableNumber)
	}
	return nil
}

// TotalSeats sums the capacity of tables.
func TotalSeats(tables []Table) int {
	n := 0
	for _, t := range tables {
		n += t.Seats
	}
	return n
}

func IDs(tables []Table) []uuid.UUID {
	ids := make([]uuid.UUID, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}
	return ids
}
