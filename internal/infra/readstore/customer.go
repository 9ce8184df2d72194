package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"table-booking/internal/domain/customer"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/pkg/pgconv"
)

const customerColumns = `id, user_id, first_name, last_name, phone, email, status, created_at`

const selectCustomerByUserID = `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1`

// Phone is not unique; the oldest record wins.
const selectCustomerByPhone = `
SELECT ` + customerColumns + `
FROM customers
WHERE phone = $1
ORDER BY created_at, id
LIMIT 1`

const customerHasBookings = `SELECT EXISTS (SELECT 1 FROM bookings WHERE customer_id = $1)`

type CustomerReadStore struct {
	db db.DBTX
}

func NewCustomerReadStore(db db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{db: db}
}

func (r *CustomerReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*customer.Customer, error) {
	return r.findOne(ctx, "customer by user", selectCustomerByUserID, pgconv.UUIDToPgtype(userID))
}

func (r *CustomerReadStore) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.findOne(ctx, "customer by phone", selectCustomerByPhone, phone)
}

func (r *CustomerReadStore) HasBookings(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, customerHasBookings, pgconv.UUIDToPgtype(customerID)).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check customer bookings", err)
	}
	return exists, nil
}

func (r *CustomerReadStore) findOne(ctx context.Context, what, query string, arg any) (*customer.Customer, error) {
	var (
		id, userID         pgtype.UUID
		first, last, phone string
		email              pgtype.Text
		status             string
		createdAt          pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(&id, &userID, &first, &last, &phone, &email, &status, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr(what+" not found", err, infra.KindNotFound), errs.ErrCustomerNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find "+what, err)
	}

	contact := customer.Contact{
		FirstName: first,
		LastName:  last,
		Phone:     phone,
		Email:     pgconv.StringFromPgtype(email),
	}
	return customer.ReconstructCustomer(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDPtrFromPgtype(userID),
		contact,
		customer.Status(status),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
