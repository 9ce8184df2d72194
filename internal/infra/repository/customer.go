package repository

import (
	"context"

	"github.com/google/uuid"

	"table-booking/internal/domain/customer"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/pkg/pgconv"
)

const insertCustomer = `
INSERT INTO customers (id, user_id, first_name, last_name, phone, email, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const linkCustomerUser = `UPDATE customers SET user_id = $2 WHERE id = $1 AND user_id IS NULL`

const deleteCustomer = `DELETE FROM customers WHERE id = $1`

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(db db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	contact := c.Contact()
	_, err := r.db.Exec(ctx, insertCustomer,
		pgconv.UUIDToPgtype(c.ID()),
		pgconv.UUIDPtrToPgtype(c.UserID()),
		contact.FirstName,
		contact.LastName,
		contact.Phone,
		pgconv.StringToNullablePgtype(contact.Email),
		string(c.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create customer", err)
	}
	return nil
}

func (r *CustomerRepository) LinkUser(ctx context.Context, customerID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, linkCustomerUser, pgconv.UUIDToPgtype(customerID), pgconv.UUIDToPgtype(userID))
	if err != nil {
		return infra.WrapRepoErr("failed to link customer to user", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Mark(infra.WrapRepoErr("customer to link not found", nil, infra.KindNotFound), errs.ErrCustomerNotFound)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteCustomer, pgconv.UUIDToPgtype(customerID)); err != nil {
		return infra.WrapRepoErr("failed to delete customer", err)
	}
	return nil
}
