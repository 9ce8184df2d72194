package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the guest record a booking belongs to. Walk-ins booked by staff
// have no linked user account.
type Customer struct {
	id        uuid.UUID
	userID    *uuid.UUID
	contact   Contact
	status    Status
	createdAt time.Time
}

func NewCustomer(contact Contact, userID *uuid.UUID) *Customer {
	return &Customer{
		id:      uuid.New(),
		userID:  userID,
		contact: contact,
		status:  StatusRegular,
	}
}

func ReconstructCustomer(id uuid.UUID, userID *uuid.UUID, contact Contact, status Status, createdAt time.Time) *Customer {
	return &Customer{
		id:        id,
		userID:    userID,
		contact:   contact,
		status:    status,
		createdAt: createdAt,
	}
}

// LinkUser attaches an account to a customer that was created without one.
// It reports whether anything changed.
func (c *Customer) LinkUser(userID uuid.UUID) bool {
	if c.userID != nil {
		return false
	}
	c.userID = &userID
	return true
}

// IsWalkIn reports whether the customer has no linked user account.
func (c *Customer) IsWalkIn() bool {
	return c.userID == nil
}

func (c *Customer) ID() uuid.UUID        { return c.id }
func (c *Customer) UserID() *uuid.UUID   { return c.userID }
func (c *Customer) Contact() Contact     { return c.contact }
func (c *Customer) Status() Status       { return c.status }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
