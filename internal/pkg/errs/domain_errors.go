package errs

import "errors"

// Outcome kinds shared by the engine and the layers around it
var (
	// Malformed caller input: bad HH:MM, party size < 1, duration <= 0
	ErrInvalidInput = errors.New("invalid input")

	// No single table or bounded combination reaches the party size
	ErrNoTableFit = errors.New("no table combination fits the party")

	// Storage rejected the write because another booking took the tables first
	ErrSlotUnavailable = errors.New("slot no longer available")

	// Requested start time is not one the schedule offers for that date
	ErrSlotNotOffered = errors.New("requested time is not an offered slot")

	// Public bookings are limited to a rolling window of upcoming days
	ErrOutsideBookingWindow = errors.New("date is outside the booking window")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrCustomerNotFound = errors.New("customer not found")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
