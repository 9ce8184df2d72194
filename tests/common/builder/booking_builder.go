//go:build unit || e2e

package builder

import (
	"time"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/slot"
	reqdto "table-booking/internal/handler/dto/request"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// ServiceDay is a Monday; every builder date defaults to it.
var ServiceDay = schedule.NewDate(2026, time.March, 2)

type BookingBuilder struct {
	GroupID    uuid.UUID
	CustomerID uuid.UUID
	UserID     *uuid.UUID
	Date       schedule.Date
	Time       string
	PartySize  int
	Duration   int
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	TableIDs   []uuid.UUID
	CreatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		GroupID:    uuid.New(),
		CustomerID: uuid.New(),
		Date:       ServiceDay,
		Time:       "18:00",
		PartySize:  2,
		Duration:   90,
		FirstName:  "Lan",
		LastName:   "Nguyen",
		Phone:      "0901234567",
		Email:      "lan@example.com",
		CreatedAt:  time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithDate(d schedule.Date) *BookingBuilder {
	b.Date = d
	return b
}

func (b *BookingBuilder) WithTime(clock string) *BookingBuilder {
	b.Time = clock
	return b
}

func (b *BookingBuilder) WithPartySize(n int) *BookingBuilder {
	b.PartySize = n
	return b
}

func (b *BookingBuilder) WithDuration(minutes int) *BookingBuilder {
	b.Duration = minutes
	return b
}

func (b *BookingBuilder) WithPhone(phone string) *BookingBuilder {
	b.Phone = phone
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = &id
	return b
}

func (b *BookingBuilder) WithTables(ids ...uuid.UUID) *BookingBuilder {
	b.TableIDs = ids
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		Date:      b.Date.String(),
		Time:      b.Time,
		PartySize: b.PartySize,
		Duration:  b.Duration,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Phone:     b.Phone,
		Email:     b.Email,
		TableIDs:  b.TableIDs,
	}
}

func (b *BookingBuilder) BuildInput(mode slot.Mode) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		Mode:      mode,
		UserID:    b.UserID,
		Date:      b.Date,
		Time:      b.Time,
		PartySize: b.PartySize,
		Duration:  b.Duration,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Phone:     b.Phone,
		Email:     b.Email,
		TableIDs:  b.TableIDs,
	}
}

func (b *BookingBuilder) BuildResult(tables ...queries.TableView) *commands.BookingResult {
	if len(tables) == 0 {
		tables = []queries.TableView{{ID: uuid.New(), TableNumber: 1, Seats: 2}}
	}
	return &commands.BookingResult{
		GroupID:     b.GroupID,
		CustomerID:  b.CustomerID,
		BookingDate: b.Date,
		ServiceDate: b.Date,
		Time:        b.Time,
		PartySize:   b.PartySize,
		Duration:    b.Duration,
		Tables:      tables,
	}
}

func (b *BookingBuilder) BuildGroupView() *queries.BookingGroupView {
	tableIDs := b.TableIDs
	if len(tableIDs) == 0 {
		tableIDs = []uuid.UUID{uuid.New()}
	}
	return &queries.BookingGroupView{
		GroupID:        b.GroupID,
		CustomerID:     b.CustomerID,
		CustomerUserID: b.UserID,
		CustomerName:   b.FirstName + " " + b.LastName,
		Phone:          "+84901234567",
		Email:          b.Email,
		BookingDate:    b.Date.String(),
		ServiceDate:    b.Date.String(),
		BookingTime:    b.Time,
		Duration:       b.Duration,
		PartySize:      b.PartySize,
		TableNumbers:   "1",
		TableIDs:       tableIDs,
		Status:         queries.StatusConfirmed,
		CreatedAt:      b.CreatedAt,
	}
}

// BuildRow is one stored table assignment of the group.
func (b *BookingBuilder) BuildRow(tableID uuid.UUID, tableNumber int) queries.BookingRowView {
	return queries.BookingRowView{
		GroupID:        b.GroupID,
		CustomerID:     b.CustomerID,
		CustomerUserID: b.UserID,
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		Phone:          "+84901234567",
		Email:          b.Email,
		TableID:        tableID,
		TableNumber:    tableNumber,
		Date:           b.Date,
		Time:           b.Time,
		PartySize:      b.PartySize,
		Duration:       b.Duration,
		CreatedAt:      b.CreatedAt,
	}
}
