package commands

import (
	"context"

	"github.com/google/uuid"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/customer"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/slot"
	"table-booking/internal/domain/table"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/pkg/patch"
	"table-booking/internal/usecase/queries"
	"table-booking/internal/usecase/shared"
)

type CreateBookingInput struct {
	Mode   slot.Mode
	UserID *uuid.UUID
	// Date is the day picked in the booking form. A Time before that day's
	// opening is stored on the following calendar date.
	Date      schedule.Date
	Time      string
	PartySize int
	// Duration in minutes; zero means the configured default.
	Duration  int
	FirstName string
	LastName  string
	Phone     string
	Email     string
	DialCode  string
	// TableIDs pins the assignment instead of running the allocator. Staff only.
	TableIDs []uuid.UUID
}

// UpdateBookingInput carries the fields staff changed. Nil keeps the stored value.
type UpdateBookingInput struct {
	Date      *schedule.Date
	Time      *string
	PartySize *int
	Duration  *int
	TableIDs  []uuid.UUID
}

type BookingResult struct {
	GroupID     uuid.UUID
	CustomerID  uuid.UUID
	BookingDate schedule.Date
	ServiceDate schedule.Date
	Time        string
	PartySize   int
	Duration    int
	Tables      []queries.TableView
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error)
	UpdateBooking(ctx context.Context, groupID uuid.UUID, in UpdateBookingInput) (*BookingResult, error)
	CancelBooking(ctx context.Context, groupID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	policy  shared.BookingPolicy
	clock   clock.Clock
	metrics shared.Metrics
}

func NewBookingUseCase(uow shared.UnitOfWork, policy shared.BookingPolicy, clk clock.Clock, m shared.Metrics) BookingCommands {
	if m == nil {
		m = shared.NopMetrics{}
	}
	return &bookingUseCaseImpl{uow: uow, policy: policy, clock: clk, metrics: m}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	res, err := uc.createBooking(ctx, in)
	if err != nil {
		uc.metrics.BookingRejected(rejectionReason(err))
		return nil, err
	}
	uc.metrics.BookingCreated(string(in.Mode))
	return res, nil
}

func (uc *bookingUseCaseImpl) createBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	if !in.Mode.IsValid() {
		return nil, errs.Invalid("unknown booking mode %q", in.Mode)
	}
	if in.Mode == slot.ModePublic && len(in.TableIDs) > 0 {
		return nil, errs.Invalid("tables can only be chosen by staff")
	}
	if in.Duration == 0 {
		in.Duration = uc.policy.DefaultDuration
	}
	if err := slot.ValidateDuration(in.Mode, in.Duration, uc.policy.DefaultDuration); err != nil {
		return nil, err
	}
	if in.PartySize < 1 {
		return nil, errs.Invalid("party size must be at least 1, got %d", in.PartySize)
	}
	clockTime, err := canonicalClock(in.Time)
	if err != nil {
		return nil, err
	}
	if in.Mode == slot.ModePublic && !uc.policy.InWindow(uc.clock.Now(), in.Date) {
		return nil, errs.Wrapf(errs.ErrOutsideBookingWindow, "date %s", in.Date)
	}

	dialCode := in.DialCode
	if dialCode == "" {
		dialCode = uc.policy.DialCode
	}
	contact, err := customer.NewContact(in.FirstName, in.LastName, in.Phone, in.Email, dialCode)
	if err != nil {
		return nil, err
	}

	var res *BookingResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		week, derr := tx.Reads().Schedule(ctx)
		if derr != nil {
			return derr
		}
		if derr = checkStart(in.Mode, in.Date, clockTime, in.Duration, week); derr != nil {
			return derr
		}
		stored, derr := booking.ServiceDate(in.Date, clockTime, week)
		if derr != nil {
			return derr
		}

		req := booking.AvailabilityRequest{Date: stored, Time: clockTime, Duration: in.Duration}
		chosen, derr := assignTables(ctx, tx.Reads(), req, in.PartySize, in.TableIDs)
		if derr != nil {
			return derr
		}

		cust, derr := resolveCustomer(ctx, tx, in.UserID, contact)
		if derr != nil {
			return derr
		}

		details := booking.Details{Date: stored, Time: clockTime, PartySize: in.PartySize, Duration: in.Duration}
		group, derr := booking.NewGroup(cust.ID(), details, table.IDs(chosen))
		if derr != nil {
			return derr
		}
		if derr = tx.Bookings().InsertGroup(ctx, group); derr != nil {
			return derr
		}
		res = newResult(group, in.Date, chosen)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *bookingUseCaseImpl) UpdateBooking(ctx context.Context, groupID uuid.UUID, in UpdateBookingInput) (*BookingResult, error) {
	var res *BookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().GroupByID(ctx, groupID)
		if derr != nil {
			return derr
		}
		week, derr := tx.Reads().Schedule(ctx)
		if derr != nil {
			return derr
		}

		old := snap.Group
		oldSelected, derr := booking.SelectedDate(old.Date(), old.Time(), week)
		if derr != nil {
			return derr
		}

		selected := patch.Coalesce(in.Date, oldSelected)
		duration := patch.Coalesce(in.Duration, old.DurationMinutes())
		partySize := patch.Coalesce(in.PartySize, old.PartySize())
		clockTime, derr := canonicalClock(patch.Coalesce(in.Time, old.Time()))
		if derr != nil {
			return derr
		}
		if partySize < 1 {
			return errs.Invalid("party size must be at least 1, got %d", partySize)
		}
		if derr = slot.ValidateDuration(slot.ModeStaff, duration, uc.policy.DefaultDuration); derr != nil {
			return derr
		}
		if derr = checkStart(slot.ModeStaff, selected, clockTime, duration, week); derr != nil {
			return derr
		}
		stored, derr := booking.ServiceDate(selected, clockTime, week)
		if derr != nil {
			return derr
		}

		req := booking.AvailabilityRequest{Date: stored, Time: clockTime, Duration: duration, ExcludeGroupID: groupID}
		chosen, derr := assignTables(ctx, tx.Reads(), req, partySize, in.TableIDs)
		if derr != nil {
			return derr
		}

		details := booking.Details{Date: stored, Time: clockTime, PartySize: partySize, Duration: duration}
		replacement, derr := old.Replace(details, table.IDs(chosen))
		if derr != nil {
			return derr
		}
		if _, derr = tx.Bookings().DeleteGroup(ctx, groupID); derr != nil {
			return derr
		}
		if derr = tx.Bookings().InsertGroup(ctx, replacement); derr != nil {
			return derr
		}
		res = newResult(replacement, selected, chosen)
		return nil
	})
	if err != nil {
		uc.metrics.BookingRejected(rejectionReason(err))
		return nil, err
	}
	return res, nil
}

// CancelBooking removes every row of the group. A walk-in customer left
// without bookings is removed as well.
func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, groupID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().GroupByID(ctx, groupID)
		if derr != nil {
			return derr
		}
		n, derr := tx.Bookings().DeleteGroup(ctx, groupID)
		if derr != nil {
			return derr
		}
		if n == 0 {
			return errs.Wrapf(errs.ErrBookingNotFound, "group %s", groupID)
		}
		if snap.CustomerUserID != nil {
			return nil
		}

		customerID := snap.Group.CustomerID()
		has, derr := tx.Reads().CustomerHasBookings(ctx, customerID)
		if derr != nil {
			return derr
		}
		if has {
			return nil
		}
		return tx.Customers().Delete(ctx, customerID)
	})
}

// checkStart holds guests to the offered slots; staff may start anywhere
// inside the opening hours.
func checkStart(mode slot.Mode, selected schedule.Date, clockTime string, duration int, week schedule.Week) error {
	if mode == slot.ModeStaff {
		ok, err := booking.WithinService(selected, clockTime, week)
		if err != nil {
			return err
		}
		if !ok {
			return errs.Wrapf(errs.ErrSlotNotOffered, "%s %s is outside opening hours", selected, clockTime)
		}
		return nil
	}

	buckets, err := slot.Generate(selected, week, duration)
	if err != nil {
		return err
	}
	if _, ok := buckets.Find(clockTime); !ok {
		return errs.Wrapf(errs.ErrSlotNotOffered, "%s %s for %d minutes", selected, clockTime, duration)
	}
	return nil
}

// assignTables filters the floor for req and either allocates or checks the
// pinned tables.
func assignTables(ctx context.Context, r shared.Reads, req booking.AvailabilityRequest, partySize int, pinned []uuid.UUID) ([]table.Table, error) {
	tables, sameDay, previousDay, err := shared.LoadFloor(ctx, r, req.Date)
	if err != nil {
		return nil, err
	}
	free, err := booking.AvailableTables(req, tables, sameDay, previousDay)
	if err != nil {
		return nil, err
	}

	if len(pinned) == 0 {
		alloc, err := table.Allocate(free, partySize)
		if err != nil {
			return nil, err
		}
		return alloc.Tables, nil
	}

	byID := make(map[uuid.UUID]table.Table, len(free))
	for _, t := range free {
		byID[t.ID] = t
	}
	chosen := make([]table.Table, 0, len(pinned))
	for _, id := range pinned {
		t, ok := byID[id]
		if !ok {
			return nil, errs.Wrapf(errs.ErrSlotUnavailable, "table %s is not free", id)
		}
		chosen = append(chosen, t)
	}
	if seats := table.TotalSeats(chosen); seats < partySize {
		return nil, errs.Wrapf(errs.ErrNoTableFit, "chosen tables seat %d, party of %d", seats, partySize)
	}
	return chosen, nil
}

// resolveCustomer finds the guest by account first, then by phone, and
// creates a new record when neither matches.
func resolveCustomer(ctx context.Context, tx shared.Tx, userID *uuid.UUID, contact customer.Contact) (*customer.Customer, error) {
	if userID != nil {
		c, err := tx.Reads().CustomerByUserID(ctx, *userID)
		if err == nil {
			return c, nil
		}
		if !errs.Is(err, errs.ErrCustomerNotFound) {
			return nil, err
		}
	}

	c, err := tx.Reads().CustomerByPhone(ctx, contact.Phone)
	switch {
	case err == nil:
		if userID == nil {
			return c, nil
		}
		if c.LinkUser(*userID) {
			if err := tx.Customers().LinkUser(ctx, c.ID(), *userID); err != nil {
				return nil, err
			}
			return c, nil
		}
		// Phone belongs to another account.
	case !errs.Is(err, errs.ErrCustomerNotFound):
		return nil, err
	}

	c = customer.NewCustomer(contact, userID)
	if err := tx.Customers().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func canonicalClock(s string) (string, error) {
	m, err := schedule.ParseClock(s)
	if err != nil {
		return "", err
	}
	return schedule.FormatClock(m), nil
}

func newResult(g *booking.Group, selected schedule.Date, tables []table.Table) *BookingResult {
	return &BookingResult{
		GroupID:     g.ID(),
		CustomerID:  g.CustomerID(),
		BookingDate: g.Date(),
		ServiceDate: selected,
		Time:        g.Time(),
		PartySize:   g.PartySize(),
		Duration:    g.DurationMinutes(),
		Tables:      queries.TableViews(tables),
	}
}

func rejectionReason(err error) string {
	switch {
	case errs.Is(err, errs.ErrNoTableFit):
		return "no_table_fit"
	case errs.Is(err, errs.ErrSlotUnavailable):
		return "slot_unavailable"
	case errs.Is(err, errs.ErrSlotNotOffered):
		return "slot_not_offered"
	case errs.Is(err, errs.ErrOutsideBookingWindow):
		return "outside_window"
	case errs.Is(err, errs.ErrInvalidInput):
		return "invalid_input"
	case errs.Is(err, errs.ErrBookingNotFound):
		return "not_found"
	default:
		return "error"
	}
}
