//go:build unit || e2e

// Package memstore is an in-memory stand-in for the Postgres unit of work.
// Write transactions run on a private copy of the state outside the lock and
// commit only if no other write committed since the copy was taken. Otherwise
// the closure runs again on fresh state, the way a serialization failure is
// retried against Postgres.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/customer"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/table"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/queries"
	"table-booking/internal/usecase/shared"
)

type customerRecord struct {
	id        uuid.UUID
	userID    *uuid.UUID
	contact   customer.Contact
	createdAt time.Time
}

type storedRow struct {
	booking.Row
	createdAt time.Time
}

type state struct {
	week      schedule.Week
	tables    []table.Table
	rows      []storedRow
	customers map[uuid.UUID]customerRecord
}

func (s state) clone() state {
	c := state{
		tables:    append([]table.Table(nil), s.tables...),
		rows:      append([]storedRow(nil), s.rows...),
		customers: make(map[uuid.UUID]customerRecord, len(s.customers)),
	}
	if s.week != nil {
		c.week = append(schedule.Week{}, s.week...)
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	return c
}

type Store struct {
	mu      sync.Mutex
	cur     state
	version int
	now     func() time.Time
	// Commits counts successful write transactions.
	Commits int
	// Conflicts counts closures rerun after losing a commit race.
	Conflicts int
}

var (
	_ shared.UnitOfWork        = (*Store)(nil)
	_ queries.BookingViewStore = (*Store)(nil)
)

func New(tables ...table.Table) *Store {
	return &Store{
		cur: state{tables: tables, customers: map[uuid.UUID]customerRecord{}},
		now: time.Now,
	}
}

// Tables returns n tables numbered from 1 with the given seat counts.
func Tables(seats ...int) []table.Table {
	out := make([]table.Table, len(seats))
	for i, s := range seats {
		out[i] = table.Table{ID: uuid.New(), TableNumber: i + 1, Seats: s}
	}
	return out
}

// SetSchedule stores week as if staff had saved it.
func (s *Store) SetSchedule(week schedule.Week) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.week = week
	s.version++
}

// Rows returns a copy of every stored table assignment.
func (s *Store) Rows() []booking.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]booking.Row, len(s.cur.rows))
	for i, r := range s.cur.rows {
		out[i] = r.Row
	}
	return out
}

func (s *Store) CustomerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cur.customers)
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mu.Lock()
		work := s.cur.clone()
		seen := s.version
		s.mu.Unlock()

		if err := fn(ctx, &memTx{st: &work, now: s.now}); err != nil {
			return err
		}

		s.mu.Lock()
		if s.version != seen {
			s.Conflicts++
			s.mu.Unlock()
			continue
		}
		s.cur = work
		s.version++
		s.Commits++
		s.mu.Unlock()
		return nil
	}
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, r shared.Reads) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.cur.clone()
	return fn(ctx, &memReads{st: &snapshot})
}

func (s *Store) ListRows(_ context.Context, filter queries.BookingFilter) ([]queries.BookingRowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := s.views(func(r storedRow, _ customerRecord) bool {
		return filter.Date == nil || r.Date == *filter.Date
	})

	// keep only the first filter.Limit groups
	if filter.Limit > 0 {
		seen := map[uuid.UUID]bool{}
		out := views[:0]
		for _, v := range views {
			if !seen[v.GroupID] {
				if len(seen) == filter.Limit {
					continue
				}
				seen[v.GroupID] = true
			}
			out = append(out, v)
		}
		views = out
	}
	return views, nil
}

func (s *Store) RowsByGroup(_ context.Context, groupID uuid.UUID) ([]queries.BookingRowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views(func(r storedRow, _ customerRecord) bool { return r.GroupID == groupID }), nil
}

func (s *Store) RowsByUser(_ context.Context, userID uuid.UUID) ([]queries.BookingRowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views(func(_ storedRow, c customerRecord) bool {
		return c.userID != nil && *c.userID == userID
	}), nil
}

// views joins the matching rows with customers and tables in the order the
// Postgres view store uses.
func (s *Store) views(match func(storedRow, customerRecord) bool) []queries.BookingRowView {
	numbers := make(map[uuid.UUID]int, len(s.cur.tables))
	for _, t := range s.cur.tables {
		numbers[t.ID] = t.TableNumber
	}

	out := []queries.BookingRowView{}
	for _, r := range s.cur.rows {
		c := s.cur.customers[r.CustomerID]
		if !match(r, c) {
			continue
		}
		out = append(out, queries.BookingRowView{
			GroupID:        r.GroupID,
			CustomerID:     r.CustomerID,
			CustomerUserID: c.userID,
			FirstName:      c.contact.FirstName,
			LastName:       c.contact.LastName,
			Phone:          c.contact.Phone,
			Email:          c.contact.Email,
			TableID:        r.TableID,
			TableNumber:    numbers[r.TableID],
			Date:           r.Date,
			Time:           r.Time,
			PartySize:      r.PartySize,
			Duration:       r.Duration,
			CreatedAt:      r.createdAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date.After(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if a.GroupID != b.GroupID {
			return a.GroupID.String() < b.GroupID.String()
		}
		return a.TableNumber < b.TableNumber
	})
	return out
}

type memTx struct {
	st  *state
	now func() time.Time
}

func (t *memTx) Bookings() shared.BookingRepository   { return &memBookings{st: t.st, now: t.now} }
func (t *memTx) Customers() shared.CustomerRepository { return &memCustomers{st: t.st, now: t.now} }
func (t *memTx) Settings() shared.SettingsRepository  { return &memSettings{st: t.st} }
func (t *memTx) Reads() shared.Reads                  { return &memReads{st: t.st} }

type memBookings struct {
	st  *state
	now func() time.Time
}

// InsertGroup rejects rows that overlap a stored row on the same table, the
// way the exclusion constraint does.
func (b *memBookings) InsertGroup(_ context.Context, g *booking.Group) error {
	for _, r := range g.Rows() {
		start, end := r.Interval()
		for _, o := range b.st.rows {
			if o.TableID != r.TableID {
				continue
			}
			os, oe := o.Interval()
			if start.Before(oe) && end.After(os) {
				return errs.Wrapf(errs.ErrSlotUnavailable, "table %s overlaps group %s", r.TableID, o.GroupID)
			}
		}
	}
	now := b.now()
	for _, r := range g.Rows() {
		b.st.rows = append(b.st.rows, storedRow{Row: r, createdAt: now})
	}
	return nil
}

func (b *memBookings) DeleteGroup(_ context.Context, groupID uuid.UUID) (int, error) {
	kept := b.st.rows[:0]
	n := 0
	for _, r := range b.st.rows {
		if r.GroupID == groupID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	b.st.rows = kept
	return n, nil
}

type memCustomers struct {
	st  *state
	now func() time.Time
}

func (c *memCustomers) Create(_ context.Context, cust *customer.Customer) error {
	c.st.customers[cust.ID()] = customerRecord{
		id:        cust.ID(),
		userID:    cust.UserID(),
		contact:   cust.Contact(),
		createdAt: c.now(),
	}
	return nil
}

func (c *memCustomers) LinkUser(_ context.Context, customerID, userID uuid.UUID) error {
	rec, ok := c.st.customers[customerID]
	if !ok {
		return errs.Wrapf(errs.ErrCustomerNotFound, "customer %s", customerID)
	}
	rec.userID = &userID
	c.st.customers[customerID] = rec
	return nil
}

func (c *memCustomers) Delete(_ context.Context, customerID uuid.UUID) error {
	delete(c.st.customers, customerID)
	return nil
}

type memSettings struct {
	st *state
}

func (s *memSettings) SaveSchedule(_ context.Context, week schedule.Week) error {
	s.st.week = append(schedule.Week{}, week...)
	return nil
}

type memReads struct {
	st *state
}

func (r *memReads) Schedule(context.Context) (schedule.Week, error) {
	if r.st.week == nil {
		return schedule.DefaultWeek(), nil
	}
	return append(schedule.Week{}, r.st.week...), nil
}

func (r *memReads) Tables(context.Context) ([]table.Table, error) {
	out := append([]table.Table(nil), r.st.tables...)
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	return out, nil
}

func (r *memReads) Occupancy(_ context.Context, date schedule.Date) ([]booking.Occupancy, error) {
	var out []booking.Occupancy
	for _, row := range r.st.rows {
		if row.Date == date {
			out = append(out, row.Occupancy())
		}
	}
	return out, nil
}

func (r *memReads) GroupByID(_ context.Context, id uuid.UUID) (*shared.GroupSnapshot, error) {
	var (
		found   *storedRow
		details booking.Details
		ids     []uuid.UUID
	)
	for i := range r.st.rows {
		row := r.st.rows[i]
		if row.GroupID != id {
			continue
		}
		if found == nil {
			found = &row
			details = row.Details
		}
		ids = append(ids, row.TableID)
	}
	if found == nil {
		return nil, errs.Wrapf(errs.ErrBookingNotFound, "group %s", id)
	}
	return &shared.GroupSnapshot{
		Group:          booking.ReconstructGroup(id, found.CustomerID, details, ids),
		CustomerUserID: r.st.customers[found.CustomerID].userID,
	}, nil
}

func (r *memReads) CustomerByUserID(_ context.Context, userID uuid.UUID) (*customer.Customer, error) {
	return r.first(func(c customerRecord) bool { return c.userID != nil && *c.userID == userID })
}

func (r *memReads) CustomerByPhone(_ context.Context, phone string) (*customer.Customer, error) {
	return r.first(func(c customerRecord) bool { return c.contact.Phone == phone })
}

func (r *memReads) CustomerHasBookings(_ context.Context, customerID uuid.UUID) (bool, error) {
	for _, row := range r.st.rows {
		if row.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

// first returns the oldest matching customer.
func (r *memReads) first(match func(customerRecord) bool) (*customer.Customer, error) {
	var best *customerRecord
	for _, c := range r.st.customers {
		if !match(c) {
			continue
		}
		if best == nil || c.createdAt.Before(best.createdAt) {
			c := c
			best = &c
		}
	}
	if best == nil {
		return nil, errs.ErrCustomerNotFound
	}
	return customer.ReconstructCustomer(best.id, best.userID, best.contact, customer.StatusRegular, best.createdAt), nil
}
