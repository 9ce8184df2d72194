package booking

import (
	"time"

	"github.com/google/uuid"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/pkg/errs"
)

// DefaultDuration stands in for rows stored without a duration.
const DefaultDuration = 90

// Details are the attributes every row of a group shares.
type Details struct {
	Date      schedule.Date
	Time      string
	PartySize int
	Duration  int
}

func (d Details) Validate() error {
	if d.Date.IsZero() {
		return errs.Invalid("booking date is required")
	}
	if _, err := schedule.ParseClock(d.Time); err != nil {
		return err
	}
	if d.PartySize < 1 {
		return errs.Invalid("party size must be at least 1, got %d", d.PartySize)
	}
	if d.Duration <= 0 {
		return errs.Invalid("duration must be positive, got %d", d.Duration)
	}
	return nil
}

// StartMinute is the start time on the minute axis of Date. Details must be valid.
func (d Details) StartMinute() int {
	m, _ := schedule.ParseClock(d.Time)
	return m
}

// Group is one reservation. A party spread over several tables is stored as
// one row per table, all carrying the same Details.
type Group struct {
	id         uuid.UUID
	customerID uuid.UUID
	details    Details
	tableIDs   []uuid.UUID
}

func NewGroup(customerID uuid.UUID, details Details, tableIDs []uuid.UUID) (*Group, error) {
	return newGroup(uuid.New(), customerID, details, tableIDs)
}

func ReconstructGroup(id, customerID uuid.UUID, details Details, tableIDs []uuid.UUID) *Group {
	return &Group{
		id:         id,
		customerID: customerID,
		details:    details,
		tableIDs:   append([]uuid.UUID(nil), tableIDs...),
	}
}

func newGroup(id, customerID uuid.UUID, details Details, tableIDs []uuid.UUID) (*Group, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if len(tableIDs) == 0 {
		return nil, errs.Invalid("a booking needs at least one table")
	}
	seen := make(map[uuid.UUID]bool, len(tableIDs))
	for _, id := range tableIDs {
		if seen[id] {
			return nil, errs.Invalid("table %s assigned twice", id)
		}
		seen[id] = true
	}
	return ReconstructGroup(id, customerID, details, tableIDs), nil
}

// Replace builds the group that supersedes g after an edit. The group id and
// customer carry over; everything else is taken from the arguments.
func (g *Group) Replace(details Details, tableIDs []uuid.UUID) (*Group, error) {
	return newGroup(g.id, g.customerID, details, tableIDs)
}

// Rows expands the group into its persisted table-assignment rows.
func (g *Group) Rows() []Row {
	rows := make([]Row, len(g.tableIDs))
	for i, tid := range g.tableIDs {
		rows[i] = Row{
			GroupID:    g.id,
			CustomerID: g.customerID,
			TableID:    tid,
			Details:    g.details,
		}
	}
	return rows
}

func (g *Group) ID() uuid.UUID         { return g.id }
func (g *Group) CustomerID() uuid.UUID { return g.customerID }
func (g *Group) Details() Details      { return g.details }
func (g *Group) TableIDs() []uuid.UUID { return append([]uuid.UUID(nil), g.tableIDs...) }
func (g *Group) Date() schedule.Date   { return g.details.Date }
func (g *Group) Time() string          { return g.details.Time }
func (g *Group) PartySize() int        { return g.details.PartySize }
func (g *Group) DurationMinutes() int  { return g.details.Duration }

// Row is a single table assignment of a group.
type Row struct {
	GroupID    uuid.UUID
	CustomerID uuid.UUID
	TableID    uuid.UUID
	Details
}

// Interval is the occupied [start, end) span in absolute time, with the date
// read as UTC.
func (r Row) Interval() (start, end time.Time) {
	start = r.Date.At(r.StartMinute())
	return start, start.Add(time.Duration(r.Duration) * time.Minute)
}

// Occupancy returns the row as seen by the availability filter.
func (r Row) Occupancy() Occupancy {
	return Occupancy{GroupID: r.GroupID, TableID: r.TableID, Start: r.StartMinute(), Duration: r.Duration}
}

// ServiceDate returns the calendar date a booking picked for selected at clock
// is stored under. Start times earlier than the day's opening belong to the
// part of that service running past midnight and land on the next day.
func ServiceDate(selected schedule.Date, clock string, week schedule.Week) (schedule.Date, error) {
	m, err := schedule.ParseClock(clock)
	if err != nil {
		return schedule.Date{}, err
	}
	w, ok, err := schedule.Resolve(selected, week)
	if err != nil {
		return schedule.Date{}, err
	}
	if ok && m < w.Open {
		return selected.AddDays(1), nil
	}
	return selected, nil
}

// SelectedDate inverts ServiceDate: a booking stored on stored at clock that
// falls in the after-midnight part of the previous day's service is reported
// under that previous day.
func SelectedDate(stored schedule.Date, clock string, week schedule.Week) (schedule.Date, error) {
	m, err := schedule.ParseClock(clock)
	if err != nil {
		return schedule.Date{}, err
	}
	prev := stored.Previous()
	w, ok, err := schedule.Resolve(prev, week)
	if err != nil {
		return schedule.Date{}, err
	}
	if ok && w.Overnight() && m < w.Open && m+schedule.MinutesPerDay < w.Close {
		return prev, nil
	}
	return stored, nil
}

// WithinService reports whether clock is a start time inside the opening
// hours of selected, counting the part after midnight on overnight days.
func WithinService(selected schedule.Date, clock string, week schedule.Week) (bool, error) {
	m, err := schedule.ParseClock(clock)
	if err != nil {
		return false, err
	}
	w, ok, err := schedule.Resolve(selected, week)
	if err != nil || !ok {
		return false, err
	}
	if m < w.Open {
		m += schedule.MinutesPerDay
	}
	return m < w.Close, nil
}
