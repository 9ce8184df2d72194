package queries

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// BookingViewStore returns joined booking rows ordered by booking date
// descending, then booking time, group and table number ascending.
type BookingViewStore interface {
	ListRows(ctx context.Context, filter BookingFilter) ([]BookingRowView, error)
	RowsByGroup(ctx context.Context, groupID uuid.UUID) ([]BookingRowView, error)
	RowsByUser(ctx context.Context, userID uuid.UUID) ([]BookingRowView, error)
}

type BookingQueries interface {
	ListGroups(ctx context.Context, filter BookingFilter) ([]*BookingGroupView, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*BookingGroupView, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*BookingGroupView, error)
}

type bookingQueriesImpl struct {
	store     BookingViewStore
	schedules scheduleSource
}

func NewBookingQueries(store BookingViewStore, uow shared.UnitOfWork, cache shared.ScheduleCache) BookingQueries {
	return &bookingQueriesImpl{
		store:     store,
		schedules: scheduleSource{uow: uow, cache: cache},
	}
}

func (q *bookingQueriesImpl) ListGroups(ctx context.Context, filter BookingFilter) ([]*BookingGroupView, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	rows, err := q.store.ListRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	groups, err := q.aggregate(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(groups) > filter.Limit {
		groups = groups[:filter.Limit]
	}
	return groups, nil
}

func (q *bookingQueriesImpl) GetGroup(ctx context.Context, groupID uuid.UUID) (*BookingGroupView, error) {
	rows, err := q.store.RowsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.Wrapf(errs.ErrBookingNotFound, "group %s", groupID)
	}
	groups, err := q.aggregate(ctx, rows)
	if err != nil {
		return nil, err
	}
	return groups[0], nil
}

func (q *bookingQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*BookingGroupView, error) {
	rows, err := q.store.RowsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return q.aggregate(ctx, rows)
}

func (q *bookingQueriesImpl) aggregate(ctx context.Context, rows []BookingRowView) ([]*BookingGroupView, error) {
	if len(rows) == 0 {
		return []*BookingGroupView{}, nil
	}
	week, err := q.schedules.load(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateGroups(rows, week), nil
}

// AggregateGroups folds table rows into one view per group, keeping the order
// in which groups first appear. Table numbers are listed ascending.
func AggregateGroups(rows []BookingRowView, week schedule.Week) []*BookingGroupView {
	var (
		order   []uuid.UUID
		byGroup = make(map[uuid.UUID]*BookingGroupView)
		numbers = make(map[uuid.UUID][]int)
	)

	for _, r := range rows {
		g, ok := byGroup[r.GroupID]
		if !ok {
			duration := r.Duration
			if duration <= 0 {
				duration = booking.DefaultDuration
			}
			serviceDate := r.Date
			if d, err := booking.SelectedDate(r.Date, r.Time, week); err == nil {
				serviceDate = d
			}
			g = &BookingGroupView{
				GroupID:        r.GroupID,
				CustomerID:     r.CustomerID,
				CustomerUserID: r.CustomerUserID,
				CustomerName:   strings.TrimSpace(r.FirstName + " " + r.LastName),
				Phone:          r.Phone,
				Email:          r.Email,
				BookingDate:    r.Date.String(),
				ServiceDate:    serviceDate.String(),
				BookingTime:    r.Time,
				Duration:       duration,
				PartySize:      r.PartySize,
				Status:         StatusConfirmed,
				CreatedAt:      r.CreatedAt,
			}
			if g.CustomerName == "" {
				g.CustomerName = "Unknown"
			}
			byGroup[r.GroupID] = g
			order = append(order, r.GroupID)
		}
		g.TableIDs = append(g.TableIDs, r.TableID)
		numbers[r.GroupID] = append(numbers[r.GroupID], r.TableNumber)
	}

	out := make([]*BookingGroupView, len(order))
	for i, id := range order {
		g := byGroup[id]
		nums := numbers[id]
		sort.Ints(nums)
		parts := make([]string, len(nums))
		for j, n := range nums {
			parts[j] = strconv.Itoa(n)
		}
		g.TableNumbers = strings.Join(parts, ", ")
		out[i] = g
	}
	return out
}
