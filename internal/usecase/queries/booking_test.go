//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/slot"
	"table-booking/internal/infra/cache"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/memstore"
	queriesmock "table-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAggregateGroups(t *testing.T) {
	week := schedule.DefaultWeek()

	t.Run("rows of one group fold into one view", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithPartySize(9)
		rows := []queries.BookingRowView{
			b.BuildRow(uuid.New(), 6),
			b.BuildRow(uuid.New(), 2),
		}

		views := queries.AggregateGroups(rows, week)

		require.Len(t, views, 1)
		v := views[0]
		assert.Equal(t, b.GroupID, v.GroupID)
		assert.Equal(t, "2, 6", v.TableNumbers)
		assert.Equal(t, []uuid.UUID{rows[0].TableID, rows[1].TableID}, v.TableIDs)
		assert.Equal(t, "Lan Nguyen", v.CustomerName)
		assert.Equal(t, queries.StatusConfirmed, v.Status)
		assert.Equal(t, "2026-03-02", v.BookingDate)
		assert.Equal(t, "2026-03-02", v.ServiceDate)
	})

	t.Run("groups keep first-seen order", func(t *testing.T) {
		first := builder.NewBookingBuilder()
		second := builder.NewBookingBuilder().WithTime("12:00")
		rows := []queries.BookingRowView{
			second.BuildRow(uuid.New(), 1),
			first.BuildRow(uuid.New(), 3),
			second.BuildRow(uuid.New(), 2),
		}

		views := queries.AggregateGroups(rows, week)

		require.Len(t, views, 2)
		assert.Equal(t, second.GroupID, views[0].GroupID)
		assert.Equal(t, "1, 2", views[0].TableNumbers)
		assert.Equal(t, first.GroupID, views[1].GroupID)
	})

	t.Run("legacy rows without duration or name", func(t *testing.T) {
		row := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Duration = 0
			b.FirstName = " "
			b.LastName = ""
		}).BuildRow(uuid.New(), 4)

		views := queries.AggregateGroups([]queries.BookingRowView{row}, week)

		require.Len(t, views, 1)
		assert.Equal(t, 90, views[0].Duration)
		assert.Equal(t, "Unknown", views[0].CustomerName)
	})

	t.Run("after-midnight row is reported under the previous service day", func(t *testing.T) {
		late := builder.NewWeekBuilder().Hours(time.Monday, "18:00", "02:00").NoBreak(time.Monday).Build()
		row := builder.NewBookingBuilder().WithDate(builder.ServiceDay.AddDays(1)).WithTime("00:30").BuildRow(uuid.New(), 1)

		views := queries.AggregateGroups([]queries.BookingRowView{row}, late)

		require.Len(t, views, 1)
		assert.Equal(t, "2026-03-03", views[0].BookingDate)
		assert.Equal(t, "2026-03-02", views[0].ServiceDate)
	})
}

func TestListGroups(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		filter        queries.BookingFilter
		expectedLimit int
	}{
		{name: "success: zero limit uses the default", filter: queries.BookingFilter{}, expectedLimit: 100},
		{name: "success: limit is capped", filter: queries.BookingFilter{Limit: 10000}, expectedLimit: 500},
		{name: "success: limit is passed through", filter: queries.BookingFilter{Limit: 7}, expectedLimit: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookingViewStore(ctrl)
			q := queries.NewBookingQueries(store, memstore.New(), cache.Noop{})

			store.EXPECT().ListRows(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, f queries.BookingFilter) ([]queries.BookingRowView, error) {
					assert.Equal(t, tc.expectedLimit, f.Limit)
					return nil, nil
				})

			views, err := q.ListGroups(ctx, tc.filter)
			require.NoError(t, err)
			assert.NotNil(t, views)
			assert.Empty(t, views)
		})
	}

	t.Run("success: result is cut to the limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingViewStore(ctrl)
		q := queries.NewBookingQueries(store, memstore.New(), cache.Noop{})

		rows := []queries.BookingRowView{
			builder.NewBookingBuilder().BuildRow(uuid.New(), 1),
			builder.NewBookingBuilder().BuildRow(uuid.New(), 2),
			builder.NewBookingBuilder().BuildRow(uuid.New(), 3),
		}
		store.EXPECT().ListRows(ctx, gomock.Any()).Return(rows, nil)

		views, err := q.ListGroups(ctx, queries.BookingFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("error: store failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingViewStore(ctrl)
		q := queries.NewBookingQueries(store, memstore.New(), cache.Noop{})
		boom := errors.New("connection reset")

		store.EXPECT().ListRows(ctx, gomock.Any()).Return(nil, boom)

		_, err := q.ListGroups(ctx, queries.BookingFilter{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestBookingQueries_Memstore(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(memstore.Tables(2, 4, 6)...)
	cmds := commands.NewBookingUseCase(store, policy, newClock(), nil)
	q := queries.NewBookingQueries(store, store, cache.Noop{})

	userID := uuid.New()
	mine, err := cmds.CreateBooking(ctx, builder.NewBookingBuilder().WithUserID(userID).WithPartySize(9).BuildInput(slot.ModePublic))
	require.NoError(t, err)
	other, err := cmds.CreateBooking(ctx, builder.NewBookingBuilder().WithDate(builder.ServiceDay.AddDays(1)).WithPhone("0988888888").BuildInput(slot.ModePublic))
	require.NoError(t, err)

	t.Run("success: dashboard lists newest dates first", func(t *testing.T) {
		views, err := q.ListGroups(ctx, queries.BookingFilter{})
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, other.GroupID, views[0].GroupID)
		assert.Equal(t, mine.GroupID, views[1].GroupID)
		assert.Equal(t, "2, 3", views[1].TableNumbers)
	})

	t.Run("success: date filter", func(t *testing.T) {
		day := builder.ServiceDay
		views, err := q.ListGroups(ctx, queries.BookingFilter{Date: &day})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, mine.GroupID, views[0].GroupID)
	})

	t.Run("success: guest sees only their own bookings", func(t *testing.T) {
		views, err := q.ListForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, mine.GroupID, views[0].GroupID)
		require.NotNil(t, views[0].CustomerUserID)
		assert.Equal(t, userID, *views[0].CustomerUserID)
	})

	t.Run("success: single group", func(t *testing.T) {
		view, err := q.GetGroup(ctx, other.GroupID)
		require.NoError(t, err)
		assert.Equal(t, "+84988888888", view.Phone)
		assert.Equal(t, 2, view.PartySize)
	})

	t.Run("error: unknown group", func(t *testing.T) {
		_, err := q.GetGroup(ctx, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrBookingNotFound), "got %v", err)
	})
}
