//go:build unit

package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/usecase/shared"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithin_RerunsAfterLosingCommitRace(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	closedMonday := builder.NewWeekBuilder().Closed(time.Monday).Build()
	closedTuesday := builder.NewWeekBuilder().Closed(time.Tuesday).Build()

	var (
		readOnce   sync.Once
		firstRead  = make(chan struct{})
		otherSaved = make(chan struct{})
		runs       int
	)

	done := make(chan error, 1)
	go func() {
		done <- store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			runs++
			if _, err := tx.Reads().Schedule(ctx); err != nil {
				return err
			}
			readOnce.Do(func() { close(firstRead) })
			<-otherSaved
			return tx.Settings().SaveSchedule(ctx, closedMonday)
		})
	}()

	<-firstRead
	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Settings().SaveSchedule(ctx, closedTuesday)
	}))
	close(otherSaved)
	require.NoError(t, <-done)

	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, store.Conflicts)
	assert.Equal(t, 2, store.Commits)

	var week schedule.Week
	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, r shared.Reads) error {
		var err error
		week, err = r.Schedule(ctx)
		return err
	}))
	assert.Equal(t, closedMonday, week)
}

func TestWithin_FailedClosureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Settings().SaveSchedule(ctx, builder.NewWeekBuilder().Closed(time.Friday).Build()); err != nil {
			return err
		}
		return context.DeadlineExceeded
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, store.Commits)
	var week schedule.Week
	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, r shared.Reads) error {
		var rerr error
		week, rerr = r.Schedule(ctx)
		return rerr
	}))
	assert.Equal(t, schedule.DefaultWeek(), week)
}
