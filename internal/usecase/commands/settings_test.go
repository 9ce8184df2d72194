//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	written       schedule.Week
	setErr        error
	invalidations int
	invalidateErr error
}

func (c *countingCache) Get(context.Context) (schedule.Week, bool, error) { return nil, false, nil }
func (c *countingCache) Fill(context.Context, schedule.Week) error        { return nil }
func (c *countingCache) Set(_ context.Context, week schedule.Week) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.written = week
	return nil
}
func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return c.invalidateErr
}

func TestUpdateSchedule(t *testing.T) {
	ctx := context.Background()
	week := builder.NewWeekBuilder().Closed(time.Tuesday).Hours(time.Friday, "17:00", "01:00").NoBreak(time.Friday).Build()

	readBack := func(t *testing.T, store *memstore.Store) schedule.Week {
		t.Helper()
		var got schedule.Week
		err := store.WithinReadOnly(ctx, func(ctx context.Context, r shared.Reads) error {
			var rerr error
			got, rerr = r.Schedule(ctx)
			return rerr
		})
		require.NoError(t, err)
		return got
	}

	t.Run("success: schedule is stored and written through to the cache", func(t *testing.T) {
		store := memstore.New()
		cache := &countingCache{}
		uc := commands.NewSettingsUseCase(store, cache)

		require.NoError(t, uc.UpdateSchedule(ctx, week))

		assert.Equal(t, week, readBack(t, store))
		assert.Equal(t, week, cache.written)
		assert.Zero(t, cache.invalidations)
	})

	t.Run("success: failed cache write drops the entry", func(t *testing.T) {
		store := memstore.New()
		cache := &countingCache{setErr: errors.New("redis timeout")}
		uc := commands.NewSettingsUseCase(store, cache)

		require.NoError(t, uc.UpdateSchedule(ctx, week))
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("success: cache failure does not fail the write", func(t *testing.T) {
		store := memstore.New()
		cache := &countingCache{setErr: errors.New("redis down"), invalidateErr: errors.New("redis down")}
		uc := commands.NewSettingsUseCase(store, cache)

		require.NoError(t, uc.UpdateSchedule(ctx, week))
		assert.Equal(t, 1, store.Commits)
	})

	t.Run("error: invalid schedule is rejected before writing", func(t *testing.T) {
		store := memstore.New()
		cache := &countingCache{}
		uc := commands.NewSettingsUseCase(store, cache)
		bad := append(schedule.Week{}, week...)
		bad[0].OpenTime = "25:00"

		err := uc.UpdateSchedule(ctx, bad)

		assert.True(t, errs.Is(err, errs.ErrInvalidInput), "got %v", err)
		assert.Zero(t, store.Commits)
		assert.Nil(t, cache.written)
		assert.Equal(t, schedule.DefaultWeek(), readBack(t, store))
	})
}
