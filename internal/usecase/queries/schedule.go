package queries

import (
	"context"
	"log/slog"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/usecase/shared"
)

// scheduleSource reads the weekly schedule through the cache. Cache failures
// are logged and fall through to the database.
type scheduleSource struct {
	uow   shared.UnitOfWork
	cache shared.ScheduleCache
}

func (s scheduleSource) load(ctx context.Context) (schedule.Week, error) {
	week, ok, err := s.cache.Get(ctx)
	if err != nil {
		slog.Warn("schedule cache read failed", "error", err.Error())
	}
	if ok {
		return week, nil
	}

	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, r shared.Reads) error {
		var rerr error
		week, rerr = r.Schedule(ctx)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Fill(ctx, week); err != nil {
		slog.Warn("schedule cache write failed", "error", err.Error())
	}
	return week, nil
}
