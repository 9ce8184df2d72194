package commands

import (
	"context"
	"log/slog"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/usecase/shared"
)

type SettingsCommands interface {
	UpdateSchedule(ctx context.Context, week schedule.Week) error
}

type settingsUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache shared.ScheduleCache
}

func NewSettingsUseCase(uow shared.UnitOfWork, cache shared.ScheduleCache) SettingsCommands {
	return &settingsUseCaseImpl{uow: uow, cache: cache}
}

// UpdateSchedule replaces the weekly schedule and writes the committed week
// to the cache, so a reader filling it with the old week cannot win. If the
// write fails the entry is dropped instead.
func (uc *settingsUseCaseImpl) UpdateSchedule(ctx context.Context, week schedule.Week) error {
	if err := week.Validate(); err != nil {
		return err
	}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Settings().SaveSchedule(ctx, week)
	})
	if err != nil {
		return err
	}
	if err := uc.cache.Set(ctx, week); err != nil {
		slog.Warn("schedule cache write failed", "error", err.Error())
		if err := uc.cache.Invalidate(ctx); err != nil {
			slog.Warn("schedule cache invalidation failed", "error", err.Error())
		}
	}
	return nil
}
