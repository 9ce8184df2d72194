package repository

import (
	"context"
	"encoding/json"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/errs"
)

const upsertSchedule = `
INSERT INTO settings (id, booking_schedule, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET booking_schedule = EXCLUDED.booking_schedule, updated_at = now()`

type SettingsRepository struct {
	db db.DBTX
}

func NewSettingsRepository(db db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) SaveSchedule(ctx context.Context, week schedule.Week) error {
	if week == nil {
		week = schedule.Week{}
	}
	payload, err := json.Marshal(week)
	if err != nil {
		return errs.Wrap(err, "marshal booking schedule")
	}
	if _, err := r.db.Exec(ctx, upsertSchedule, payload); err != nil {
		return infra.WrapRepoErr("failed to save booking schedule", err)
	}
	return nil
}
