package readstore

import (
	"context"
	"encoding/json"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/infra"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/pkg/pgconv"
)

const selectSchedule = `SELECT booking_schedule FROM settings WHERE id = 1`

type SettingsReadStore struct {
	db db.DBTX
}

func NewSettingsReadStore(db db.DBTX) *SettingsReadStore {
	return &SettingsReadStore{db: db}
}

// Schedule falls back to schedule.DefaultWeek until a schedule has been saved.
func (r *SettingsReadStore) Schedule(ctx context.Context) (schedule.Week, error) {
	var payload []byte
	if err := r.db.QueryRow(ctx, selectSchedule).Scan(&payload); err != nil {
		if pgconv.IsNoRows(err) {
			return schedule.DefaultWeek(), nil
		}
		return nil, infra.WrapRepoErr("failed to read booking schedule", err)
	}

	var week schedule.Week
	if err := json.Unmarshal(payload, &week); err != nil {
		return nil, errs.Wrap(err, "decode booking schedule")
	}
	if week == nil {
		week = schedule.Week{}
	}
	return week, nil
}
