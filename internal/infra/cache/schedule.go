package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/pkg/errs"
)

const scheduleKey = "table-booking:schedule:v1"

// ScheduleCache keeps the weekly schedule in Redis as JSON.
type ScheduleCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewScheduleCache(rdb redis.Cmdable, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{rdb: rdb, ttl: ttl}
}

func (c *ScheduleCache) Get(ctx context.Context) (schedule.Week, bool, error) {
	val, err := c.rdb.Get(ctx, scheduleKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errs.Wrap(err, "read cached schedule")
	}

	var week schedule.Week
	if err := json.Unmarshal(val, &week); err != nil {
		// Drop the entry so the next read repopulates it.
		_ = c.rdb.Del(ctx, scheduleKey).Err()
		return nil, false, errs.Wrap(err, "decode cached schedule")
	}
	if week == nil {
		week = schedule.Week{}
	}
	return week, true, nil
}

func (c *ScheduleCache) Set(ctx context.Context, week schedule.Week) error {
	data, err := encode(week)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, scheduleKey, data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "write cached schedule")
	}
	return nil
}

// Fill stores week only when no entry exists.
func (c *ScheduleCache) Fill(ctx context.Context, week schedule.Week) error {
	data, err := encode(week)
	if err != nil {
		return err
	}
	if err := c.rdb.SetNX(ctx, scheduleKey, data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "fill cached schedule")
	}
	return nil
}

func encode(week schedule.Week) ([]byte, error) {
	if week == nil {
		week = schedule.Week{}
	}
	data, err := json.Marshal(week)
	if err != nil {
		return nil, errs.Wrap(err, "encode schedule")
	}
	return data, nil
}

func (c *ScheduleCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, scheduleKey).Err(); err != nil {
		return errs.Wrap(err, "invalidate cached schedule")
	}
	return nil
}

// Noop is used when no Redis address is configured; every read misses.
type Noop struct{}

func (Noop) Get(context.Context) (schedule.Week, bool, error) { return nil, false, nil }
func (Noop) Fill(context.Context, schedule.Week) error        { return nil }
func (Noop) Set(context.Context, schedule.Week) error         { return nil }
func (Noop) Invalidate(context.Context) error                 { return nil }
