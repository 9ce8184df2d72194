package schedule

import (
	"strings"
	"time"

	"table-booking/internal/pkg/errs"
)

// DaySchedule is the configured service period of one weekday. Times are
// 24h "HH:MM"; CloseTime earlier than OpenTime means service crosses midnight.
type DaySchedule struct {
	Day        string `json:"day"`
	IsOpen     bool   `json:"isOpen"`
	OpenTime   string `json:"openTime"`
	CloseTime  string `json:"closeTime"`
	HasBreak   bool   `json:"hasBreak"`
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd"`
}

// Week is the weekly repeating schedule, one entry per weekday name.
type Week []DaySchedule

// For returns the entry configured for the weekday, matched on its English name.
func (w Week) For(day time.Weekday) (DaySchedule, bool) {
	name := day.String()
	for _, d := range w {
		if strings.EqualFold(strings.TrimSpace(d.Day), name) {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// Validate rejects schedules the resolver could not make sense of. Times of
// closed days and break times of days without a break are not inspected.
func (w Week) Validate() error {
	if len(w) > 7 {
		return errs.Invalid("schedule has %d entries, at most 7 weekdays allowed", len(w))
	}

	seen := make(map[time.Weekday]bool, len(w))
	for _, d := range w {
		day, ok := parseWeekday(d.Day)
		if !ok {
			return errs.Invalid("unknown weekday %q", d.Day)
		}
		if seen[day] {
			return errs.Invalid("weekday %s configured twice", day)
		}
		seen[day] = true

		if !d.IsOpen {
			continue
		}
		if _, err := ParseClock(d.OpenTime); err != nil {
			return errs.Wrapf(err, "%s open time", day)
		}
		if _, err := ParseClock(d.CloseTime); err != nil {
			return errs.Wrapf(err, "%s close time", day)
		}
		if !d.HasBreak {
			continue
		}
		if _, err := ParseClock(d.BreakStart); err != nil {
			return errs.Wrapf(err, "%s break start", day)
		}
		if _, err := ParseClock(d.BreakEnd); err != nil {
			return errs.Wrapf(err, "%s break end", day)
		}
	}
	return nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return d, true
		}
	}
	return time.Sunday, false
}

// DefaultWeek is used until staff save a schedule: every day 11:30-22:00
// with a 14:00-17:30 break.
func DefaultWeek() Week {
	week := make(Week, 0, 7)
	for d := time.Monday; ; d = (d + 1) % 7 {
		week = append(week, DaySchedule{
			Day:        d.String(),
			IsOpen:     true,
			OpenTime:   "11:30",
			CloseTime:  "22:00",
			HasBreak:   true,
			BreakStart: "14:00",
			BreakEnd:   "17:30",
		})
		if d == time.Sunday {
			return week
		}
	}
}
