//go:build unit || e2e

package builder

import (
	"time"

	"table-booking/internal/domain/schedule"
)

// WeekBuilder starts from the default week and edits single days.
type WeekBuilder struct {
	days map[time.Weekday]schedule.DaySchedule
}

func NewWeekBuilder() *WeekBuilder {
	b := &WeekBuilder{days: map[time.Weekday]schedule.DaySchedule{}}
	for _, d := range schedule.DefaultWeek() {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if wd.String() == d.Day {
				b.days[wd] = d
			}
		}
	}
	return b
}

func (b *WeekBuilder) Closed(day time.Weekday) *WeekBuilder {
	d := b.days[day]
	d.IsOpen = false
	b.days[day] = d
	return b
}

func (b *WeekBuilder) Hours(day time.Weekday, openAt, closeAt string) *WeekBuilder {
	d := b.days[day]
	d.IsOpen = true
	d.OpenTime = openAt
	d.CloseTime = closeAt
	b.days[day] = d
	return b
}

func (b *WeekBuilder) NoBreak(day time.Weekday) *WeekBuilder {
	d := b.days[day]
	d.HasBreak = false
	b.days[day] = d
	return b
}

func (b *WeekBuilder) Break(day time.Weekday, start, end string) *WeekBuilder {
	d := b.days[day]
	d.HasBreak = true
	d.BreakStart = start
	d.BreakEnd = end
	b.days[day] = d
	return b
}

func (b *WeekBuilder) Build() schedule.Week {
	week := make(schedule.Week, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		week = append(week, b.days[wd])
	}
	return week
}
