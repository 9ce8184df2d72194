package schedule

import (
	"fmt"
	"strings"
	"time"

	"table-booking/internal/pkg/errs"
)

// MinutesPerDay is the length of one lap of the minute axis.
const MinutesPerDay = 24 * 60

const dateLayout = "2006-01-02"

// Date is a civil calendar date with no time of day and no zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errs.Invalid("date %q must be YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Previous() Date {
	return d.AddDays(-1)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// At places a minute offset on the date. Offsets past 1440 or below zero
// land on the neighbouring days.
func (d Date) At(minute int) time.Time {
	return d.Time().Add(time.Duration(minute) * time.Minute)
}

// ParseClock converts a 24h "HH:MM" (or "HH:MM:SS" as stored by Postgres)
// wall-clock value into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, errs.Invalid("time %q must be HH:MM", s)
	}

	h, ok := twoDigits(parts[0])
	if !ok || h > 23 {
		return 0, errs.Invalid("time %q has an invalid hour", s)
	}
	m, ok := twoDigits(parts[1])
	if !ok || m > 59 {
		return 0, errs.Invalid("time %q has an invalid minute", s)
	}
	if len(parts) == 3 {
		if sec, ok := twoDigits(parts[2]); !ok || sec != 0 {
			return 0, errs.Invalid("time %q must fall on a whole minute", s)
		}
	}

	return h*60 + m, nil
}

// twoDigits parses exactly two ASCII digits.
func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// FormatClock renders a minute-axis value as "HH:MM", wrapping values outside
// [0, 1440) onto the wall clock.
func FormatClock(minute int) string {
	m := minute % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
