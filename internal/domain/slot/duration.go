package slot

import (
	"table-booking/internal/domain/schedule"
	"table-booking/internal/pkg/errs"
)

// Mode says who is asking. Public callers are held to the configured
// default duration, staff may book any length up to a full day.
type Mode string

const (
	ModePublic Mode = "public"
	ModeStaff  Mode = "staff"
)

func (m Mode) IsValid() bool {
	return m == ModePublic || m == ModeStaff
}

// ValidateDuration checks minutes against the step grid and the ceiling of
// mode. publicMax is ignored for staff.
func ValidateDuration(mode Mode, minutes, publicMax int) error {
	if minutes <= 0 {
		return errs.Invalid("duration must be positive, got %d", minutes)
	}
	if minutes%Step != 0 {
		return errs.Invalid("duration must be a multiple of %d minutes, got %d", Step, minutes)
	}

	switch mode {
	case ModePublic:
		if minutes > publicMax {
			return errs.Invalid("duration may not exceed %d minutes", publicMax)
		}
	case ModeStaff:
		if minutes > schedule.MinutesPerDay {
			return errs.Invalid("duration may not exceed %d minutes", schedule.MinutesPerDay)
		}
	default:
		return errs.Invalid("unknown booking mode %q", mode)
	}
	return nil
}

// PublicDurations lists the durations offered to guests: every step from 30
// minutes up to and including max.
func PublicDurations(max int) []int {
	var out []int
	for d := Step; d <= max; d += Step {
		out = append(out, d)
	}
	return out
}
