package slot

import (
	"table-booking/internal/domain/schedule"
	"table-booking/internal/pkg/errs"
)

const (
	// Step is the spacing between consecutive start times.
	Step = 30
	// breakNudge is how far a candidate moves when its window runs into the break.
	breakNudge = 15
	// secondHalfFrom is the cutoff between the lunch and dinner buckets.
	secondHalfFrom = 16 * 60
)

type Bucket string

const (
	BucketFirstHalf  Bucket = "first_half"
	BucketSecondHalf Bucket = "second_half"
)

// Slot is one bookable start time. Minute lives on the extended axis of the
// resolved day and may be 1440 or more for service after midnight.
type Slot struct {
	Minute int
	Bucket Bucket
}

// Clock is the wall-clock start time, wrapped onto 00:00-23:59.
func (s Slot) Clock() string {
	return schedule.FormatClock(s.Minute)
}

type Buckets struct {
	FirstHalf  []Slot
	SecondHalf []Slot
}

func (b Buckets) Empty() bool {
	return len(b.FirstHalf) == 0 && len(b.SecondHalf) == 0
}

// All returns the slots of both buckets in generation order.
func (b Buckets) All() []Slot {
	all := make([]Slot, 0, len(b.FirstHalf)+len(b.SecondHalf))
	all = append(all, b.FirstHalf...)
	return append(all, b.SecondHalf...)
}

// Find returns the slot whose wall-clock start matches clock ("HH:MM").
func (b Buckets) Find(clock string) (Slot, bool) {
	m, err := schedule.ParseClock(clock)
	if err != nil {
		return Slot{}, false
	}
	for _, s := range b.All() {
		if s.Minute%schedule.MinutesPerDay == m {
			return s, true
		}
	}
	return Slot{}, false
}

// Generate lists the start times of date at which a reservation of duration
// minutes fits between open and close without touching the break. A closed
// day yields empty buckets.
func Generate(date schedule.Date, week schedule.Week, duration int) (Buckets, error) {
	if duration <= 0 {
		return Buckets{}, errs.Invalid("duration must be positive, got %d", duration)
	}

	w, ok, err := schedule.Resolve(date, week)
	if err != nil {
		return Buckets{}, err
	}
	if !ok {
		return Buckets{}, nil
	}

	var out Buckets
	last := w.Close - duration
	for cur := w.Open; cur <= last; {
		if w.HasBreak {
			if w.InBreak(cur) {
				cur = w.BreakEnd
				continue
			}
			if cur < w.BreakStart && cur+duration > w.BreakStart {
				cur += breakNudge
				continue
			}
		}

		s := Slot{Minute: cur, Bucket: classify(w, cur)}
		if s.Bucket == BucketFirstHalf {
			out.FirstHalf = append(out.FirstHalf, s)
		} else {
			out.SecondHalf = append(out.SecondHalf, s)
		}
		cur += Step
	}
	return out, nil
}

// Wrapped values below the open time are past midnight and close out the
// same service.
func classify(w schedule.Window, minute int) Bucket {
	wrapped := minute % schedule.MinutesPerDay
	if wrapped < w.Open || minute >= secondHalfFrom {
		return BucketSecondHalf
	}
	return BucketFirstHalf
}
