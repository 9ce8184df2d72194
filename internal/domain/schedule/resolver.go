package schedule

// Window is a DaySchedule projected onto the minute axis of one date.
// Close is extended past 1440 for overnight service and break bounds that
// fall after midnight are shifted onto the same extended axis.
type Window struct {
	Open       int
	Close      int
	HasBreak   bool
	BreakStart int
	BreakEnd   int
}

// Overnight reports whether service runs past midnight.
func (w Window) Overnight() bool {
	return w.Close > MinutesPerDay
}

// InBreak reports whether minute falls in [BreakStart, BreakEnd).
func (w Window) InBreak(minute int) bool {
	return w.HasBreak && minute >= w.BreakStart && minute < w.BreakEnd
}

// Resolve looks up the schedule of date's weekday. ok is false when the day
// has no entry or is not open; that is a normal outcome, not an error.
func Resolve(date Date, week Week) (w Window, ok bool, err error) {
	day, found := week.For(date.Weekday())
	if !found || !day.IsOpen {
		return Window{}, false, nil
	}

	open, err := ParseClock(day.OpenTime)
	if err != nil {
		return Window{}, false, err
	}
	closing, err := ParseClock(day.CloseTime)
	if err != nil {
		return Window{}, false, err
	}
	if closing < open {
		closing += MinutesPerDay
	}

	w = Window{Open: open, Close: closing}
	if !day.HasBreak {
		return w, true, nil
	}

	bs, err := ParseClock(day.BreakStart)
	if err != nil {
		return Window{}, false, err
	}
	be, err := ParseClock(day.BreakEnd)
	if err != nil {
		return Window{}, false, err
	}
	if w.Overnight() {
		if bs < open {
			bs += MinutesPerDay
		}
		if be < open {
			be += MinutesPerDay
		}
	}

	w.HasBreak = true
	w.BreakStart = bs
	w.BreakEnd = be
	return w, true, nil
}
