package table

import (
	"sort"

	"github.com/google/uuid"

	"table-booking/internal/pkg/errs"
)

// MaxCombination bounds how many tables may be pushed together for one party.
const MaxCombination = 5

// Allocation is the chosen table set for one party.
type Allocation struct {
	Tables []Table
}

func (a Allocation) TableIDs() []uuid.UUID { return IDs(a.Tables) }
func (a Allocation) Seats() int            { return TotalSeats(a.Tables) }

// Allocate seats partySize guests at the smallest single table that fits, or
// failing that at the combination of at most MaxCombination tables with the
// fewest tables and then the fewest seats. errs.ErrNoTableFit is returned when
// nothing reaches the party size.
func Allocate(available []Table, partySize int) (Allocation, error) {
	if partySize < 1 {
		return Allocation{}, errs.Invalid("party size must be at least 1, got %d", partySize)
	}

	if t, ok := smallestFit(available, partySize); ok {
		return Allocation{Tables: []Table{t}}, nil
	}

	ordered := make([]Table, len(available))
	copy(ordered, available)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seats > ordered[j].Seats
	})

	s := search{tables: ordered, party: partySize}
	s.walk(0, nil, 0)
	if s.best == nil {
		return Allocation{}, errs.ErrNoTableFit
	}
	return Allocation{Tables: s.best}, nil
}

func smallestFit(tables []Table, partySize int) (Table, bool) {
	var best Table
	found := false
	for _, t := range tables {
		if t.Seats < partySize {
			continue
		}
		if !found || t.Seats < best.Seats {
			best, found = t, true
		}
	}
	return best, found
}

type search struct {
	tables    []Table
	party     int
	best      []Table
	bestSeats int
}

// walk extends combo with tables after index start only, so every subset is
// visited once.
func (s *search) walk(start int, combo []Table, seats int) {
	if s.best != nil && len(combo) > len(s.best) {
		return
	}
	if seats >= s.party {
		if s.best == nil || len(combo) < len(s.best) ||
			(len(combo) == len(s.best) && seats < s.bestSeats) {
			s.best = append([]Table(nil), combo...)
			s.bestSeats = seats
		}
		return
	}
	if len(combo) >= MaxCombination {
		return
	}

	for i := start; i < len(s.tables); i++ {
		s.walk(i+1, append(combo, s.tables[i]), seats+s.tables[i].Seats)
	}
}
