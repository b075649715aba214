package engine

import (
	"math"
	"time"
)

// NextStreak returns the streak after a session ending at now, given the end
// of the previous session. Days are compared in now's location.
//   - no previous session, or a gap of two or more days: 1
//   - previous session earlier the same day: unchanged (at least 1)
//   - previous session yesterday: +1
func NextStreak(prev int, last, now time.Time) int {
	if last.IsZero() {
		return 1
	}
	switch daysBetween(last, now) {
	case 0:
		return max(prev, 1)
	case 1:
		return prev + 1
	default:
		if last.After(now) {
			return max(prev, 1)
		}
		return 1
	}
}

func daysBetween(from, to time.Time) int {
	loc := to.Location()
	f := from.In(loc)
	a := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, loc)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// ReadingDays returns the set of local calendar days (yyyy-mm-dd) on which a
// session ended.
func ReadingDays(ends []time.Time, loc *time.Location) map[string]bool {
	if loc == nil {
		loc = time.Local
	}
	days := make(map[string]bool, len(ends))
	for _, t := range ends {
		days[t.In(loc).Format(time.DateOnly)] = true
	}
	return days
}
