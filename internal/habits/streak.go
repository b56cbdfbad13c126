package habits

import "github.com/ascentfit/ascent/internal/caldate"

// DeriveStreak computes the consecutive-days streak ending at anchor,
// from the set of days with at least one qualifying completion.
//
// If anchor itself has no completion but the day before does, the count
// starts at anchor-1: yesterday's streak is carried over until today gets
// its first record, instead of dropping to zero at midnight.
func DeriveStreak(completedDays []caldate.Day, anchor caldate.Day) int {
	if len(completedDays) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(completedDays))
	for _, d := range completedDays {
		set[d.String()] = struct{}{}
	}
	has := func(d caldate.Day) bool {
		_, ok := set[d.String()]
		return ok
	}

	start := anchor
	if !has(start) {
		start = anchor.AddDays(-1)
		if !has(start) {
			return 0
		}
	}

	streak := 0
	for d := start; has(d); d = d.AddDays(-1) {
		streak++
	}
	return streak
}
