package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// OccurrencesInMonth returns the dates in (year, month) that fall on the
// given weekday, at midnight UTC, in ascending order.
//
// With ordinal = None every matching date is returned (4 or 5 per month).
// With ordinal = Some(n), n in 1..4, only the nth matching date is returned,
// or nothing when the month has fewer than n occurrences of that weekday.
func OccurrencesInMonth(year int, month time.Month, weekday time.Weekday, ordinal mo.Option[int]) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	// Canonical non-negative offset from the 1st to the first matching weekday.
	delta := (int(weekday) - int(first.Weekday()) + 7) % 7

	daysInMonth := first.AddDate(0, 1, -1).Day()

	var out []time.Time
	for day := 1 + delta; day <= daysInMonth; day += 7 {
		out = append(out, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	}

	if pos, ok := ordinal.Get(); ok {
		if pos < 1 || pos > len(out) {
			return nil
		}
		return out[pos-1 : pos]
	}
	return out
}

// FirstOccurrenceInYear scans January through December and returns the first
// date OccurrencesInMonth yields, or None when the combination never occurs
// in that year.
func FirstOccurrenceInYear(year int, weekday time.Weekday, ordinal mo.Option[int]) mo.Option[time.Time] {
	for month := time.January; month <= time.December; month++ {
		if dates := OccurrencesInMonth(year, month, weekday, ordinal); len(dates) > 0 {
			return mo.Some(dates[0])
		}
	}
	return mo.None[time.Time]()
}
