package recurrence

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrencesInMonth_Every(t *testing.T) {
	// March 2026 starts on a Sunday and has 31 days: five Tuesdays.
	got := OccurrencesInMonth(2026, time.March, time.Tuesday, mo.None[int]())
	want := []time.Time{
		date(2026, time.March, 3),
		date(2026, time.March, 10),
		date(2026, time.March, 17),
		date(2026, time.March, 24),
		date(2026, time.March, 31),
	}
	assert.Equal(t, want, got)

	// February 2026 has only four Tuesdays.
	got = OccurrencesInMonth(2026, time.February, time.Tuesday, mo.None[int]())
	require.Len(t, got, 4)
	assert.Equal(t, date(2026, time.February, 3), got[0])
	assert.Equal(t, date(2026, time.February, 24), got[3])
}

func TestOccurrencesInMonth_EveryMonthHasFourOrFive(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			got := OccurrencesInMonth(2026, month, wd, mo.None[int]())
			assert.GreaterOrEqual(t, len(got), 4, "%s %s", month, wd)
			assert.LessOrEqual(t, len(got), 5, "%s %s", month, wd)
			for _, d := range got {
				assert.Equal(t, wd, d.Weekday())
				assert.Equal(t, month, d.Month())
			}
			for i := 1; i < len(got); i++ {
				assert.True(t, got[i].After(got[i-1]), "ascending order")
			}
		}
	}
}

func TestOccurrencesInMonth_Ordinal(t *testing.T) {
	got := OccurrencesInMonth(2026, time.January, time.Tuesday, mo.Some(2))
	require.Len(t, got, 1)
	assert.Equal(t, date(2026, time.January, 13), got[0])

	// Fourth Tuesday of March 2026 (a five-Tuesday month).
	got = OccurrencesInMonth(2026, time.March, time.Tuesday, mo.Some(4))
	require.Len(t, got, 1)
	assert.Equal(t, date(2026, time.March, 24), got[0])

	// February 2026 has no fifth Tuesday.
	assert.Empty(t, OccurrencesInMonth(2026, time.February, time.Tuesday, mo.Some(5)))
}

func TestOccurrencesInMonth_MonthStartingOnTargetWeekday(t *testing.T) {
	// September 2026 starts on a Tuesday: the offset must be zero, not seven.
	got := OccurrencesInMonth(2026, time.September, time.Tuesday, mo.Some(1))
	require.Len(t, got, 1)
	assert.Equal(t, date(2026, time.September, 1), got[0])
}

func TestFirstOccurrenceInYear(t *testing.T) {
	got := FirstOccurrenceInYear(2026, time.Tuesday, mo.Some(2))
	require.True(t, got.IsPresent())
	assert.Equal(t, date(2026, time.January, 13), got.MustGet())

	// Idempotent: same inputs, same date.
	again := FirstOccurrenceInYear(2026, time.Tuesday, mo.Some(2))
	assert.Equal(t, got, again)

	// An ordinal no month can satisfy yields None.
	assert.True(t, FirstOccurrenceInYear(2026, time.Tuesday, mo.Some(9)).IsAbsent())
}

// The expansion must agree with rrule-go's reading of the rule string the
// builder emits for the same recurrence.
func TestOccurrences_AgreeWithRRule(t *testing.T) {
	ruleStr, err := BuildRule("TU", mo.Some(2), UntilEndOfYear(2026))
	require.NoError(t, err)

	r, err := rrule.StrToRRule(ruleStr)
	require.NoError(t, err)
	r.DTStart(date(2026, time.January, 1))

	fromRRule := r.Between(date(2026, time.January, 1), date(2026, time.December, 31), true)

	var fromDateMath []time.Time
	for month := time.January; month <= time.December; month++ {
		fromDateMath = append(fromDateMath, OccurrencesInMonth(2026, month, time.Tuesday, mo.Some(2))...)
	}

	assert.Equal(t, fromDateMath, fromRRule)
}
