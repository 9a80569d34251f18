package recurrence

import (
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayToken(t *testing.T) {
	cases := map[string]string{
		"Sunday":    "SU",
		"Monday":    "MO",
		"Tuesday":   "TU",
		"Wednesday": "WE",
		"Thursday":  "TH",
		"Friday":    "FR",
		"Saturday":  "SA",
		" friday ":  "FR",
	}
	for label, want := range cases {
		got, err := WeekdayToken(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got)
	}

	_, err := WeekdayToken("Someday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestOrdinalPosition(t *testing.T) {
	for label, want := range map[string]int{"First": 1, "Second": 2, "third": 3, "Fourth": 4} {
		got, err := OrdinalPosition(label)
		require.NoError(t, err)
		assert.Equal(t, mo.Some(want), got)
	}

	got, err := OrdinalPosition("Every")
	require.NoError(t, err)
	assert.True(t, got.IsAbsent())

	got, err = OrdinalPosition("")
	require.NoError(t, err)
	assert.True(t, got.IsAbsent())

	_, err = OrdinalPosition("Fifth")
	assert.ErrorIs(t, err, ErrUnknownOrdinal)
}

func TestBuildRule_TokenOrder(t *testing.T) {
	until := UntilEndOfYear(2026)

	rule, err := BuildRule("TU", mo.Some(2), until)
	require.NoError(t, err)
	assert.Equal(t, "FREQ=MONTHLY;BYSETPOS=2;BYDAY=TU;WKST=SU;UNTIL=20261231T235959Z", rule)

	// BYSETPOS must come before BYDAY, and each token exactly once.
	assert.Equal(t, 1, strings.Count(rule, "BYDAY="))
	assert.Equal(t, 1, strings.Count(rule, "BYSETPOS="))
	assert.Less(t, strings.Index(rule, "BYSETPOS="), strings.Index(rule, "BYDAY="))

	rule, err = BuildRule("FR", mo.None[int](), until)
	require.NoError(t, err)
	assert.Equal(t, "FREQ=MONTHLY;BYDAY=FR;WKST=SU;UNTIL=20261231T235959Z", rule)
	assert.NotContains(t, rule, "BYSETPOS")
}

func TestBuildRule_EmptyToken(t *testing.T) {
	_, err := BuildRule("", mo.None[int](), UntilEndOfYear(2026))
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestUntilEndOfYear(t *testing.T) {
	got := UntilEndOfYear(2026)
	assert.Equal(t, time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC), got)
}

func TestParseSkipMonths(t *testing.T) {
	got := ParseSkipMonths("3, 7, 13, abc, 0")
	assert.Equal(t, map[time.Month]bool{time.March: true, time.July: true}, got)

	assert.Empty(t, ParseSkipMonths(""))
	assert.Empty(t, ParseSkipMonths("  ,  ,"))
	assert.Equal(t, map[time.Month]bool{time.December: true}, ParseSkipMonths("12"))
}
