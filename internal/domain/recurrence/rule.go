package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

var (
	ErrUnknownWeekday = errors.New("recurrence: unknown weekday")
	ErrUnknownOrdinal = errors.New("recurrence: unknown ordinal")
)

const untilLayout = "20060102T150405Z"

var weekdayTokens = map[string]string{
	"sunday":    "SU",
	"monday":    "MO",
	"tuesday":   "TU",
	"wednesday": "WE",
	"thursday":  "TH",
	"friday":    "FR",
	"saturday":  "SA",
}

var weekdayIndexes = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var ordinalPositions = map[string]int{
	"first":  1,
	"second": 2,
	"third":  3,
	"fourth": 4,
}

// WeekdayToken maps a weekday name to its two-letter iCalendar token
// (Sunday -> SU ... Saturday -> SA).
func WeekdayToken(label string) (string, error) {
	tok, ok := weekdayTokens[normalize(label)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, label)
	}
	return tok, nil
}

// WeekdayFromLabel maps a weekday name to its time.Weekday index.
func WeekdayFromLabel(label string) (time.Weekday, error) {
	wd, ok := weekdayIndexes[normalize(label)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, label)
	}
	return wd, nil
}

// OrdinalPosition maps an ordinal label to a 1..4 position. "Every" (and the
// empty label) mean no position at all, which is not an error.
func OrdinalPosition(label string) (mo.Option[int], error) {
	n := normalize(label)
	if n == "" || n == "every" {
		return mo.None[int](), nil
	}
	pos, ok := ordinalPositions[n]
	if !ok {
		return mo.None[int](), fmt.Errorf("%w: %q", ErrUnknownOrdinal, label)
	}
	return mo.Some(pos), nil
}

// UntilEndOfYear returns the recurrence cutoff for the given year:
// 23:59:59 UTC on December 31.
func UntilEndOfYear(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
}

// BuildRule serializes a monthly recurrence into the fixed token order
//
//	FREQ=MONTHLY;[BYSETPOS=n;]BYDAY=<token>;WKST=SU;UNTIL=<basic ISO, UTC>
//
// BYSETPOS appears only for positional ordinals and always before BYDAY.
// The built string is parsed back through rrule-go so a rule that would be
// rejected downstream never leaves this function.
func BuildRule(weekdayToken string, pos mo.Option[int], until time.Time) (string, error) {
	if weekdayToken == "" {
		return "", ErrUnknownWeekday
	}

	var b strings.Builder
	b.WriteString("FREQ=MONTHLY;")
	if p, ok := pos.Get(); ok {
		fmt.Fprintf(&b, "BYSETPOS=%d;", p)
	}
	fmt.Fprintf(&b, "BYDAY=%s;WKST=SU;UNTIL=%s", weekdayToken, until.UTC().Format(untilLayout))

	rule := b.String()
	if _, err := rrule.StrToRRule(rule); err != nil {
		return "", fmt.Errorf("recurrence: built invalid rule %q: %w", rule, err)
	}
	return rule, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
