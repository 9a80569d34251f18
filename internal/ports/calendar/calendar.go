package calendar

import (
	"context"
	"time"
)

// Entry is one calendar entry to create. CalendarID is the opaque external
// identifier of the destination calendar, taken from configuration.
type Entry struct {
	CalendarID  string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Calendar is the external calendar collaborator. Both calls are synchronous
// and fallible; the caller owns retry policy (there is none) and must treat
// a returned identifier as the only proof of creation.
type Calendar interface {
	// CreateEntry creates a single entry and returns its identifier.
	CreateEntry(ctx context.Context, e Entry) (string, error)

	// CreateSeries creates one recurring series described by an iCalendar
	// RRULE content line (without the "RRULE:" prefix) and returns the
	// series identifier.
	CreateSeries(ctx context.Context, e Entry, rule string) (string, error)
}
