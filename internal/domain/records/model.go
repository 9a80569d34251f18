package records

import "time"

// EventRecord is a one-shot event submission. FacilityEventID and
// PublicEventID are write-once: once set by the sync engine they are never
// overwritten.
type EventRecord struct {
	ID string

	ApprovalState ApprovalState
	ApprovedBy    string

	Title       string
	Description string

	// CalendarDate is the event date at midnight; StartTime/EndTime are
	// "15:04" time-of-day strings as submitted on the form.
	CalendarDate time.Time
	StartTime    string
	EndTime      string

	Audience     string
	SpaceRequest string // empty means no facility booking
	Padding      string

	FacilityEventID string
	PublicEventID   string

	SyncNotes []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecurringEventRecord is a monthly-recurring submission. The terminal sync
// artifact is a series identifier per slot rather than per-instance IDs.
// A record whose (Ordinal, Weekday) pair does not resolve is inert: no
// expansion, no sync.
type RecurringEventRecord struct {
	ID string

	ApprovalState ApprovalState
	ApprovedBy    string

	Title       string
	Description string

	Ordinal string // Every, First, Second, Third, Fourth
	Weekday string // Sunday .. Saturday

	StartTime string
	EndTime   string

	Audience     string
	SpaceRequest string
	Padding      string

	// SkipMonths is the raw comma-separated month list; editing it only
	// re-triggers expansion, never the series identifiers.
	SkipMonths string

	FacilitySeriesID string
	PublicSeriesID   string

	SyncNotes []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
