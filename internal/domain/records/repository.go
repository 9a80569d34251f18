package records

import "context"

// Repository is the record store boundary. Writes are field-scoped: approval
// state, one calendar identifier, or one appended sync note at a time.
//
// SetEventCalendarID and SetRecurringSeriesID are write-once. An attempt to
// overwrite a non-empty identifier preserves the stored value and reports
// nothing: the first writer wins, which is what makes the at-most-once
// creation guarantee hold across re-entrant triggers.
type Repository interface {
	CreateEvent(ctx context.Context, rec EventRecord) error
	GetEvent(ctx context.Context, id string) (EventRecord, error)
	ListEvents(ctx context.Context) ([]EventRecord, error)
	SetEventApproval(ctx context.Context, id string, state ApprovalState, approver string) error
	SetEventCalendarID(ctx context.Context, id string, slot Slot, calendarID string) error
	AppendEventSyncNote(ctx context.Context, id, note string) error

	CreateRecurring(ctx context.Context, rec RecurringEventRecord) error
	GetRecurring(ctx context.Context, id string) (RecurringEventRecord, error)
	ListRecurring(ctx context.Context) ([]RecurringEventRecord, error)
	SetRecurringApproval(ctx context.Context, id string, state ApprovalState, approver string) error
	SetRecurringSeriesID(ctx context.Context, id string, slot Slot, seriesID string) error
	AppendRecurringSyncNote(ctx context.Context, id, note string) error
}
