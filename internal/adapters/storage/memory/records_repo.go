package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"event-publisher/internal/domain/records"
)

var ErrNotFound = errors.New("not found")

type recordsRepo struct {
	mu        sync.RWMutex
	events    map[string]records.EventRecord
	recurring map[string]records.RecurringEventRecord

	// order preserves insertion order for listing; map iteration alone
	// would make the expander's output order unstable.
	eventOrder     []string
	recurringOrder []string
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		events:    make(map[string]records.EventRecord),
		recurring: make(map[string]records.RecurringEventRecord),
	}
}

func (r *recordsRepo) CreateEvent(ctx context.Context, rec records.EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("record id required")
	}
	if _, exists := r.events[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.events[rec.ID] = rec
	r.eventOrder = append(r.eventOrder, rec.ID)
	return nil
}

func (r *recordsRepo) GetEvent(ctx context.Context, id string) (records.EventRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.events[id]
	if !ok {
		return records.EventRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *recordsRepo) ListEvents(ctx context.Context) ([]records.EventRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.EventRecord, 0, len(r.events))
	for _, id := range r.eventOrder {
		out = append(out, r.events[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *recordsRepo) SetEventApproval(ctx context.Context, id string, state records.ApprovalState, approver string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.events[id]
	if !ok {
		return ErrNotFound
	}
	rec.ApprovalState = state
	rec.ApprovedBy = approver
	r.events[id] = rec
	return nil
}

func (r *recordsRepo) SetEventCalendarID(ctx context.Context, id string, slot records.Slot, calendarID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.events[id]
	if !ok {
		return ErrNotFound
	}
	// Write-once: the first stored identifier wins.
	switch slot {
	case records.SlotFacility:
		if rec.FacilityEventID == "" {
			rec.FacilityEventID = calendarID
		}
	case records.SlotPublic:
		if rec.PublicEventID == "" {
			rec.PublicEventID = calendarID
		}
	default:
		return errors.New("unknown slot")
	}
	r.events[id] = rec
	return nil
}

func (r *recordsRepo) AppendEventSyncNote(ctx context.Context, id, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.events[id]
	if !ok {
		return ErrNotFound
	}
	rec.SyncNotes = append(rec.SyncNotes, note)
	r.events[id] = rec
	return nil
}

func (r *recordsRepo) CreateRecurring(ctx context.Context, rec records.RecurringEventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("record id required")
	}
	if _, exists := r.recurring[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.recurring[rec.ID] = rec
	r.recurringOrder = append(r.recurringOrder, rec.ID)
	return nil
}

func (r *recordsRepo) GetRecurring(ctx context.Context, id string) (records.RecurringEventRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recurring[id]
	if !ok {
		return records.RecurringEventRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *recordsRepo) ListRecurring(ctx context.Context) ([]records.RecurringEventRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.RecurringEventRecord, 0, len(r.recurring))
	for _, id := range r.recurringOrder {
		out = append(out, r.recurring[id])
	}
	return out, nil
}

func (r *recordsRepo) SetRecurringApproval(ctx context.Context, id string, state records.ApprovalState, approver string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recurring[id]
	if !ok {
		return ErrNotFound
	}
	rec.ApprovalState = state
	rec.ApprovedBy = approver
	r.recurring[id] = rec
	return nil
}

func (r *recordsRepo) SetRecurringSeriesID(ctx context.Context, id string, slot records.Slot, seriesID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recurring[id]
	if !ok {
		return ErrNotFound
	}
	switch slot {
	case records.SlotFacility:
		if rec.FacilitySeriesID == "" {
			rec.FacilitySeriesID = seriesID
		}
	case records.SlotPublic:
		if rec.PublicSeriesID == "" {
			rec.PublicSeriesID = seriesID
		}
	default:
		return errors.New("unknown slot")
	}
	r.recurring[id] = rec
	return nil
}

func (r *recordsRepo) AppendRecurringSyncNote(ctx context.Context, id, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recurring[id]
	if !ok {
		return ErrNotFound
	}
	rec.SyncNotes = append(rec.SyncNotes, note)
	r.recurring[id] = rec
	return nil
}
