package records

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	events    map[string]EventRecord
	recurring map[string]RecurringEventRecord

	approvalWrites int
}

func newTestRepo() *testRepo {
	return &testRepo{
		events:    map[string]EventRecord{},
		recurring: map[string]RecurringEventRecord{},
	}
}

func (r *testRepo) CreateEvent(_ context.Context, rec EventRecord) error {
	if rec.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.events[rec.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.events[rec.ID] = rec
	return nil
}

func (r *testRepo) GetEvent(_ context.Context, id string) (EventRecord, error) {
	rec, ok := r.events[id]
	if !ok {
		return EventRecord{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListEvents(_ context.Context) ([]EventRecord, error) {
	out := make([]EventRecord, 0, len(r.events))
	for _, rec := range r.events {
		out = append(out, rec)
	}
	return out, nil
}

func (r *testRepo) SetEventApproval(_ context.Context, id string, state ApprovalState, approver string) error {
	rec, ok := r.events[id]
	if !ok {
		return errRepoNotFound
	}
	rec.ApprovalState = state
	rec.ApprovedBy = approver
	r.events[id] = rec
	r.approvalWrites++
	return nil
}

func (r *testRepo) SetEventCalendarID(_ context.Context, id string, slot Slot, calendarID string) error {
	rec, ok := r.events[id]
	if !ok {
		return errRepoNotFound
	}
	switch slot {
	case SlotFacility:
		if rec.FacilityEventID == "" {
			rec.FacilityEventID = calendarID
		}
	case SlotPublic:
		if rec.PublicEventID == "" {
			rec.PublicEventID = calendarID
		}
	}
	r.events[id] = rec
	return nil
}

func (r *testRepo) AppendEventSyncNote(_ context.Context, id, note string) error {
	rec, ok := r.events[id]
	if !ok {
		return errRepoNotFound
	}
	rec.SyncNotes = append(rec.SyncNotes, note)
	r.events[id] = rec
	return nil
}

func (r *testRepo) CreateRecurring(_ context.Context, rec RecurringEventRecord) error {
	if rec.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.recurring[rec.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.recurring[rec.ID] = rec
	return nil
}

func (r *testRepo) GetRecurring(_ context.Context, id string) (RecurringEventRecord, error) {
	rec, ok := r.recurring[id]
	if !ok {
		return RecurringEventRecord{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListRecurring(_ context.Context) ([]RecurringEventRecord, error) {
	out := make([]RecurringEventRecord, 0, len(r.recurring))
	for _, rec := range r.recurring {
		out = append(out, rec)
	}
	return out, nil
}

func (r *testRepo) SetRecurringApproval(_ context.Context, id string, state ApprovalState, approver string) error {
	rec, ok := r.recurring[id]
	if !ok {
		return errRepoNotFound
	}
	rec.ApprovalState = state
	rec.ApprovedBy = approver
	r.recurring[id] = rec
	r.approvalWrites++
	return nil
}

func (r *testRepo) SetRecurringSeriesID(_ context.Context, id string, slot Slot, seriesID string) error {
	rec, ok := r.recurring[id]
	if !ok {
		return errRepoNotFound
	}
	switch slot {
	case SlotFacility:
		if rec.FacilitySeriesID == "" {
			rec.FacilitySeriesID = seriesID
		}
	case SlotPublic:
		if rec.PublicSeriesID == "" {
			rec.PublicSeriesID = seriesID
		}
	}
	r.recurring[id] = rec
	return nil
}

func (r *testRepo) AppendRecurringSyncNote(_ context.Context, id, note string) error {
	rec, ok := r.recurring[id]
	if !ok {
		return errRepoNotFound
	}
	rec.SyncNotes = append(rec.SyncNotes, note)
	r.recurring[id] = rec
	return nil
}

// -------------------------
// Tests
// -------------------------

func newTestService(repo *testRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestIntakeEvent_NormalizesAndStartsPending(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	rec, err := svc.IntakeEvent(context.Background(), IntakeEventInput{
		Title:     "  Spring Concert  ",
		Date:      time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
		StartTime: " 18:00 ",
		EndTime:   "20:00",
		Padding:   "1hr",
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated id")
	}
	if rec.ApprovalState != StatePending {
		t.Fatalf("expected pending, got %s", rec.ApprovalState)
	}
	if rec.Title != "Spring Concert" {
		t.Fatalf("expected trimmed title, got %q", rec.Title)
	}
	if rec.StartTime != "18:00" {
		t.Fatalf("expected trimmed start time, got %q", rec.StartTime)
	}
	if rec.Padding != PaddingOneHour {
		t.Fatalf("expected padding normalized to %q, got %q", PaddingOneHour, rec.Padding)
	}
	if rec.FacilityEventID != "" || rec.PublicEventID != "" {
		t.Fatal("expected identifier fields empty at intake")
	}
}

func TestIntakeEvent_RequiresTitleAndDate(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, err := svc.IntakeEvent(context.Background(), IntakeEventInput{
		Date: time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing title, got %v", err)
	}

	if _, err := svc.IntakeEvent(context.Background(), IntakeEventInput{
		Title: "No Date",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing date, got %v", err)
	}
}

func TestIntakeRecurring_KeepsLabelsAsSubmitted(t *testing.T) {
	svc := newTestService(newTestRepo())

	rec, err := svc.IntakeRecurring(context.Background(), IntakeRecurringInput{
		Title:      "Yoga Night",
		Ordinal:    "Fifth",
		Weekday:    "Someday",
		SkipMonths: "3,7",
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	// Unresolvable labels are stored, not rejected: the record stays inert
	// downstream instead of failing the submitter.
	if rec.Ordinal != "Fifth" || rec.Weekday != "Someday" {
		t.Fatalf("expected labels kept verbatim, got %q %q", rec.Ordinal, rec.Weekday)
	}
	if rec.SkipMonths != "3,7" {
		t.Fatalf("expected raw skip list kept, got %q", rec.SkipMonths)
	}
}

func TestApproveEvent_TransitionsOnce(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	rec, err := svc.IntakeEvent(context.Background(), IntakeEventInput{
		Title: "Concert",
		Date:  time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}

	got, transitioned, err := svc.ApproveEvent(context.Background(), rec.ID, "board@example.org")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !transitioned {
		t.Fatal("expected first approval to transition")
	}
	if got.ApprovalState != StateApproved || got.ApprovedBy != "board@example.org" {
		t.Fatalf("unexpected record after approval: %+v", got)
	}

	_, transitioned, err = svc.ApproveEvent(context.Background(), rec.ID, "other@example.org")
	if err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if transitioned {
		t.Fatal("expected re-approval to be a no-op")
	}
	if repo.approvalWrites != 1 {
		t.Fatalf("expected a single approval write, got %d", repo.approvalWrites)
	}
	// The no-op must not overwrite who approved.
	stored, _ := repo.GetEvent(context.Background(), rec.ID)
	if stored.ApprovedBy != "board@example.org" {
		t.Fatalf("expected original approver kept, got %q", stored.ApprovedBy)
	}
}

func TestRejectEvent_ReportsPriorApproval(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	rec, err := svc.IntakeEvent(context.Background(), IntakeEventInput{
		Title: "Concert",
		Date:  time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}

	_, wasApproved, err := svc.RejectEvent(context.Background(), rec.ID, "board@example.org")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if wasApproved {
		t.Fatal("rejecting a pending record must not report prior approval")
	}

	if _, _, err := svc.ApproveEvent(context.Background(), rec.ID, "board@example.org"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	_, wasApproved, err = svc.RejectEvent(context.Background(), rec.ID, "board@example.org")
	if err != nil {
		t.Fatalf("reject after approve: %v", err)
	}
	if !wasApproved {
		t.Fatal("expected prior approval reported")
	}
}

func TestApproveRecurring_TransitionsOnce(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	rec, err := svc.IntakeRecurring(context.Background(), IntakeRecurringInput{
		Title:   "Yoga Night",
		Ordinal: "Second",
		Weekday: "Tuesday",
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}

	_, transitioned, err := svc.ApproveRecurring(context.Background(), rec.ID, "board@example.org")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !transitioned {
		t.Fatal("expected first approval to transition")
	}

	_, transitioned, err = svc.ApproveRecurring(context.Background(), rec.ID, "board@example.org")
	if err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if transitioned {
		t.Fatal("expected re-approval to be a no-op")
	}
}

func TestApproveEvent_UnknownRecord(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, _, err := svc.ApproveEvent(context.Background(), "nope", "board@example.org"); !errors.Is(err, errRepoNotFound) {
		t.Fatalf("expected repo error passed through, got %v", err)
	}
}
