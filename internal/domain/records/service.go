package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type IntakeEventInput struct {
	Title        string
	Description  string
	Date         time.Time
	StartTime    string
	EndTime      string
	Audience     string
	SpaceRequest string
	Padding      string
}

// IntakeEvent normalizes a one-shot form submission into a Pending record
// with both identifier fields empty.
func (s *Service) IntakeEvent(ctx context.Context, in IntakeEventInput) (EventRecord, error) {
	if strings.TrimSpace(in.Title) == "" {
		return EventRecord{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return EventRecord{}, ErrInvalidInput
	}

	now := s.now()
	rec := EventRecord{
		ID:            uuid.NewString(),
		ApprovalState: StatePending,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		CalendarDate:  in.Date,
		StartTime:     strings.TrimSpace(in.StartTime),
		EndTime:       strings.TrimSpace(in.EndTime),
		Audience:      strings.TrimSpace(in.Audience),
		SpaceRequest:  strings.TrimSpace(in.SpaceRequest),
		Padding:       normalizePadding(in.Padding),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateEvent(ctx, rec); err != nil {
		return EventRecord{}, err
	}
	return rec, nil
}

type IntakeRecurringInput struct {
	Title        string
	Description  string
	Ordinal      string
	Weekday      string
	StartTime    string
	EndTime      string
	Audience     string
	SpaceRequest string
	Padding      string
	SkipMonths   string
}

// IntakeRecurring normalizes a recurring form submission. Ordinal/weekday
// labels are stored as submitted; an unresolvable pair makes the record
// inert later rather than failing intake.
func (s *Service) IntakeRecurring(ctx context.Context, in IntakeRecurringInput) (RecurringEventRecord, error) {
	if strings.TrimSpace(in.Title) == "" {
		return RecurringEventRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Weekday) == "" {
		return RecurringEventRecord{}, ErrInvalidInput
	}

	now := s.now()
	rec := RecurringEventRecord{
		ID:            uuid.NewString(),
		ApprovalState: StatePending,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Ordinal:       strings.TrimSpace(in.Ordinal),
		Weekday:       strings.TrimSpace(in.Weekday),
		StartTime:     strings.TrimSpace(in.StartTime),
		EndTime:       strings.TrimSpace(in.EndTime),
		Audience:      strings.TrimSpace(in.Audience),
		SpaceRequest:  strings.TrimSpace(in.SpaceRequest),
		Padding:       normalizePadding(in.Padding),
		SkipMonths:    strings.TrimSpace(in.SkipMonths),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateRecurring(ctx, rec); err != nil {
		return RecurringEventRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (EventRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return EventRecord{}, ErrInvalidInput
	}
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context) ([]EventRecord, error) {
	return s.repo.ListEvents(ctx)
}

func (s *Service) GetRecurring(ctx context.Context, id string) (RecurringEventRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return RecurringEventRecord{}, ErrInvalidInput
	}
	return s.repo.GetRecurring(ctx, id)
}

func (s *Service) ListRecurring(ctx context.Context) ([]RecurringEventRecord, error) {
	return s.repo.ListRecurring(ctx)
}

// ApproveEvent moves a record into Approved. The returned bool reports
// whether a real transition happened: approving an already-approved record
// is a no-op with no field writes, which is what keeps downstream sync
// edge-triggered.
func (s *Service) ApproveEvent(ctx context.Context, id, approver string) (EventRecord, bool, error) {
	rec, err := s.GetEvent(ctx, id)
	if err != nil {
		return EventRecord{}, false, err
	}
	if rec.ApprovalState == StateApproved {
		return rec, false, nil
	}

	if err := s.repo.SetEventApproval(ctx, rec.ID, StateApproved, approver); err != nil {
		return EventRecord{}, false, err
	}
	rec.ApprovalState = StateApproved
	rec.ApprovedBy = approver
	return rec, true, nil
}

// RejectEvent moves a record into Rejected. The returned bool reports
// whether the record was Approved before the change. No calendar entries
// are retracted on rejection.
func (s *Service) RejectEvent(ctx context.Context, id, approver string) (EventRecord, bool, error) {
	rec, err := s.GetEvent(ctx, id)
	if err != nil {
		return EventRecord{}, false, err
	}
	if rec.ApprovalState == StateRejected {
		return rec, false, nil
	}

	wasApproved := rec.ApprovalState == StateApproved
	if err := s.repo.SetEventApproval(ctx, rec.ID, StateRejected, approver); err != nil {
		return EventRecord{}, false, err
	}
	rec.ApprovalState = StateRejected
	rec.ApprovedBy = approver
	return rec, wasApproved, nil
}

func (s *Service) ApproveRecurring(ctx context.Context, id, approver string) (RecurringEventRecord, bool, error) {
	rec, err := s.GetRecurring(ctx, id)
	if err != nil {
		return RecurringEventRecord{}, false, err
	}
	if rec.ApprovalState == StateApproved {
		return rec, false, nil
	}

	if err := s.repo.SetRecurringApproval(ctx, rec.ID, StateApproved, approver); err != nil {
		return RecurringEventRecord{}, false, err
	}
	rec.ApprovalState = StateApproved
	rec.ApprovedBy = approver
	return rec, true, nil
}

func (s *Service) RejectRecurring(ctx context.Context, id, approver string) (RecurringEventRecord, bool, error) {
	rec, err := s.GetRecurring(ctx, id)
	if err != nil {
		return RecurringEventRecord{}, false, err
	}
	if rec.ApprovalState == StateRejected {
		return rec, false, nil
	}

	wasApproved := rec.ApprovalState == StateApproved
	if err := s.repo.SetRecurringApproval(ctx, rec.ID, StateRejected, approver); err != nil {
		return RecurringEventRecord{}, false, err
	}
	rec.ApprovalState = StateRejected
	rec.ApprovedBy = approver
	return rec, wasApproved, nil
}

func normalizePadding(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "30 minutes", "30min", "30":
		return Padding30Minutes
	case "1 hour", "1hr":
		return PaddingOneHour
	case "2 hours", "2hr":
		return PaddingTwoHours
	default:
		return PaddingNone
	}
}
