package instances

import (
	"context"
	"testing"
	"time"

	"event-publisher/internal/domain/records"
	"event-publisher/internal/platform/config"
	"event-publisher/internal/platform/logger"
)

// testRecords serves ListRecurring from a fixed slice; the expander touches
// nothing else on the repository.
type testRecords struct {
	records.Repository
	recs []records.RecurringEventRecord
}

func (r *testRecords) ListRecurring(_ context.Context) ([]records.RecurringEventRecord, error) {
	return r.recs, nil
}

type testRows struct {
	rows     []InstanceRow
	replaces int
}

func (r *testRows) Replace(_ context.Context, rows []InstanceRow) error {
	r.rows = rows
	r.replaces++
	return nil
}

func (r *testRows) List(_ context.Context) ([]InstanceRow, error) {
	return r.rows, nil
}

func newTestExpander(recs []records.RecurringEventRecord) (*Expander, *testRows) {
	rows := &testRows{}
	cfg := &config.Config{Year: 2026, Timezone: "UTC"}
	x := NewExpander(&testRecords{recs: recs}, rows, cfg, logger.New(logger.Options{Level: logger.Error}))
	return x, rows
}

func baseRecurring(id string) records.RecurringEventRecord {
	return records.RecurringEventRecord{
		ID:            id,
		ApprovalState: records.StateApproved,
		Title:         "Yoga Night",
		Ordinal:       "Second",
		Weekday:       "Tuesday",
		StartTime:     "18:00",
		EndTime:       "20:00",
		Audience:      "Members",
	}
}

func TestRebuild_SecondTuesdayWithSkips(t *testing.T) {
	rec := baseRecurring("rec-1")
	rec.SkipMonths = "3,7"
	x, rows := newTestExpander([]records.RecurringEventRecord{rec})

	if err := x.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(rows.rows) != 10 {
		t.Fatalf("expected 10 rows (12 months minus 2 skips), got %d", len(rows.rows))
	}

	// Second Tuesdays of 2026, March and July removed.
	wantDates := []string{
		"2026-01-13", "2026-02-10", "2026-04-14", "2026-05-12", "2026-06-09",
		"2026-08-11", "2026-09-08", "2026-10-13", "2026-11-10", "2026-12-08",
	}
	for i, row := range rows.rows {
		if got := row.Start.Format("2006-01-02"); got != wantDates[i] {
			t.Fatalf("row %d: expected %s, got %s", i, wantDates[i], got)
		}
		if row.Start.Hour() != 18 || row.End.Hour() != 20 {
			t.Fatalf("row %d: expected 18:00-20:00, got %v-%v", i, row.Start, row.End)
		}
		if row.RecordID != "rec-1" || row.Title != "Yoga Night" {
			t.Fatalf("row %d: record fields not carried: %+v", i, row)
		}
	}
}

func TestRebuild_EveryTuesdayCountsFifths(t *testing.T) {
	rec := baseRecurring("rec-1")
	rec.Ordinal = "Every"
	x, rows := newTestExpander([]records.RecurringEventRecord{rec})

	if err := x.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	byMonth := map[time.Month]int{}
	for _, row := range rows.rows {
		byMonth[row.Start.Month()]++
	}
	// March 2026 has five Tuesdays (3, 10, 17, 24, 31).
	if byMonth[time.March] != 5 {
		t.Fatalf("expected 5 Tuesdays in March, got %d", byMonth[time.March])
	}
	if byMonth[time.February] != 4 {
		t.Fatalf("expected 4 Tuesdays in February, got %d", byMonth[time.February])
	}
}

func TestRebuild_SkipsNonApprovedAndInertRecords(t *testing.T) {
	pending := baseRecurring("rec-pending")
	pending.ApprovalState = records.StatePending

	badWeekday := baseRecurring("rec-weekday")
	badWeekday.Weekday = "Someday"

	badOrdinal := baseRecurring("rec-ordinal")
	badOrdinal.Ordinal = "Fifth"

	badTime := baseRecurring("rec-time")
	badTime.StartTime = "evening"

	good := baseRecurring("rec-good")

	x, rows := newTestExpander([]records.RecurringEventRecord{pending, badWeekday, badOrdinal, badTime, good})

	if err := x.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(rows.rows) != 12 {
		t.Fatalf("expected only the good record expanded (12 rows), got %d", len(rows.rows))
	}
	for _, row := range rows.rows {
		if row.RecordID != "rec-good" {
			t.Fatalf("inert record leaked into rows: %+v", row)
		}
	}
}

func TestRebuild_ReplacesWholesale(t *testing.T) {
	rec := baseRecurring("rec-1")
	recs := &testRecords{recs: []records.RecurringEventRecord{rec}}
	rows := &testRows{}
	cfg := &config.Config{Year: 2026, Timezone: "UTC"}
	x := NewExpander(recs, rows, cfg, logger.New(logger.Options{Level: logger.Error}))

	if err := x.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(rows.rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(rows.rows))
	}

	// The record dropping out of Approved empties the next rebuild.
	recs.recs[0].ApprovalState = records.StateRejected
	if err := x.Rebuild(context.Background()); err != nil {
		t.Fatalf("second rebuild: %v", err)
	}
	if len(rows.rows) != 0 {
		t.Fatalf("expected wholesale replacement to drop stale rows, got %d", len(rows.rows))
	}
	if rows.replaces != 2 {
		t.Fatalf("expected two replaces, got %d", rows.replaces)
	}
}

func TestRebuild_RecordOrderThenDateOrder(t *testing.T) {
	first := baseRecurring("rec-a")
	second := baseRecurring("rec-b")
	second.Weekday = "Monday"
	second.Ordinal = "First"

	x, rows := newTestExpander([]records.RecurringEventRecord{first, second})

	if err := x.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(rows.rows) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(rows.rows))
	}
	for i, row := range rows.rows {
		want := "rec-a"
		if i >= 12 {
			want = "rec-b"
		}
		if row.RecordID != want {
			t.Fatalf("row %d: expected %s block, got %s", i, want, row.RecordID)
		}
	}
	for i := 1; i < 12; i++ {
		if !rows.rows[i-1].Start.Before(rows.rows[i].Start) {
			t.Fatalf("rows for one record must ascend by date: %v then %v", rows.rows[i-1].Start, rows.rows[i].Start)
		}
	}
}
