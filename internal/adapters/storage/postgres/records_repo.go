package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"event-publisher/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) CreateEvent(ctx context.Context, rec records.EventRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO event_records (
			id, approval_state, approved_by,
			title, description,
			calendar_date, start_time, end_time,
			audience, space_request, padding,
			facility_event_id, public_event_id,
			sync_notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		rec.ID,
		string(rec.ApprovalState),
		rec.ApprovedBy,
		rec.Title,
		rec.Description,
		rec.CalendarDate,
		rec.StartTime,
		rec.EndTime,
		rec.Audience,
		rec.SpaceRequest,
		rec.Padding,
		rec.FacilityEventID,
		rec.PublicEventID,
		joinNotes(rec.SyncNotes),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

const eventColumns = `
	id, approval_state, approved_by,
	title, description,
	calendar_date, start_time, end_time,
	audience, space_request, padding,
	facility_event_id, public_event_id,
	sync_notes,
	created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (records.EventRecord, error) {
	var rec records.EventRecord
	var state, notes string
	err := row.Scan(
		&rec.ID, &state, &rec.ApprovedBy,
		&rec.Title, &rec.Description,
		&rec.CalendarDate, &rec.StartTime, &rec.EndTime,
		&rec.Audience, &rec.SpaceRequest, &rec.Padding,
		&rec.FacilityEventID, &rec.PublicEventID,
		&notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return records.EventRecord{}, err
	}
	rec.ApprovalState = records.ApprovalState(state)
	rec.SyncNotes = splitNotes(notes)
	return rec, nil
}

func (r *RecordsRepo) GetEvent(ctx context.Context, id string) (records.EventRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+eventColumns+` FROM event_records WHERE id = $1`, id)
	rec, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return records.EventRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *RecordsRepo) ListEvents(ctx context.Context) ([]records.EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+eventColumns+` FROM event_records ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.EventRecord, 0)
	for rows.Next() {
		rec, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) SetEventApproval(ctx context.Context, id string, state records.ApprovalState, approver string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE event_records
		SET approval_state = $2, approved_by = $3, updated_at = now()
		WHERE id = $1
	`, id, string(state), approver)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *RecordsRepo) SetEventCalendarID(ctx context.Context, id string, slot records.Slot, calendarID string) error {
	column, err := eventSlotColumn(slot)
	if err != nil {
		return err
	}
	// Write-once: the guard in the WHERE clause makes the first writer win
	// even under concurrent updates.
	res, err := r.db.ExecContext(ctx, `
		UPDATE event_records
		SET `+column+` = $2, updated_at = now()
		WHERE id = $1 AND `+column+` = ''
	`, id, calendarID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the record is gone or the slot is already filled; only
		// the former is an error.
		return r.exists(ctx, "event_records", id)
	}
	return nil
}

func (r *RecordsRepo) AppendEventSyncNote(ctx context.Context, id, note string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE event_records
		SET sync_notes = CASE WHEN sync_notes = '' THEN $2 ELSE sync_notes || E'\n' || $2 END,
		    updated_at = now()
		WHERE id = $1
	`, id, note)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *RecordsRepo) CreateRecurring(ctx context.Context, rec records.RecurringEventRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring_event_records (
			id, approval_state, approved_by,
			title, description,
			ordinal, weekday, start_time, end_time,
			audience, space_request, padding, skip_months,
			facility_series_id, public_series_id,
			sync_notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		rec.ID,
		string(rec.ApprovalState),
		rec.ApprovedBy,
		rec.Title,
		rec.Description,
		rec.Ordinal,
		rec.Weekday,
		rec.StartTime,
		rec.EndTime,
		rec.Audience,
		rec.SpaceRequest,
		rec.Padding,
		rec.SkipMonths,
		rec.FacilitySeriesID,
		rec.PublicSeriesID,
		joinNotes(rec.SyncNotes),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

const recurringColumns = `
	id, approval_state, approved_by,
	title, description,
	ordinal, weekday, start_time, end_time,
	audience, space_request, padding, skip_months,
	facility_series_id, public_series_id,
	sync_notes,
	created_at, updated_at`

func scanRecurring(row interface{ Scan(...any) error }) (records.RecurringEventRecord, error) {
	var rec records.RecurringEventRecord
	var state, notes string
	err := row.Scan(
		&rec.ID, &state, &rec.ApprovedBy,
		&rec.Title, &rec.Description,
		&rec.Ordinal, &rec.Weekday, &rec.StartTime, &rec.EndTime,
		&rec.Audience, &rec.SpaceRequest, &rec.Padding, &rec.SkipMonths,
		&rec.FacilitySeriesID, &rec.PublicSeriesID,
		&notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return records.RecurringEventRecord{}, err
	}
	rec.ApprovalState = records.ApprovalState(state)
	rec.SyncNotes = splitNotes(notes)
	return rec, nil
}

func (r *RecordsRepo) GetRecurring(ctx context.Context, id string) (records.RecurringEventRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+recurringColumns+` FROM recurring_event_records WHERE id = $1`, id)
	rec, err := scanRecurring(row)
	if errors.Is(err, sql.ErrNoRows) {
		return records.RecurringEventRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *RecordsRepo) ListRecurring(ctx context.Context) ([]records.RecurringEventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+recurringColumns+` FROM recurring_event_records ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.RecurringEventRecord, 0)
	for rows.Next() {
		rec, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) SetRecurringApproval(ctx context.Context, id string, state records.ApprovalState, approver string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_event_records
		SET approval_state = $2, approved_by = $3, updated_at = now()
		WHERE id = $1
	`, id, string(state), approver)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *RecordsRepo) SetRecurringSeriesID(ctx context.Context, id string, slot records.Slot, seriesID string) error {
	column, err := recurringSlotColumn(slot)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_event_records
		SET `+column+` = $2, updated_at = now()
		WHERE id = $1 AND `+column+` = ''
	`, id, seriesID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.exists(ctx, "recurring_event_records", id)
	}
	return nil
}

func (r *RecordsRepo) AppendRecurringSyncNote(ctx context.Context, id, note string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_event_records
		SET sync_notes = CASE WHEN sync_notes = '' THEN $2 ELSE sync_notes || E'\n' || $2 END,
		    updated_at = now()
		WHERE id = $1
	`, id, note)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *RecordsRepo) exists(ctx context.Context, table, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func eventSlotColumn(slot records.Slot) (string, error) {
	switch slot {
	case records.SlotFacility:
		return "facility_event_id", nil
	case records.SlotPublic:
		return "public_event_id", nil
	default:
		return "", errors.New("unknown slot")
	}
}

func recurringSlotColumn(slot records.Slot) (string, error) {
	switch slot {
	case records.SlotFacility:
		return "facility_series_id", nil
	case records.SlotPublic:
		return "public_series_id", nil
	default:
		return "", errors.New("unknown slot")
	}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func joinNotes(notes []string) string {
	return strings.Join(notes, "\n")
}

func splitNotes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
