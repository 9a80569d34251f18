package sync

import (
	"context"
	"strings"
	gosync "sync"
	"time"

	"event-publisher/internal/domain/records"
	"event-publisher/internal/domain/recurrence"
	"event-publisher/internal/domain/routing"
	"event-publisher/internal/platform/config"
	"event-publisher/internal/platform/logger"
	"event-publisher/internal/ports/calendar"
)

const timeOfDayLayout = "15:04"

// Engine publishes approved records to the external calendars. Each record
// has two independent destination slots (facility and public/member), each
// backed by a write-once identifier field: a slot whose identifier is
// already set is never touched again, whatever else changed on the record.
//
// Slot failures are appended to the record's sync notes and never propagate
// to the approver; the identifier stays empty so the slot is retried on the
// next qualifying state transition. A nil calendar means the collaborator
// is unavailable: slots that would call it are annotated and skipped, the
// same degradation as an unconfigured destination.
type Engine struct {
	repo records.Repository
	cal  calendar.Calendar
	cfg  *config.Config
	loc  *time.Location
	log  logger.Logger

	locks recordLocks
}

func New(repo records.Repository, cal calendar.Calendar, cfg *config.Config, log logger.Logger) *Engine {
	return &Engine{
		repo: repo,
		cal:  cal,
		cfg:  cfg,
		loc:  cfg.Location(),
		log:  log,
	}
}

// SyncEvent runs the one-shot slot machine for an approved record. Callers
// invoke it only on a Pending/Rejected -> Approved transition; the engine
// still re-reads the record under the per-record lock so concurrent
// triggers cannot double-create.
func (e *Engine) SyncEvent(ctx context.Context, rec records.EventRecord) error {
	unlock := e.locks.lock(rec.ID)
	defer unlock()

	rec, err := e.repo.GetEvent(ctx, rec.ID)
	if err != nil {
		return err
	}
	if rec.ApprovalState != records.StateApproved {
		return nil
	}

	start, end, ok := e.window(rec.Title, rec.CalendarDate, rec.StartTime, rec.EndTime)
	if !ok {
		// Incomplete form, not a fault: no annotation, no calendar calls.
		return nil
	}

	// Facility slot, padded.
	if routing.ResolveFacilityDestination(rec.SpaceRequest) == routing.DestinationBuilding && rec.FacilityEventID == "" {
		if calID := e.cfg.Calendars.Building; calID == "" {
			e.noteEvent(ctx, rec.ID, "building calendar is not configured; facility booking skipped")
		} else if e.cal == nil {
			e.noteEvent(ctx, rec.ID, "calendar service is not available; facility booking skipped")
		} else {
			pad := time.Duration(routing.PaddingMinutes(rec.Padding)) * time.Minute
			id, err := e.cal.CreateEntry(ctx, calendar.Entry{
				CalendarID:  calID,
				Title:       rec.Title,
				Description: rec.Description,
				Location:    rec.SpaceRequest,
				Start:       start.Add(-pad),
				End:         end.Add(pad),
			})
			if err != nil {
				e.log.Warn("facility entry failed", map[string]any{"record": rec.ID, "err": err.Error()})
				e.noteEvent(ctx, rec.ID, "facility calendar: "+err.Error())
			} else if err := e.repo.SetEventCalendarID(ctx, rec.ID, records.SlotFacility, id); err != nil {
				e.noteEvent(ctx, rec.ID, "storing facility entry id: "+err.Error())
			}
		}
	}

	// Public/member slot, unpadded. Independent of the facility outcome.
	switch dest := routing.ResolveDestination(rec.Audience); dest {
	case routing.DestinationNone:
		e.noteAmbiguousAudience(ctx, rec.ID, rec.Audience, rec.SyncNotes, e.noteEvent)
	default:
		if rec.PublicEventID != "" {
			break
		}
		calID := e.destinationCalendar(dest)
		if calID == "" {
			e.noteEvent(ctx, rec.ID, string(dest)+" calendar is not configured; publication skipped")
			break
		}
		if e.cal == nil {
			e.noteEvent(ctx, rec.ID, "calendar service is not available; publication skipped")
			break
		}
		id, err := e.cal.CreateEntry(ctx, calendar.Entry{
			CalendarID:  calID,
			Title:       rec.Title,
			Description: rec.Description,
			Location:    rec.SpaceRequest,
			Start:       start,
			End:         end,
		})
		if err != nil {
			e.log.Warn("public entry failed", map[string]any{"record": rec.ID, "err": err.Error()})
			e.noteEvent(ctx, rec.ID, string(dest)+" calendar: "+err.Error())
			break
		}
		if err := e.repo.SetEventCalendarID(ctx, rec.ID, records.SlotPublic, id); err != nil {
			e.noteEvent(ctx, rec.ID, "storing public entry id: "+err.Error())
		}
	}

	return nil
}

// SyncRecurring runs the slot machine for an approved recurring record,
// creating one series per destination instead of per-date entries.
func (e *Engine) SyncRecurring(ctx context.Context, rec records.RecurringEventRecord) error {
	unlock := e.locks.lock(rec.ID)
	defer unlock()

	rec, err := e.repo.GetRecurring(ctx, rec.ID)
	if err != nil {
		return err
	}
	if rec.ApprovalState != records.StateApproved {
		return nil
	}

	weekday, err := recurrence.WeekdayFromLabel(rec.Weekday)
	if err != nil {
		e.noteRecurring(ctx, rec.ID, "recurrence not synced: "+err.Error())
		return nil
	}
	ordinal, err := recurrence.OrdinalPosition(rec.Ordinal)
	if err != nil {
		e.noteRecurring(ctx, rec.ID, "recurrence not synced: "+err.Error())
		return nil
	}

	firstDate, present := recurrence.FirstOccurrenceInYear(e.cfg.Year, weekday, ordinal).Get()
	if !present {
		return nil
	}

	start, end, ok := e.window(rec.Title, firstDate, rec.StartTime, rec.EndTime)
	if !ok {
		return nil
	}

	token, err := recurrence.WeekdayToken(rec.Weekday)
	if err != nil {
		e.noteRecurring(ctx, rec.ID, "recurrence not synced: "+err.Error())
		return nil
	}
	rule, err := recurrence.BuildRule(token, ordinal, recurrence.UntilEndOfYear(e.cfg.Year))
	if err != nil {
		e.noteRecurring(ctx, rec.ID, "recurrence not synced: "+err.Error())
		return nil
	}

	if routing.ResolveFacilityDestination(rec.SpaceRequest) == routing.DestinationBuilding && rec.FacilitySeriesID == "" {
		if calID := e.cfg.Calendars.Building; calID == "" {
			e.noteRecurring(ctx, rec.ID, "building calendar is not configured; facility booking skipped")
		} else if e.cal == nil {
			e.noteRecurring(ctx, rec.ID, "calendar service is not available; facility booking skipped")
		} else {
			pad := time.Duration(routing.PaddingMinutes(rec.Padding)) * time.Minute
			id, err := e.cal.CreateSeries(ctx, calendar.Entry{
				CalendarID:  calID,
				Title:       rec.Title,
				Description: rec.Description,
				Location:    rec.SpaceRequest,
				Start:       start.Add(-pad),
				End:         end.Add(pad),
			}, rule)
			if err != nil {
				e.log.Warn("facility series failed", map[string]any{"record": rec.ID, "err": err.Error()})
				e.noteRecurring(ctx, rec.ID, "facility calendar: "+err.Error())
			} else if err := e.repo.SetRecurringSeriesID(ctx, rec.ID, records.SlotFacility, id); err != nil {
				e.noteRecurring(ctx, rec.ID, "storing facility series id: "+err.Error())
			}
		}
	}

	switch dest := routing.ResolveDestination(rec.Audience); dest {
	case routing.DestinationNone:
		e.noteAmbiguousAudience(ctx, rec.ID, rec.Audience, rec.SyncNotes, e.noteRecurring)
	default:
		if rec.PublicSeriesID != "" {
			break
		}
		calID := e.destinationCalendar(dest)
		if calID == "" {
			e.noteRecurring(ctx, rec.ID, string(dest)+" calendar is not configured; publication skipped")
			break
		}
		if e.cal == nil {
			e.noteRecurring(ctx, rec.ID, "calendar service is not available; publication skipped")
			break
		}
		id, err := e.cal.CreateSeries(ctx, calendar.Entry{
			CalendarID:  calID,
			Title:       rec.Title,
			Description: rec.Description,
			Location:    rec.SpaceRequest,
			Start:       start,
			End:         end,
		}, rule)
		if err != nil {
			e.log.Warn("public series failed", map[string]any{"record": rec.ID, "err": err.Error()})
			e.noteRecurring(ctx, rec.ID, string(dest)+" calendar: "+err.Error())
			break
		}
		if err := e.repo.SetRecurringSeriesID(ctx, rec.ID, records.SlotPublic, id); err != nil {
			e.noteRecurring(ctx, rec.ID, "storing public series id: "+err.Error())
		}
	}

	return nil
}

// window combines a date with the form's time-of-day strings in the
// configured timezone. A blank title, zero date, or unparsable time means
// "not enough information": the caller skips silently.
func (e *Engine) window(title string, date time.Time, startStr, endStr string) (start, end time.Time, ok bool) {
	if strings.TrimSpace(title) == "" || date.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	st, err := time.Parse(timeOfDayLayout, strings.TrimSpace(startStr))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	et, err := time.Parse(timeOfDayLayout, strings.TrimSpace(endStr))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	start = time.Date(date.Year(), date.Month(), date.Day(), st.Hour(), st.Minute(), 0, 0, e.loc)
	end = time.Date(date.Year(), date.Month(), date.Day(), et.Hour(), et.Minute(), 0, 0, e.loc)
	return start, end, true
}

func (e *Engine) destinationCalendar(dest routing.Destination) string {
	switch dest {
	case routing.DestinationMember:
		return e.cfg.Calendars.Member
	case routing.DestinationPublic:
		return e.cfg.Calendars.Public
	case routing.DestinationBuilding:
		return e.cfg.Calendars.Building
	default:
		return ""
	}
}

// noteAmbiguousAudience records that the audience text did not match any
// destination and did not ask for privacy. A blank or explicitly private
// audience is a valid terminal state, not ambiguity. The note is appended
// at most once per record: a reject/approve round-trip re-enters sync and
// must not stack duplicates.
func (e *Engine) noteAmbiguousAudience(ctx context.Context, id, audience string, existing []string, note func(context.Context, string, string)) {
	text := strings.ToLower(strings.TrimSpace(audience))
	if text == "" || strings.Contains(text, "private") {
		return
	}
	msg := "audience \"" + strings.TrimSpace(audience) + "\" did not match any destination; not published"
	for _, n := range existing {
		if n == msg {
			return
		}
	}
	note(ctx, id, msg)
}

func (e *Engine) noteEvent(ctx context.Context, id, note string) {
	if err := e.repo.AppendEventSyncNote(ctx, id, note); err != nil {
		e.log.Error("appending sync note", map[string]any{"record": id, "err": err.Error()})
	}
}

func (e *Engine) noteRecurring(ctx context.Context, id, note string) {
	if err := e.repo.AppendRecurringSyncNote(ctx, id, note); err != nil {
		e.log.Error("appending sync note", map[string]any{"record": id, "err": err.Error()})
	}
}

// recordLocks serializes sync runs per record key. The original host ran
// strictly single-threaded; under a concurrent server the write-once
// identifier check and the identifier write must not interleave for the
// same record. Entries are refcounted and removed when the last holder
// releases, so the map stays bounded by in-flight syncs rather than by
// every record ever touched.
type recordLocks struct {
	mu    gosync.Mutex
	locks map[string]*recordLock
}

type recordLock struct {
	mu   gosync.Mutex
	refs int
}

func (l *recordLocks) lock(id string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*recordLock)
	}
	rl, ok := l.locks[id]
	if !ok {
		rl = &recordLock{}
		l.locks[id] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.mu.Lock()
	return func() {
		rl.mu.Unlock()

		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
