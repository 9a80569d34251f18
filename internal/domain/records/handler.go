package records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"event-publisher/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Syncer publishes an approved record to the external calendars. Implemented
// by the sync engine; defined here so the handler does not depend on it.
type Syncer interface {
	SyncEvent(ctx context.Context, rec EventRecord) error
	SyncRecurring(ctx context.Context, rec RecurringEventRecord) error
}

// Rebuilder rebuilds the materialized instance list after a recurring
// record's approval state changes.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

func RegisterRoutes(r chi.Router, svc *Service, syncer Syncer, rebuilder Rebuilder) {
	r.Route("/events", func(er chi.Router) {
		er.Post("/", intakeEventHandler(svc))
		er.Get("/", listEventsHandler(svc))
		er.Get("/{recordID}", getEventHandler(svc))
		er.Post("/{recordID}/approve", approveEventHandler(svc, syncer))
		er.Post("/{recordID}/reject", rejectEventHandler(svc))
	})

	r.Route("/recurring-events", func(er chi.Router) {
		er.Post("/", intakeRecurringHandler(svc))
		er.Get("/", listRecurringHandler(svc))
		er.Get("/{recordID}", getRecurringHandler(svc))
		er.Post("/{recordID}/approve", approveRecurringHandler(svc, syncer, rebuilder))
		er.Post("/{recordID}/reject", rejectRecurringHandler(svc, rebuilder))
	})
}

type intakeEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"` // YYYY-MM-DD
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Audience     string `json:"audience"`
	SpaceRequest string `json:"space_request"`
	Padding      string `json:"padding" enums:"None,30 minutes,1 hour,2 hours"`
}

type eventResponse struct {
	ID              string   `json:"id"`
	ApprovalState   string   `json:"approval_state"`
	ApprovedBy      string   `json:"approved_by,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Audience        string   `json:"audience"`
	SpaceRequest    string   `json:"space_request"`
	Padding         string   `json:"padding"`
	FacilityEventID string   `json:"facility_event_id,omitempty"`
	PublicEventID   string   `json:"public_event_id,omitempty"`
	SyncNotes       []string `json:"sync_notes,omitempty"`
}

func toEventResponse(rec EventRecord) eventResponse {
	return eventResponse{
		ID:              rec.ID,
		ApprovalState:   string(rec.ApprovalState),
		ApprovedBy:      rec.ApprovedBy,
		Title:           rec.Title,
		Description:     rec.Description,
		Date:            rec.CalendarDate.Format("2006-01-02"),
		StartTime:       rec.StartTime,
		EndTime:         rec.EndTime,
		Audience:        rec.Audience,
		SpaceRequest:    rec.SpaceRequest,
		Padding:         rec.Padding,
		FacilityEventID: rec.FacilityEventID,
		PublicEventID:   rec.PublicEventID,
		SyncNotes:       rec.SyncNotes,
	}
}

// intakeEventHandler godoc
// @Summary Submit a one-shot event
// @Description Records a one-shot event submission in Pending state. Nothing is published until an approver acts on it.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body intakeEventRequest true "Event submission; date in YYYY-MM-DD, times in HH:MM"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / missing title or date"
// @Router /events [post]
func intakeEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req intakeEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.IntakeEvent(r.Context(), IntakeEventInput{
			Title:        req.Title,
			Description:  req.Description,
			Date:         date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Audience:     req.Audience,
			SpaceRequest: req.SpaceRequest,
			Padding:      req.Padding,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(rec))
	}
}

// listEventsHandler godoc
// @Summary List one-shot events
// @Tags events
// @Produce json
// @Success 200 {array} eventResponse
// @Failure 500 {string} string "internal error"
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListEvents(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]eventResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toEventResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getEventHandler godoc
// @Summary Get a one-shot event
// @Tags events
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} eventResponse
// @Failure 404 {string} string "record not found"
// @Router /events/{recordID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetEvent(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(rec))
	}
}

// approveEventHandler godoc
// @Summary Approve a one-shot event
// @Description Moves the record into Approved and, on a real transition, publishes it to the resolved calendars. Approving an already-approved record is a no-op. Publication problems are annotated on the record, never returned as an error.
// @Tags events
// @Produce json
// @Param X-Actor header string false "Identity of the approver"
// @Param recordID path string true "Record ID"
// @Success 200 {object} eventResponse
// @Failure 404 {string} string "record not found"
// @Router /events/{recordID}/approve [post]
func approveEventHandler(svc *Service, syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, transitioned, err := svc.ApproveEvent(r.Context(), chi.URLParam(r, "recordID"), middleware.GetActor(r.Context()))
		if err != nil {
			writeRecordError(w, err)
			return
		}

		if transitioned {
			// Sync failures stay on the record as annotations.
			_ = syncer.SyncEvent(r.Context(), rec)
			rec, _, _ = refreshEvent(r.Context(), svc, rec)
		}

		writeJSON(w, http.StatusOK, toEventResponse(rec))
	}
}

// rejectEventHandler godoc
// @Summary Reject a one-shot event
// @Description Moves the record into Rejected. Already-created calendar entries are not retracted.
// @Tags events
// @Produce json
// @Param X-Actor header string false "Identity of the approver"
// @Param recordID path string true "Record ID"
// @Success 200 {object} eventResponse
// @Failure 404 {string} string "record not found"
// @Router /events/{recordID}/reject [post]
func rejectEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, _, err := svc.RejectEvent(r.Context(), chi.URLParam(r, "recordID"), middleware.GetActor(r.Context()))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(rec))
	}
}

type intakeRecurringRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ordinal      string `json:"ordinal" enums:"Every,First,Second,Third,Fourth"`
	Weekday      string `json:"weekday" enums:"Sunday,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Audience     string `json:"audience"`
	SpaceRequest string `json:"space_request"`
	Padding      string `json:"padding" enums:"None,30 minutes,1 hour,2 hours"`
	SkipMonths   string `json:"skip_months"`
}

type recurringResponse struct {
	ID               string   `json:"id"`
	ApprovalState    string   `json:"approval_state"`
	ApprovedBy       string   `json:"approved_by,omitempty"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Ordinal          string   `json:"ordinal"`
	Weekday          string   `json:"weekday"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	Audience         string   `json:"audience"`
	SpaceRequest     string   `json:"space_request"`
	Padding          string   `json:"padding"`
	SkipMonths       string   `json:"skip_months"`
	FacilitySeriesID string   `json:"facility_series_id,omitempty"`
	PublicSeriesID   string   `json:"public_series_id,omitempty"`
	SyncNotes        []string `json:"sync_notes,omitempty"`
}

func toRecurringResponse(rec RecurringEventRecord) recurringResponse {
	return recurringResponse{
		ID:               rec.ID,
		ApprovalState:    string(rec.ApprovalState),
		ApprovedBy:       rec.ApprovedBy,
		Title:            rec.Title,
		Description:      rec.Description,
		Ordinal:          rec.Ordinal,
		Weekday:          rec.Weekday,
		StartTime:        rec.StartTime,
		EndTime:          rec.EndTime,
		Audience:         rec.Audience,
		SpaceRequest:     rec.SpaceRequest,
		Padding:          rec.Padding,
		SkipMonths:       rec.SkipMonths,
		FacilitySeriesID: rec.FacilitySeriesID,
		PublicSeriesID:   rec.PublicSeriesID,
		SyncNotes:        rec.SyncNotes,
	}
}

// intakeRecurringHandler godoc
// @Summary Submit a monthly-recurring event
// @Description Records a recurring submission in Pending state. An unresolvable ordinal/weekday pair is accepted but leaves the record inert.
// @Tags recurring-events
// @Accept json
// @Produce json
// @Param payload body intakeRecurringRequest true "Recurring submission; skip_months is a comma-separated list of month numbers 1-12"
// @Success 201 {object} recurringResponse
// @Failure 400 {string} string "invalid json / missing title or weekday"
// @Router /recurring-events [post]
func intakeRecurringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req intakeRecurringRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.IntakeRecurring(r.Context(), IntakeRecurringInput{
			Title:        req.Title,
			Description:  req.Description,
			Ordinal:      req.Ordinal,
			Weekday:      req.Weekday,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Audience:     req.Audience,
			SpaceRequest: req.SpaceRequest,
			Padding:      req.Padding,
			SkipMonths:   req.SkipMonths,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toRecurringResponse(rec))
	}
}

// listRecurringHandler godoc
// @Summary List recurring events
// @Tags recurring-events
// @Produce json
// @Success 200 {array} recurringResponse
// @Failure 500 {string} string "internal error"
// @Router /recurring-events [get]
func listRecurringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListRecurring(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]recurringResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecurringResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRecurringHandler godoc
// @Summary Get a recurring event
// @Tags recurring-events
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} recurringResponse
// @Failure 404 {string} string "record not found"
// @Router /recurring-events/{recordID} [get]
func getRecurringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetRecurring(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toRecurringResponse(rec))
	}
}

// approveRecurringHandler godoc
// @Summary Approve a recurring event
// @Description Moves the record into Approved; on a real transition creates the calendar series and rebuilds the materialized instance list. Re-approval is a no-op.
// @Tags recurring-events
// @Produce json
// @Param X-Actor header string false "Identity of the approver"
// @Param recordID path string true "Record ID"
// @Success 200 {object} recurringResponse
// @Failure 404 {string} string "record not found"
// @Router /recurring-events/{recordID}/approve [post]
func approveRecurringHandler(svc *Service, syncer Syncer, rebuilder Rebuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, transitioned, err := svc.ApproveRecurring(r.Context(), chi.URLParam(r, "recordID"), middleware.GetActor(r.Context()))
		if err != nil {
			writeRecordError(w, err)
			return
		}

		if transitioned {
			_ = syncer.SyncRecurring(r.Context(), rec)
			_ = rebuilder.Rebuild(r.Context())
			if fresh, gerr := svc.GetRecurring(r.Context(), rec.ID); gerr == nil {
				rec = fresh
			}
		}

		writeJSON(w, http.StatusOK, toRecurringResponse(rec))
	}
}

// rejectRecurringHandler godoc
// @Summary Reject a recurring event
// @Description Moves the record into Rejected and rebuilds the instance list if the record had been approved. Existing calendar series are not retracted.
// @Tags recurring-events
// @Produce json
// @Param X-Actor header string false "Identity of the approver"
// @Param recordID path string true "Record ID"
// @Success 200 {object} recurringResponse
// @Failure 404 {string} string "record not found"
// @Router /recurring-events/{recordID}/reject [post]
func rejectRecurringHandler(svc *Service, rebuilder Rebuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, wasApproved, err := svc.RejectRecurring(r.Context(), chi.URLParam(r, "recordID"), middleware.GetActor(r.Context()))
		if err != nil {
			writeRecordError(w, err)
			return
		}

		if wasApproved {
			_ = rebuilder.Rebuild(r.Context())
		}

		writeJSON(w, http.StatusOK, toRecurringResponse(rec))
	}
}

func refreshEvent(ctx context.Context, svc *Service, rec EventRecord) (EventRecord, bool, error) {
	fresh, err := svc.GetEvent(ctx, rec.ID)
	if err != nil {
		return rec, false, err
	}
	return fresh, true, nil
}

func writeRecordError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "record not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
