package instances

import (
	"context"
	"strings"
	"time"

	"event-publisher/internal/domain/records"
	"event-publisher/internal/domain/recurrence"
	"event-publisher/internal/platform/config"
	"event-publisher/internal/platform/logger"
)

const timeOfDayLayout = "15:04"

// Expander rebuilds the materialized instance list from the full recurring
// record collection. It is a full rebuild on purpose: no diffing against
// the previous expansion, the new set replaces the old one wholesale.
type Expander struct {
	records records.Repository
	repo    Repository
	cfg     *config.Config
	loc     *time.Location
	log     logger.Logger
}

func NewExpander(recs records.Repository, repo Repository, cfg *config.Config, log logger.Logger) *Expander {
	return &Expander{
		records: recs,
		repo:    repo,
		cfg:     cfg,
		loc:     cfg.Location(),
		log:     log,
	}
}

// Rebuild expands every approved recurring record across the configured
// year, honoring its skip-month list. Records with unresolvable weekday or
// ordinal labels, or unparsable times, are inert and contribute no rows.
// Output order: record order, then month ascending, then date ascending.
func (x *Expander) Rebuild(ctx context.Context) error {
	recs, err := x.records.ListRecurring(ctx)
	if err != nil {
		return err
	}

	rows := make([]InstanceRow, 0)
	for _, rec := range recs {
		rows = append(rows, x.expandRecord(rec)...)
	}

	if err := x.repo.Replace(ctx, rows); err != nil {
		return err
	}
	x.log.Info("instance list rebuilt", map[string]any{"rows": len(rows), "year": x.cfg.Year})
	return nil
}

func (x *Expander) expandRecord(rec records.RecurringEventRecord) []InstanceRow {
	if rec.ApprovalState != records.StateApproved {
		return nil
	}

	weekday, err := recurrence.WeekdayFromLabel(rec.Weekday)
	if err != nil {
		return nil
	}
	ordinal, err := recurrence.OrdinalPosition(rec.Ordinal)
	if err != nil {
		return nil
	}

	startTod, err := time.Parse(timeOfDayLayout, strings.TrimSpace(rec.StartTime))
	if err != nil {
		return nil
	}
	endTod, err := time.Parse(timeOfDayLayout, strings.TrimSpace(rec.EndTime))
	if err != nil {
		return nil
	}

	skip := recurrence.ParseSkipMonths(rec.SkipMonths)

	var rows []InstanceRow
	for month := time.January; month <= time.December; month++ {
		if skip[month] {
			continue
		}
		for _, date := range recurrence.OccurrencesInMonth(x.cfg.Year, month, weekday, ordinal) {
			rows = append(rows, InstanceRow{
				RecordID:         rec.ID,
				Title:            rec.Title,
				Description:      rec.Description,
				Audience:         rec.Audience,
				Space:            rec.SpaceRequest,
				Start:            x.at(date, startTod),
				End:              x.at(date, endTod),
				FacilitySeriesID: rec.FacilitySeriesID,
				PublicSeriesID:   rec.PublicSeriesID,
			})
		}
	}
	return rows
}

func (x *Expander) at(date, tod time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, x.loc)
}
