package instances

import (
	"context"
	"time"
)

// InstanceRow is one concrete occurrence of an approved recurring record,
// materialized for reporting. Rows have no identity of their own: every
// rebuild discards and replaces the whole set.
type InstanceRow struct {
	RecordID string

	Title       string
	Description string
	Audience    string
	Space       string

	Start time.Time
	End   time.Time

	FacilitySeriesID string
	PublicSeriesID   string
}

// Repository stores the materialized instance list. Replace swaps the whole
// set atomically from the caller's point of view.
type Repository interface {
	Replace(ctx context.Context, rows []InstanceRow) error
	List(ctx context.Context) ([]InstanceRow, error)
}
